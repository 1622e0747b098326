package utils

import (
	"agenda-api/core/constants"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// GenerateID returns a short url-safe identifier.
func GenerateID() string {
	id, err := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateOwnerNumber produces the numeric display id shown to an owner's
// clients. Uniqueness is enforced by the owners.owner_number constraint;
// callers retry on conflict.
func GenerateOwnerNumber() string {
	id, err := gonanoid.Generate(constants.OwnerNumberAlphabet, constants.OwnerNumberLength)
	if err != nil {
		return ""
	}
	return id
}
