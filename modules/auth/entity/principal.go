package entity

import "github.com/google/uuid"

type PrincipalKind string

const (
	KindClient PrincipalKind = "client"
	KindOwner  PrincipalKind = "owner"
)

// Principal is the authenticated actor resolved from a bearer token. The
// explicit Kind discriminant replaces any attribute-probing on the
// underlying record.
type Principal struct {
	ID   uuid.UUID     `json:"id"`
	Kind PrincipalKind `json:"kind"`
}

func (p Principal) IsClient() bool {
	return p.Kind == KindClient
}

func (p Principal) IsOwner() bool {
	return p.Kind == KindOwner
}
