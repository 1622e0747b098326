package dto

// AddClientRequest adds a client to the owner's roster; the email must
// match the client record behind the identity number.
type AddClientRequest struct {
	Email          string `json:"email"`
	IdentityNumber int64  `json:"identity_number"`
}

type DeleteClientRequest struct {
	IdentityNumber int64 `json:"client_id"`
}

type RosterClientResponse struct {
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	IdentityNumber int64  `json:"identity_number"`
}

type RosterResponse struct {
	Clients []RosterClientResponse `json:"clients"`
}
