package dto

// RegisterRequest creates either a Client or an Owner. Exactly one of
// IsClient/IsOwner must be set.
type RegisterRequest struct {
	IsClient       bool   `json:"is_client"`
	IsOwner        bool   `json:"is_owner"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	IdentityNumber int64  `json:"identity_number,omitempty"`
}

type LoginRequest struct {
	IsClient bool   `json:"is_client"`
	IsOwner  bool   `json:"is_owner"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	IsClient  bool   `json:"is_client"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
