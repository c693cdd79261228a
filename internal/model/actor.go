package model

// Roles carried in the identity token.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Actor is the authenticated user performing an operation.  Ledger
// operations take a *Actor; nil means no one is signed in.
type Actor struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
