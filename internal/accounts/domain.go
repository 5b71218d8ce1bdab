package accounts

// Status reflects whether an account may sign in.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Account represents a dashboard user account.
//
// The password hash never leaves the service; the legacy dashboard shipped
// raw passwords over the wire and that is the one piece of its contract we
// refuse to preserve.
type Account struct {
	ID           int64  `json:"id"`
	UserID       string `json:"userId"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Status       Status `json:"status"`
}

// Seed describes a fixture account before hashing.
type Seed struct {
	UserID   string
	Password string
	Role     string
	Status   Status
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	UserID   string `json:"userId" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

// UpdateAccountRequest is a full-replacement update for an account. An empty
// password keeps the stored hash.
type UpdateAccountRequest struct {
	UserID   string `json:"userId" validate:"required,max=64"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"required"`
	Status   Status `json:"status" validate:"required,oneof=Active Inactive"`
}
