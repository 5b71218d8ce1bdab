package requests

// Status tracks the lifecycle of a permission request. Approved and Denied
// are terminal.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusDenied   Status = "Denied"
)

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusDenied
}

// Request represents a permission request raised by a non-privileged role.
type Request struct {
	ID     int64  `json:"id"`
	Role   string `json:"role"`
	Text   string `json:"request"`
	Status Status `json:"status"`
}

// CreateRequest carries a new permission request. The id is client-assigned;
// whatever status the client sends, a new request always starts Pending.
type CreateRequest struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Role string `json:"role" validate:"required"`
	Text string `json:"request" validate:"required,max=500"`
}

// UpdateStatusRequest transitions a pending request to a terminal status.
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=Approved Denied"`
}
