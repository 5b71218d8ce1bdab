package console

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// Wire records mirror the Resource Service contract.

// UserRecord is an account row as served by /api/users.
type UserRecord struct {
	ID     int64  `json:"id"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// SaleRecord is a sales row. The date stays in its wire form; views edit it
// as text and the projector parses it only to compare.
type SaleRecord struct {
	ID      int64   `json:"id"`
	Product string  `json:"product"`
	Amount  float64 `json:"amount"`
	Date    string  `json:"date"`
}

// RequestRecord is a permission request row.
type RequestRecord struct {
	ID     int64  `json:"id"`
	Role   string `json:"role"`
	Text   string `json:"request"`
	Status string `json:"status"`
}

// RoleRecord is an assignable role reference row.
type RoleRecord struct {
	RoleName string `json:"roleName"`
}

// Sort keys for the sales view. Other views preserve server order.
const (
	SortByProduct SortKey = "product"
	SortByAmount  SortKey = "amount"
	SortByDate    SortKey = "date"
)

// Users builds the account collection store.
func Users(client *Client, logger *slog.Logger) *Collection[UserRecord] {
	return NewCollection(client, Resource[UserRecord]{
		Path: "/api/users",
		ID:   func(u UserRecord) int64 { return u.ID },
	}, logger)
}

// Sales builds the sales collection store.
func Sales(client *Client, logger *slog.Logger) *Collection[SaleRecord] {
	return NewCollection(client, Resource[SaleRecord]{
		Path: "/api/sales",
		ID:   func(s SaleRecord) int64 { return s.ID },
	}, logger)
}

// Requests builds the permission request collection store.
func Requests(client *Client, logger *slog.Logger) *Collection[RequestRecord] {
	return NewCollection(client, Resource[RequestRecord]{
		Path: "/api/requests",
		ID:   func(r RequestRecord) int64 { return r.ID },
	}, logger)
}

// Roles builds the read-only role reference collection.
func Roles(client *Client, logger *slog.Logger) *Collection[RoleRecord] {
	return NewCollection(client, Resource[RoleRecord]{
		Path: "/api/roles",
		ID:   func(RoleRecord) int64 { return 0 },
	}, logger)
}

// NewRecordID returns a client-assigned identifier for sales and permission
// requests: the current time in milliseconds, as the dashboard has always
// done. Collision-resistant server-side ids remain an open question.
func NewRecordID() int64 {
	return time.Now().UnixMilli()
}

// UserProjector filters accounts by numeric id substring; accounts keep
// server order, so no sort comparators.
func UserProjector() Projector[UserRecord] {
	return Projector[UserRecord]{
		Match: func(u UserRecord, query string) bool {
			return strings.Contains(strconv.FormatInt(u.ID, 10), strings.TrimSpace(query))
		},
	}
}

// SaleProjector filters by case-insensitive product substring and sorts
// ascending by product, amount or date.
func SaleProjector() Projector[SaleRecord] {
	matcher := search.New(language.English, search.IgnoreCase)
	return Projector[SaleRecord]{
		Match: func(s SaleRecord, query string) bool {
			query = strings.TrimSpace(query)
			if query == "" {
				return true
			}
			start, _ := matcher.IndexString(s.Product, query)
			return start >= 0
		},
		Less: map[SortKey]func(a, b SaleRecord) bool{
			SortByProduct: func(a, b SaleRecord) bool { return a.Product < b.Product },
			SortByAmount:  func(a, b SaleRecord) bool { return a.Amount < b.Amount },
			SortByDate: func(a, b SaleRecord) bool {
				at, aerr := time.Parse("2006-01-02", a.Date)
				bt, berr := time.Parse("2006-01-02", b.Date)
				if aerr != nil || berr != nil {
					return a.Date < b.Date
				}
				return at.Before(bt)
			},
		},
	}
}

// RequestProjector preserves server order and applies no filter.
func RequestProjector() Projector[RequestRecord] {
	return Projector[RequestRecord]{}
}

// ValidateSaleDraft checks required-field presence before submission.
func ValidateSaleDraft(s SaleRecord) error {
	if strings.TrimSpace(s.Product) == "" || strings.TrimSpace(s.Date) == "" {
		return ErrMissingField
	}
	return nil
}

// ValidateRequestDraft checks the free-text body is present.
func ValidateRequestDraft(r RequestRecord) error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrMissingField
	}
	return nil
}

// RegistrationDraft is the add-user form state.
type RegistrationDraft struct {
	UserID   string
	Password string
	Role     string
}

// ValidateRegistration checks presence and the 6-character password floor.
// All other validation (duplicate handles) is the Resource Service's job.
func ValidateRegistration(d RegistrationDraft) error {
	if strings.TrimSpace(d.UserID) == "" || d.Password == "" || strings.TrimSpace(d.Role) == "" {
		return ErrMissingField
	}
	if len(d.Password) < 6 {
		return ErrPasswordTooShort
	}
	return nil
}

// StatusBody is the partial update used to decide a permission request.
type StatusBody struct {
	Status string `json:"status"`
}

// Decide transitions a pending request to the given terminal status through
// the collection's reload-to-reconcile path.
func Decide(ctx context.Context, col *Collection[RequestRecord], id int64, status string) error {
	return col.Patch(ctx, id, StatusBody{Status: status})
}
