package sales

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day serialized as "2006-01-02" on the wire.
type Date struct {
	time.Time
}

// ParseDate parses a wire-format calendar day.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("sales: parse date %q: %w", value, err)
	}
	return Date{Time: t}, nil
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Sale represents a single sales record.
type Sale struct {
	ID      int64   `json:"id"`
	Product string  `json:"product"`
	Amount  float64 `json:"amount"`
	Date    Date    `json:"date"`
}

// UpsertSaleRequest carries a fully-formed sale for create or replace. The
// id is client-assigned at creation time, matching the dashboard contract.
type UpsertSaleRequest struct {
	ID      int64   `json:"id" validate:"required,gt=0"`
	Product string  `json:"product" validate:"required,max=200"`
	Amount  float64 `json:"amount" validate:"gte=0"`
	Date    Date    `json:"date"`
}
