package sales

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeck/opsdeck/internal/platform/httpx"
	_ "github.com/opsdeck/opsdeck/testing"
)

func day(t *testing.T, value string) Date {
	t.Helper()
	d, err := ParseDate(value)
	require.NoError(t, err)
	return d
}

func TestCreateRejectsDuplicateClientID(t *testing.T) {
	repo := NewRepository([]Sale{{ID: 1, Product: "Laptop", Amount: 1200, Date: day(t, "2024-01-15")}})
	ctx := context.Background()

	_, err := repo.Create(ctx, Sale{ID: 1, Product: "Clash", Amount: 1, Date: day(t, "2024-02-01")})
	require.ErrorIs(t, err, httpx.ErrDuplicate)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdatePreservesID(t *testing.T) {
	repo := NewRepository([]Sale{{ID: 1, Product: "Laptop", Amount: 1200, Date: day(t, "2024-01-15")}})

	updated, err := repo.Update(context.Background(), 1, Sale{ID: 42, Product: "Laptop", Amount: 999, Date: day(t, "2024-01-15")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID, "path id wins over body id")
	assert.Equal(t, float64(999), updated.Amount)
}

func TestUpdateAndDeleteAbsentSale(t *testing.T) {
	repo := NewRepository(nil)
	ctx := context.Background()

	_, err := repo.Update(ctx, 7, Sale{ID: 7, Product: "Ghost", Date: day(t, "2024-01-01")})
	require.ErrorIs(t, err, httpx.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, 7), httpx.ErrNotFound)
}

func TestListCopiesBackingSlice(t *testing.T) {
	repo := NewRepository([]Sale{{ID: 1, Product: "Laptop", Amount: 1200, Date: day(t, "2024-01-15")}})
	ctx := context.Background()

	first, err := repo.List(ctx)
	require.NoError(t, err)
	first[0].Product = "Tampered"

	second, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", second[0].Product)
}

func TestDateWireFormat(t *testing.T) {
	sale := Sale{ID: 1, Product: "Laptop", Amount: 1200, Date: day(t, "2024-01-15")}

	raw, err := json.Marshal(sale)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"date":"2024-01-15"`)

	var back Sale
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, sale.Date.String(), back.Date.String())

	var bad Sale
	err = json.Unmarshal([]byte(`{"id":2,"product":"X","amount":1,"date":"15/01/2024"}`), &bad)
	require.Error(t, err, "only the dashboard date layout is accepted")
}
