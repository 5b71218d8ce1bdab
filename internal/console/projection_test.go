package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSales() []SaleRecord {
	return []SaleRecord{
		{ID: 1, Product: "Laptop", Amount: 1200, Date: "2024-01-15"},
		{ID: 2, Product: "Monitor", Amount: 300, Date: "2024-02-02"},
		{ID: 3, Product: "Keyboard", Amount: 45, Date: "2024-02-20"},
		{ID: 4, Product: "Docking Station", Amount: 180, Date: "2023-12-05"},
		{ID: 5, Product: "laptop sleeve", Amount: 25, Date: "2024-03-01"},
	}
}

func TestProjectIsPureAndDeterministic(t *testing.T) {
	p := SaleProjector()
	records := sampleSales()
	original := sampleSales()

	first := p.Project(records, "lap", SortByAmount, 0, 5)
	second := p.Project(records, "lap", SortByAmount, 0, 5)

	assert.Equal(t, first, second)
	assert.Equal(t, original, records, "projection must not mutate its input")
}

func TestProjectFilterMatchesCaseInsensitiveSubstring(t *testing.T) {
	p := SaleProjector()
	records := sampleSales()

	got := p.Project(records, "LAPTOP", "", 0, 0)

	require.Len(t, got, 2)
	for _, r := range got {
		assert.Contains(t, []int64{1, 5}, r.ID)
	}

	// Every record either appears or fails the match, never both.
	for _, r := range records {
		matched := p.Match(r, "LAPTOP")
		found := false
		for _, g := range got {
			if g.ID == r.ID {
				found = true
			}
		}
		assert.Equal(t, matched, found, "record %d", r.ID)
	}
}

func TestProjectEmptyQueryKeepsServerOrder(t *testing.T) {
	p := SaleProjector()
	records := sampleSales()

	got := p.Project(records, "", "", 0, 0)

	assert.Equal(t, records, got)
}

func TestProjectSortsAscending(t *testing.T) {
	p := SaleProjector()
	records := sampleSales()

	byAmount := p.Project(records, "", SortByAmount, 0, 0)
	for i := 1; i < len(byAmount); i++ {
		assert.LessOrEqual(t, byAmount[i-1].Amount, byAmount[i].Amount)
	}

	byDate := p.Project(records, "", SortByDate, 0, 0)
	require.Len(t, byDate, 5)
	assert.Equal(t, int64(4), byDate[0].ID, "2023 date sorts first")

	byProduct := p.Project(records, "", SortByProduct, 0, 0)
	for i := 1; i < len(byProduct); i++ {
		assert.LessOrEqual(t, byProduct[i-1].Product, byProduct[i].Product)
	}
}

func TestProjectUnknownSortKeyPreservesOrder(t *testing.T) {
	p := SaleProjector()
	records := sampleSales()

	got := p.Project(records, "", SortKey("bogus"), 0, 0)

	assert.Equal(t, records, got)
}

func TestProjectPaginationBounds(t *testing.T) {
	p := SaleProjector()
	records := sampleSales()

	page0 := p.Project(records, "", "", 0, 2)
	assert.Len(t, page0, 2)

	// Tail-short page.
	page2 := p.Project(records, "", "", 2, 2)
	assert.Len(t, page2, 1)

	// Past the end.
	page9 := p.Project(records, "", "", 9, 2)
	assert.Empty(t, page9)

	// Never more than the page size.
	for page := 0; page < 4; page++ {
		got := p.Project(records, "", "", page, 3)
		assert.LessOrEqual(t, len(got), 3)
	}
}

func TestUserProjectorMatchesIDSubstring(t *testing.T) {
	p := UserProjector()
	users := []UserRecord{
		{ID: 1, UserID: "analyst"},
		{ID: 12, UserID: "officer"},
		{ID: 31, UserID: "admin"},
	}

	got := p.Project(users, "1", "", 0, 0)

	require.Len(t, got, 3)

	got = p.Project(users, "2", "", 0, 0)
	require.Len(t, got, 1)
	assert.Equal(t, int64(12), got[0].ID)
}

func TestViewResetsPageOnQueryAndSizeChange(t *testing.T) {
	view := NewView(SaleProjector(), 2)
	view.SetPage(2)
	require.Equal(t, 2, view.Page())

	view.SetQuery("lap")
	assert.Equal(t, 0, view.Page(), "query change resets page")

	view.SetPage(1)
	view.SetQuery("lap")
	assert.Equal(t, 1, view.Page(), "identical query keeps page")

	view.SetPageSize(10)
	assert.Equal(t, 0, view.Page(), "size change resets page")
	assert.Equal(t, 10, view.PageSize())
}

func TestViewRowsAndMatches(t *testing.T) {
	view := NewView(SaleProjector(), 2)
	records := sampleSales()

	rows := view.Rows(records)
	assert.Len(t, rows, 2)
	assert.Equal(t, 5, view.Matches(records))

	view.SetQuery("laptop")
	assert.Equal(t, 2, view.Matches(records))
}
