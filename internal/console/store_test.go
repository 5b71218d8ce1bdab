package console

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeck/opsdeck/internal/accounts"
	"github.com/opsdeck/opsdeck/internal/app"
	"github.com/opsdeck/opsdeck/internal/auth"
	"github.com/opsdeck/opsdeck/internal/fixture"
	"github.com/opsdeck/opsdeck/internal/rbac"
	"github.com/opsdeck/opsdeck/internal/requests"
	"github.com/opsdeck/opsdeck/internal/roles"
	"github.com/opsdeck/opsdeck/internal/sales"
	"github.com/opsdeck/opsdeck/internal/shared"
	_ "github.com/opsdeck/opsdeck/testing"
)

// newTestStack starts a full Resource Service over the fixture dataset and
// returns a console client pointed at it.
func newTestStack(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dataset := fixture.Default()

	accountsRepo, err := accounts.NewRepository(dataset.Users)
	require.NoError(t, err)
	accountsService := accounts.NewService(accountsRepo)

	tokens := auth.NewTokenStore(redisClient, "test-secret", time.Hour)
	authService := auth.NewService(accountsService, tokens)

	rbacMiddleware := rbac.Middleware{Verifier: tokens, Logger: logger}
	auditLog := shared.NewAuditLogger(0)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		AuthHandler:     auth.NewHandler(logger, authService),
		AccountsHandler: accounts.NewHandler(logger, accountsService, rbacMiddleware, auditLog),
		SalesHandler:    sales.NewHandler(logger, sales.NewService(sales.NewRepository(dataset.Sales)), rbacMiddleware, auditLog),
		RequestsHandler: requests.NewHandler(logger, requests.NewService(requests.NewRepository(dataset.Requests)), rbacMiddleware, auditLog),
		RolesHandler:    roles.NewHandler(logger, roles.NewRepository(dataset.Roles)),
		RBACMiddleware:  rbacMiddleware,
		Audit:           auditLog,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server, NewClient(server.URL, WithLogger(logger))
}

func loginAs(t *testing.T, client *Client, userID, password string) {
	t.Helper()
	res, err := client.Authenticate(context.Background(), userID, password)
	require.NoError(t, err)
	require.True(t, res.IsAuthenticated, "login for %s", userID)
	require.NotNil(t, res.Role)
}

func TestLoadIsIdempotent(t *testing.T) {
	_, client := newTestStack(t)
	ctx := context.Background()

	store := Sales(client, nil)
	require.NoError(t, store.Load(ctx))
	first := store.Snapshot()

	require.NoError(t, store.Load(ctx))
	require.NoError(t, store.Load(ctx))

	assert.Equal(t, first, store.Snapshot())
	assert.True(t, store.Loaded())
}

func TestSaleLifecycleReconciles(t *testing.T) {
	_, client := newTestStack(t)
	ctx := context.Background()
	loginAs(t, client, "admin", "admin123")

	store := Sales(client, nil)
	require.NoError(t, store.Load(ctx))
	base := store.Len()

	sale := SaleRecord{ID: NewRecordID(), Product: "Widget", Amount: 10, Date: "2024-01-01"}
	require.NoError(t, store.Create(ctx, sale))

	snapshot := store.Snapshot()
	require.Len(t, snapshot, base+1)
	matches := 0
	for _, s := range snapshot {
		if s.ID == sale.ID {
			matches++
			assert.Equal(t, "Widget", s.Product)
			assert.Equal(t, float64(10), s.Amount)
		}
	}
	assert.Equal(t, 1, matches, "created record appears exactly once")

	sale.Amount = 20
	require.NoError(t, store.Update(ctx, sale.ID, sale))
	for _, s := range store.Snapshot() {
		if s.ID == sale.ID {
			assert.Equal(t, float64(20), s.Amount)
		}
	}

	require.NoError(t, store.Delete(ctx, sale.ID))
	assert.Equal(t, base, store.Len())
	for _, s := range store.Snapshot() {
		assert.NotEqual(t, sale.ID, s.ID)
	}
}

func TestUpdateAbsentRecordPropagatesNotFound(t *testing.T) {
	_, client := newTestStack(t)
	ctx := context.Background()
	loginAs(t, client, "admin", "admin123")

	store := Sales(client, nil)
	require.NoError(t, store.Load(ctx))
	before := store.Snapshot()

	err := store.Update(ctx, 999999, SaleRecord{ID: 999999, Product: "Ghost", Amount: 1, Date: "2024-01-01"})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, store.Snapshot(), "failed mutation leaves cache unchanged")

	err = store.Delete(ctx, 999999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadFailureKeepsStaleCache(t *testing.T) {
	server, client := newTestStack(t)
	ctx := context.Background()

	store := Sales(client, nil)
	require.NoError(t, store.Load(ctx))
	stale := store.Snapshot()
	require.NotEmpty(t, stale)

	server.Close()

	err := store.Load(ctx)
	require.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, stale, store.Snapshot(), "cache stays at previous value")
}

func TestDuplicateRegistrationLeavesAccountsUnchanged(t *testing.T) {
	_, client := newTestStack(t)
	ctx := context.Background()

	users := Users(client, nil)
	require.NoError(t, users.Load(ctx))
	before := users.Len()

	err := client.Register(ctx, "analyst", "secret1", "Data Analyst")
	require.ErrorIs(t, err, ErrDuplicateKey)

	require.NoError(t, users.Load(ctx))
	assert.Equal(t, before, users.Len())
}

func TestRegistrationThenLogin(t *testing.T) {
	_, client := newTestStack(t)
	ctx := context.Background()

	require.NoError(t, client.Register(ctx, "newbie", "secret1", "Data Analyst"))

	res, err := client.Authenticate(ctx, "newbie", "secret1")
	require.NoError(t, err)
	assert.True(t, res.IsAuthenticated)
	require.NotNil(t, res.Role)
	assert.Equal(t, "Data Analyst", *res.Role)
}

func TestRequestApprovalChangesOnlyStatus(t *testing.T) {
	_, client := newTestStack(t)
	ctx := context.Background()
	loginAs(t, client, "admin", "admin123")

	store := Requests(client, nil)
	require.NoError(t, store.Load(ctx))

	created := RequestRecord{ID: NewRecordID(), Role: "Data Analyst", Text: "Export access", Status: "Pending"}
	require.NoError(t, store.Create(ctx, created))

	require.NoError(t, Decide(ctx, store, created.ID, "Approved"))

	var got *RequestRecord
	for _, r := range store.Snapshot() {
		if r.ID == created.ID {
			r := r
			got = &r
		}
	}
	require.NotNil(t, got)
	assert.Equal(t, "Approved", got.Status)
	assert.Equal(t, created.Role, got.Role)
	assert.Equal(t, created.Text, got.Text)
}

func TestDecidedRequestIsImmutable(t *testing.T) {
	_, client := newTestStack(t)
	ctx := context.Background()
	loginAs(t, client, "admin", "admin123")

	store := Requests(client, nil)
	require.NoError(t, store.Load(ctx))

	created := RequestRecord{ID: NewRecordID(), Role: "Data Analyst", Text: "One-shot", Status: "Pending"}
	require.NoError(t, store.Create(ctx, created))
	require.NoError(t, Decide(ctx, store, created.ID, "Denied"))

	err := Decide(ctx, store, created.ID, "Approved")
	require.Error(t, err)
	for _, r := range store.Snapshot() {
		if r.ID == created.ID {
			assert.Equal(t, "Denied", r.Status)
		}
	}
}

func TestMutationRequiresCapability(t *testing.T) {
	_, client := newTestStack(t)
	ctx := context.Background()
	loginAs(t, client, "analyst", "analyst1")

	store := Sales(client, nil)
	require.NoError(t, store.Load(ctx))

	err := store.Create(ctx, SaleRecord{ID: NewRecordID(), Product: "Sneaky", Amount: 1, Date: "2024-01-01"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUnauthenticatedMutationRejected(t *testing.T) {
	_, client := newTestStack(t)
	ctx := context.Background()

	store := Sales(client, nil)
	err := store.Create(ctx, SaleRecord{ID: NewRecordID(), Product: "Anon", Amount: 1, Date: "2024-01-01"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestLogoutRevokesToken(t *testing.T) {
	_, client := newTestStack(t)
	ctx := context.Background()
	loginAs(t, client, "admin", "admin123")

	token := client.Token()
	require.NotEmpty(t, token)
	require.NoError(t, client.Logout(ctx))

	// Reuse the revoked token directly.
	client.SetToken(token)
	store := Sales(client, nil)
	err := store.Create(ctx, SaleRecord{ID: NewRecordID(), Product: "Stale", Amount: 1, Date: "2024-01-01"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestBadCredentialsAnswerUnauthenticated(t *testing.T) {
	_, client := newTestStack(t)
	ctx := context.Background()

	res, err := client.Authenticate(ctx, "admin", "wrong-password")
	require.NoError(t, err, "authenticate never errors on bad credentials")
	assert.False(t, res.IsAuthenticated)
	assert.Nil(t, res.Role)
	assert.Empty(t, client.Token())
}
