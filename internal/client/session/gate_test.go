package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"shopgate/internal/client/api"
	"shopgate/internal/client/models"
	"shopgate/internal/client/store"
	"shopgate/internal/logging"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE session (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return store.New(db)
}

func testLogger() logging.Logger {
	return logging.NewDefault()
}

func seedToken(t *testing.T, st store.Store, token string) {
	t.Helper()
	require.NoError(t, st.Set(context.Background(), store.KeyToken, []byte(token)))
}

func seedCreds(t *testing.T, st store.Store, email, password string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, st.SetSealed(ctx, store.KeyCachedEmail, []byte(email)))
	require.NoError(t, st.SetSealed(ctx, store.KeyCachedPassword, []byte(password)))
}

// ---- fake api client ----

type fakeClient struct {
	ProfileAccount *models.Account
	ProfileErr     error
	ProfileCalls   int

	LoginToken        string
	LoginAccount      *models.Account
	LoginErr          error
	LoginCalls        int
	LastLoginEmail    string
	LastLoginPassword string

	LogoutErr   error
	LogoutCalls int

	OnboardingErr   error
	OnboardingCalls int
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, *models.Account, error) {
	f.LoginCalls++
	f.LastLoginEmail = email
	f.LastLoginPassword = password
	return f.LoginToken, f.LoginAccount, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, email, password, shopName string) error {
	return nil
}

func (f *fakeClient) Logout(ctx context.Context, token string) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeClient) Profile(ctx context.Context, token string) (*models.Account, error) {
	f.ProfileCalls++
	return f.ProfileAccount, f.ProfileErr
}

func (f *fakeClient) SubmitOnboarding(ctx context.Context, token string, fields map[string]string) error {
	f.OnboardingCalls++
	return f.OnboardingErr
}

func (f *fakeClient) Orders(ctx context.Context, token string) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeClient) Order(ctx context.Context, token, orderID string) (*models.Order, error) {
	return nil, nil
}

func (f *fakeClient) UpdateOrderStatus(ctx context.Context, token, storageID string, status models.OrderStatus) (*models.Order, error) {
	return nil, nil
}

func (f *fakeClient) VerifyPickup(ctx context.Context, token, orderID, otp string) (*models.Order, error) {
	return nil, nil
}

func (f *fakeClient) Products(ctx context.Context, token string) ([]models.Product, error) {
	return nil, nil
}

func (f *fakeClient) CreateProduct(ctx context.Context, token string, p *models.Product) (*models.Product, error) {
	return p, nil
}

func (f *fakeClient) UpdateProduct(ctx context.Context, token string, p *models.Product) (*models.Product, error) {
	return p, nil
}

func (f *fakeClient) DeleteProduct(ctx context.Context, token, id string) error { return nil }

func (f *fakeClient) ImageUploadURL(ctx context.Context, token string) (string, string, error) {
	return "", "", nil
}

func (f *fakeClient) Ping(ctx context.Context) error { return nil }
func (f *fakeClient) Close() error                   { return nil }

var _ api.Client = (*fakeClient)(nil)

func approvedAccount() *models.Account {
	return &models.Account{ID: "o-1", Email: "a@b.c", Status: models.StatusActive}
}

func pendingAccount() *models.Account {
	return &models.Account{ID: "o-1", Email: "a@b.c", Status: models.StatusPending}
}

// ---- TESTS ----

func TestResolve_NoToken_PublicPathAllowed(t *testing.T) {
	g := NewGate(setupStore(t), &fakeClient{}, testLogger())

	d := g.Resolve(context.Background(), "/login")
	require.True(t, d.Allow)
	require.False(t, g.Authenticated())
}

func TestResolve_NoToken_ProtectedPathRedirectsToLogin(t *testing.T) {
	fc := &fakeClient{}
	g := NewGate(setupStore(t), fc, testLogger())

	d := g.Resolve(context.Background(), "/orders")
	require.False(t, d.Allow)
	require.Equal(t, RouteLogin, d.Redirect)
	require.Zero(t, fc.ProfileCalls)
	require.Equal(t, GuardRedirectLogin, g.Guard(false))
}

func TestResolve_ValidationFails_ClearsAllFiveKeys(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	seedToken(t, st, "stale-token")
	require.NoError(t, st.Set(ctx, store.KeyOnboardingDraft, []byte("draft")))
	require.NoError(t, st.SaveAccount(ctx, approvedAccount()))
	seedCreds(t, st, "a@b.c", "pw")

	// unreachable backend: fail closed, no silent re-auth for network errors
	fc := &fakeClient{ProfileErr: api.ErrUnavailable, LoginErr: api.ErrUnavailable}
	g := NewGate(st, fc, testLogger())

	d := g.Resolve(ctx, "/dashboard")
	require.False(t, d.Allow)
	require.Equal(t, RouteLogin, d.Redirect)

	for _, key := range store.SessionKeys {
		v, err := st.Get(ctx, key)
		require.NoError(t, err)
		require.Nil(t, v, "key %s must be absent", key)
	}
}

func TestResolve_TokenRejected_SilentReauthSucceeds(t *testing.T) {
	st := setupStore(t)
	seedToken(t, st, "rejected")
	seedCreds(t, st, "a@b.c", "pw")

	fc := &fakeClient{
		ProfileErr:   api.ErrUnauthorized,
		LoginToken:   "fresh",
		LoginAccount: approvedAccount(),
	}
	g := NewGate(st, fc, testLogger())

	d := g.Resolve(context.Background(), "/login")
	require.False(t, d.Allow)
	require.Equal(t, RouteDashboard, d.Redirect)
	require.Equal(t, 1, fc.LoginCalls)
	require.Equal(t, "a@b.c", fc.LastLoginEmail)
	require.Equal(t, "pw", fc.LastLoginPassword)

	tok, err := st.Get(context.Background(), store.KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("fresh"), tok)
}

func TestResolve_TokenRejected_NoCache_FailsClosed(t *testing.T) {
	st := setupStore(t)
	seedToken(t, st, "rejected")

	fc := &fakeClient{ProfileErr: api.ErrUnauthorized}
	g := NewGate(st, fc, testLogger())

	d := g.Resolve(context.Background(), "/dashboard")
	require.Equal(t, RouteLogin, d.Redirect)
	require.Zero(t, fc.LoginCalls)
}

func TestResolve_PendingOnDashboard_StaysOnDashboard(t *testing.T) {
	// Already-on-allowed-page precedence: a Pending account sitting on
	// /dashboard is not redirected away by its status.
	st := setupStore(t)
	seedToken(t, st, "tok")

	fc := &fakeClient{ProfileAccount: pendingAccount()}
	g := NewGate(st, fc, testLogger())

	d := g.Resolve(context.Background(), "/dashboard")
	require.True(t, d.Allow)
}

func TestResolve_PendingOnLogin_RedirectsToPendingApproval(t *testing.T) {
	st := setupStore(t)
	seedToken(t, st, "tok")

	fc := &fakeClient{ProfileAccount: pendingAccount()}
	g := NewGate(st, fc, testLogger())

	d := g.Resolve(context.Background(), "/login")
	require.False(t, d.Allow)
	require.Equal(t, RoutePendingApproval, d.Redirect)
}

func TestResolve_OtherStatus_RedirectsToOnboarding(t *testing.T) {
	st := setupStore(t)
	seedToken(t, st, "tok")

	fc := &fakeClient{ProfileAccount: &models.Account{ID: "o-1", Status: models.StatusOther}}
	g := NewGate(st, fc, testLogger())

	d := g.Resolve(context.Background(), "/nowhere")
	require.Equal(t, RouteOnboarding, d.Redirect)
}

func TestResolve_ExpiredJWT_SkipsProfileCall(t *testing.T) {
	st := setupStore(t)
	expired := makeJWT(t, time.Now().Add(-time.Hour))
	seedToken(t, st, expired)
	seedCreds(t, st, "a@b.c", "pw")

	fc := &fakeClient{LoginToken: "fresh", LoginAccount: approvedAccount()}
	g := NewGate(st, fc, testLogger())

	d := g.Resolve(context.Background(), "/orders")
	require.True(t, d.Allow)
	require.Zero(t, fc.ProfileCalls)
	require.Equal(t, 1, fc.LoginCalls)
}

func makeJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
	s, err := tok.SignedString([]byte("test"))
	require.NoError(t, err)
	return s
}

func TestLogin_PersistsSessionAndRedirectsByStatus(t *testing.T) {
	st := setupStore(t)
	fc := &fakeClient{LoginToken: "tok", LoginAccount: approvedAccount()}
	g := NewGate(st, fc, testLogger())
	ctx := context.Background()

	d, err := g.Login(ctx, "a@b.c", "pw")
	require.NoError(t, err)
	require.Equal(t, RouteDashboard, d.Redirect)
	require.True(t, g.Authenticated())

	tok, err := st.Get(ctx, store.KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("tok"), tok)

	email, err := st.GetSealed(ctx, store.KeyCachedEmail)
	require.NoError(t, err)
	require.Equal(t, []byte("a@b.c"), email)

	saved, err := st.LoadAccount(ctx)
	require.NoError(t, err)
	require.Equal(t, approvedAccount(), saved)
}

func TestLogin_Failure(t *testing.T) {
	fc := &fakeClient{LoginErr: &api.APIError{Message: "bad credentials"}}
	g := NewGate(setupStore(t), fc, testLogger())

	d, err := g.Login(context.Background(), "a@b.c", "nope")
	require.Error(t, err)
	require.Equal(t, RouteLogin, d.Redirect)
	require.False(t, g.Authenticated())
}

func TestLogout_ClearsKeysEvenWhenNetworkFails(t *testing.T) {
	st := setupStore(t)
	fc := &fakeClient{LoginToken: "tok", LoginAccount: approvedAccount(), LogoutErr: errors.New("down")}
	g := NewGate(st, fc, testLogger())
	ctx := context.Background()

	_, err := g.Login(ctx, "a@b.c", "pw")
	require.NoError(t, err)

	d := g.Logout(ctx)
	require.Equal(t, RouteLogin, d.Redirect)
	require.Equal(t, 1, fc.LogoutCalls)

	for _, key := range store.SessionKeys {
		v, err := st.Get(ctx, key)
		require.NoError(t, err)
		require.Nil(t, v, "key %s must be absent", key)
	}
}

func TestSignup_ClearsSessionAndGoesToOnboarding(t *testing.T) {
	st := setupStore(t)
	seedToken(t, st, "tok")
	g := NewGate(st, &fakeClient{}, testLogger())
	ctx := context.Background()

	d := g.Signup(ctx)
	require.Equal(t, RouteOnboarding, d.Redirect)

	tok, err := st.Get(ctx, store.KeyToken)
	require.NoError(t, err)
	require.Nil(t, tok)
}

func TestGuard_Verdicts(t *testing.T) {
	st := setupStore(t)
	fc := &fakeClient{ProfileAccount: pendingAccount()}
	g := NewGate(st, fc, testLogger())

	// before resolution: neutral placeholder
	require.Equal(t, GuardPending, g.Guard(true))

	seedToken(t, st, "tok")
	g.Resolve(context.Background(), "/dashboard")

	require.Equal(t, GuardRender, g.Guard(false))
	require.Equal(t, GuardRedirectPendingApproval, g.Guard(true))

	fc.ProfileAccount = approvedAccount()
	g.Resolve(context.Background(), "/dashboard")
	require.Equal(t, GuardRender, g.Guard(true))
}

func TestOnboardingDraftLifecycle(t *testing.T) {
	st := setupStore(t)
	seedToken(t, st, "tok")
	fc := &fakeClient{ProfileAccount: approvedAccount()}
	g := NewGate(st, fc, testLogger())
	ctx := context.Background()

	g.Resolve(ctx, "/dashboard")

	require.NoError(t, g.SaveOnboardingDraft(ctx, []byte(`{"shop_name":"x"}`)))
	draft, err := g.OnboardingDraft(ctx)
	require.NoError(t, err)
	require.NotNil(t, draft)

	require.NoError(t, g.SubmitOnboarding(ctx, map[string]string{"shop_name": "x"}))
	require.Equal(t, 1, fc.OnboardingCalls)

	draft, err = g.OnboardingDraft(ctx)
	require.NoError(t, err)
	require.Nil(t, draft)
}
