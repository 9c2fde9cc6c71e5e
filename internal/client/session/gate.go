// Package session implements the Session Gate: the once-per-load decision
// of whether the user may see protected views, kept consistent with
// in-session login/logout/signup actions. All ground truth lives in the
// backend; the gate only validates the locally stored credential and
// routes accordingly, failing closed when the backend cannot be reached.
package session

import (
	"context"
	"errors"
	"time"

	"shopgate/internal/client/api"
	"shopgate/internal/client/models"
	"shopgate/internal/client/store"
	"shopgate/internal/logging"

	"github.com/golang-jwt/jwt/v5"
)

// State is the gate's client-side lifecycle.
type State int

const (
	StateUnchecked State = iota
	StateValidating
	StateResolved
)

// Decision is the outcome of resolving the gate against a current path:
// either stay where you are, or go to Redirect.
type Decision struct {
	Allow    bool
	Redirect Route
}

func allow() Decision           { return Decision{Allow: true} }
func redirect(r Route) Decision { return Decision{Redirect: r} }

// Gate holds the session snapshot for one running client.
type Gate struct {
	store store.Store
	api   api.Client
	log   logging.Logger

	state   State
	token   string
	account *models.Account
}

func NewGate(st store.Store, c api.Client, log logging.Logger) *Gate {
	return &Gate{store: st, api: c, log: log}
}

func (g *Gate) State() State             { return g.state }
func (g *Gate) Account() *models.Account { return g.account }
func (g *Gate) Token() string            { return g.token }

// Authenticated reports whether the gate resolved to a live account.
func (g *Gate) Authenticated() bool {
	return g.state == StateResolved && g.account != nil
}

// Resolve runs the page-load state machine against the current path.
//
//   - No stored token: public paths render, protected paths redirect
//     to login.
//   - Stored token: validate it against the profile endpoint. On
//     rejection, one silent re-authentication attempt is made from the
//     credential cache; if that also fails every session key is cleared
//     and the user lands on login. Unreachable backend counts as a
//     validation failure (fail closed).
//   - Validated: if the current path is already on the protected
//     allow-list the user stays on it regardless of status; otherwise the
//     account status picks the landing page.
func (g *Gate) Resolve(ctx context.Context, currentPath string) Decision {
	g.state = StateUnchecked
	g.account = nil
	route := ParseRoute(currentPath)

	tok, err := g.store.Get(ctx, store.KeyToken)
	if err != nil {
		g.log.Error(ctx, "session store read failed", "error", err)
		return g.failClosed(ctx)
	}

	if tok == nil {
		g.state = StateResolved
		if IsPublic(route) {
			return allow()
		}
		return redirect(RouteLogin)
	}

	g.state = StateValidating
	account, token, err := g.validate(ctx, string(tok))
	if err != nil {
		g.log.Warn(ctx, "session validation failed", "error", err)
		return g.failClosed(ctx)
	}

	g.finishResolve(ctx, token, account)

	// Already on an allowed page: the status-based redirect does not
	// apply. See DESIGN.md; intentional per observed product behavior.
	if IsProtected(route) {
		return allow()
	}
	return redirect(RouteForStatus(account.Status))
}

// validate checks a token against the profile endpoint, falling back to
// the cached credentials once if the token is rejected. Returns the
// account and the token that ended up valid.
func (g *Gate) validate(ctx context.Context, token string) (*models.Account, string, error) {
	if tokenExpired(token) {
		return g.reauth(ctx)
	}

	account, err := g.api.Profile(ctx, token)
	if err == nil {
		return account, token, nil
	}
	if errors.Is(err, api.ErrUnauthorized) {
		return g.reauth(ctx)
	}
	return nil, "", err
}

// reauth replays the cached credentials against the login endpoint. The
// cache exists solely for this: recovering from a rejected token without
// bothering the user.
func (g *Gate) reauth(ctx context.Context) (*models.Account, string, error) {
	email, err := g.store.GetSealed(ctx, store.KeyCachedEmail)
	if err != nil || email == nil {
		return nil, "", api.ErrUnauthorized
	}
	password, err := g.store.GetSealed(ctx, store.KeyCachedPassword)
	if err != nil || password == nil {
		return nil, "", api.ErrUnauthorized
	}

	token, account, err := g.api.Login(ctx, string(email), string(password))
	if err != nil {
		return nil, "", err
	}
	g.log.Info(ctx, "silent re-authentication succeeded")
	return account, token, nil
}

// tokenExpired peeks at the token's exp claim without verifying the
// signature (verification is the backend's job). Opaque tokens are
// passed through to the backend as-is.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// finishResolve persists the fresh token and account snapshot and marks
// the gate resolved.
func (g *Gate) finishResolve(ctx context.Context, token string, account *models.Account) {
	g.token = token
	g.account = account
	g.state = StateResolved

	if err := g.store.Set(ctx, store.KeyToken, []byte(token)); err != nil {
		g.log.Error(ctx, "failed to persist token", "error", err)
	}
	if err := g.store.SaveAccount(ctx, account); err != nil {
		g.log.Error(ctx, "failed to persist account snapshot", "error", err)
	}
}

// failClosed clears every session key and sends the user to login.
func (g *Gate) failClosed(ctx context.Context) Decision {
	if err := g.store.Clear(ctx); err != nil {
		g.log.Error(ctx, "failed to clear session", "error", err)
	}
	g.token = ""
	g.account = nil
	g.state = StateResolved
	return redirect(RouteLogin)
}

// Login authenticates with fresh credentials, persists the session, and
// returns the status-based landing decision. The password is cached
// sealed so a later token rejection can re-authenticate silently.
func (g *Gate) Login(ctx context.Context, email, password string) (Decision, error) {
	token, account, err := g.api.Login(ctx, email, password)
	if err != nil {
		return redirect(RouteLogin), err
	}

	if err := g.store.SetSealed(ctx, store.KeyCachedEmail, []byte(email)); err != nil {
		g.log.Error(ctx, "failed to cache credentials", "error", err)
	}
	if err := g.store.SetSealed(ctx, store.KeyCachedPassword, []byte(password)); err != nil {
		g.log.Error(ctx, "failed to cache credentials", "error", err)
	}

	g.finishResolve(ctx, token, account)
	return redirect(RouteForStatus(account.Status)), nil
}

// Logout tells the backend best-effort, then clears the session. The
// local keys go away even when the network call fails.
func (g *Gate) Logout(ctx context.Context) Decision {
	if g.token != "" {
		if err := g.api.Logout(ctx, g.token); err != nil {
			g.log.Warn(ctx, "logout call failed, clearing session anyway", "error", err)
		}
	}
	d := g.failClosed(ctx)
	g.state = StateUnchecked
	return d
}

// Signup clears any previous session and sends the user into onboarding
// without validation.
func (g *Gate) Signup(ctx context.Context) Decision {
	if err := g.store.Clear(ctx); err != nil {
		g.log.Error(ctx, "failed to clear session", "error", err)
	}
	g.token = ""
	g.account = nil
	g.state = StateUnchecked
	return redirect(RouteOnboarding)
}

// SaveOnboardingDraft keeps partially filled onboarding data across
// restarts. The draft is session state and vanishes with the session.
func (g *Gate) SaveOnboardingDraft(ctx context.Context, raw []byte) error {
	return g.store.Set(ctx, store.KeyOnboardingDraft, raw)
}

func (g *Gate) OnboardingDraft(ctx context.Context) ([]byte, error) {
	return g.store.Get(ctx, store.KeyOnboardingDraft)
}

// SubmitOnboarding sends the onboarding form and drops the draft on
// success.
func (g *Gate) SubmitOnboarding(ctx context.Context, fields map[string]string) error {
	if err := g.api.SubmitOnboarding(ctx, g.token, fields); err != nil {
		return err
	}
	return g.store.Delete(ctx, store.KeyOnboardingDraft)
}
