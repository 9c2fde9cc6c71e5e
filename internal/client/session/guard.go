package session

// GuardVerdict is what a protected view should do right now.
type GuardVerdict int

const (
	// GuardPending: the gate has not resolved yet; render a neutral
	// placeholder, never a flash of protected content.
	GuardPending GuardVerdict = iota
	// GuardRedirectLogin: no authenticated session.
	GuardRedirectLogin
	// GuardRedirectPendingApproval: authenticated but not approved while
	// the view requires approval.
	GuardRedirectPendingApproval
	// GuardRender: show the protected content.
	GuardRender
)

// Guard wraps a protected view. requireApproved additionally demands an
// approved account status.
func (g *Gate) Guard(requireApproved bool) GuardVerdict {
	if g.state != StateResolved {
		return GuardPending
	}
	if g.account == nil {
		return GuardRedirectLogin
	}
	if requireApproved && !g.account.Status.Approved() {
		return GuardRedirectPendingApproval
	}
	return GuardRender
}
