// Package models defines the client-side view of the entities the portal
// works with. Every value here mirrors server state; nothing originates
// locally except transient UI flags.
package models

// AccountStatus is the backend-assigned approval state of a merchant
// account. The backend is inconsistent about casing, so parsing accepts
// both forms; everything unrecognized maps to StatusOther.
type AccountStatus string

const (
	StatusActive   AccountStatus = "Active"
	StatusVerified AccountStatus = "Verified"
	StatusPending  AccountStatus = "Pending"
	StatusOther    AccountStatus = "Other"
)

// ParseAccountStatus normalizes the raw status string from any of the
// profile payload shapes. An empty or unknown value is treated as Pending
// only when raw is empty; other unknown values map to StatusOther.
func ParseAccountStatus(raw string) AccountStatus {
	switch raw {
	case "Active", "active":
		return StatusActive
	case "Verified", "verified":
		return StatusVerified
	case "Pending", "pending":
		return StatusPending
	case "":
		return StatusPending
	default:
		return StatusOther
	}
}

// Approved reports whether the account may use the merchant views.
func (s AccountStatus) Approved() bool {
	return s == StatusActive || s == StatusVerified
}

// Account is the normalized merchant account snapshot held by the session.
type Account struct {
	ID         string            `json:"id"`
	Email      string            `json:"email"`
	ShopName   string            `json:"shop_name"`
	Status     AccountStatus     `json:"status"`
	Onboarding map[string]string `json:"onboarding,omitempty"`
}
