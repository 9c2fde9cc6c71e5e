package api

import (
	"encoding/json"
	"errors"

	"shopgate/internal/client/models"
)

// ErrEmptyProfile means the profile payload held no account in any of the
// recognized shapes.
var ErrEmptyProfile = errors.New("empty profile payload")

// rawAccount covers every field name the backend has been seen using for
// the same data.
type rawAccount struct {
	ID         string            `json:"id"`
	OwnerID    string            `json:"owner_id"`
	Email      string            `json:"email"`
	ShopName   string            `json:"shop_name"`
	Name       string            `json:"name"`
	Status     string            `json:"status"`
	AccountSt  string            `json:"account_status"`
	Onboarding map[string]string `json:"onboarding"`
}

type profileEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Owner json.RawMessage `json:"owner"`
}

// NormalizeProfile turns any of the three profile payload shapes —
// {data:{...}}, {owner:{...}}, or the bare account object — into the one
// internal Account shape. When no recognized status field is present the
// account falls back to Pending rather than failing.
func NormalizeProfile(payload []byte) (*models.Account, error) {
	if len(payload) == 0 {
		return nil, ErrEmptyProfile
	}

	var env profileEnvelope
	body := payload
	if err := json.Unmarshal(payload, &env); err == nil {
		switch {
		case len(env.Data) > 0 && string(env.Data) != "null":
			body = env.Data
		case len(env.Owner) > 0 && string(env.Owner) != "null":
			body = env.Owner
		}
	}

	var raw rawAccount
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	account := &models.Account{
		ID:         firstNonEmpty(raw.ID, raw.OwnerID),
		Email:      raw.Email,
		ShopName:   firstNonEmpty(raw.ShopName, raw.Name),
		Status:     models.ParseAccountStatus(firstNonEmpty(raw.Status, raw.AccountSt)),
		Onboarding: raw.Onboarding,
	}
	if account.ID == "" && account.Email == "" {
		return nil, ErrEmptyProfile
	}
	return account, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
