package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"shopgate/internal/client/session"
	"shopgate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and runs them through the session gate.
// On success the gate persists the session and the view moves to the
// status-based landing page.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	decision, err := a.gate.Login(ctx, email, string(password))
	if err != nil {
		printlnFn("Login failed:", err.Error())
		return nil
	}

	printlnFn("Logged in as", email)
	a.applyDecision(decision)
	return nil
}

// Register creates a new merchant account. The account starts unapproved;
// signup then drops any stale session and opens onboarding.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	shopName, err := getSimpleText(a.reader, "Enter shop name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Register(ctx, email, string(password), shopName); err != nil {
		printlnFn("Registration failed:", err.Error())
		return nil
	}

	fmt.Println("Success!")
	a.applyDecision(a.gate.Signup(ctx))
	return nil
}

// Signup clears the session and opens onboarding without validation.
func (a *App) Signup(ctx context.Context) error {
	a.applyDecision(a.gate.Signup(ctx))
	return nil
}

// Logout clears the session; the local keys go away even when the
// backend call fails.
func (a *App) Logout(ctx context.Context) error {
	a.applyDecision(a.gate.Logout(ctx))
	printlnFn("Logged out")
	return nil
}

// Onboarding collects the onboarding form field by field, keeping a
// draft across restarts, and submits it.
func (a *App) Onboarding(ctx context.Context) error {
	fields := map[string]string{}
	for _, name := range []string{"shop_name", "address", "phone"} {
		v, err := getSimpleText(a.reader, "Enter "+name, os.Stdout)
		if err != nil {
			return err
		}
		fields[name] = v
		if raw, err := json.Marshal(fields); err == nil {
			_ = a.gate.SaveOnboardingDraft(ctx, raw)
		}
	}

	if err := a.gate.SubmitOnboarding(ctx, fields); err != nil {
		printlnFn("Onboarding submission failed:", err.Error())
		return nil
	}
	printlnFn("Onboarding submitted, waiting for approval")
	a.route = session.RoutePendingApproval
	return nil
}
