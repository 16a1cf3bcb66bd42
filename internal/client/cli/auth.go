package cli

import (
	"context"
	"os"

	"github.com/Amelia-Slapek/clea-client/internal/client/models"
	"github.com/Amelia-Slapek/clea-client/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the new-account form and attempts to create the
// account via the session store. On success the user still has to confirm
// their email before logging in, so the verification hint is printed too.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Register(ctx, models.RegisterRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Username:  username,
		Password:  string(password),
	})
	printResult(res)
	return nil
}

// Login prompts for an email-or-username and a password and authenticates
// against the backend. The session store persists the credentials locally
// on success. If the account is unverified the server's hint is shown and
// the user can run "resend".
func (a *App) Login(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Enter email or username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Login(ctx, login, string(password))
	if res.Success {
		if u := a.session.CurrentUser(); u != nil {
			printlnFn("Logged in as", u.Username)
		}
		return nil
	}
	printResult(res)
	return nil
}

// Logout drops the in-memory session and wipes the persisted credentials.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

// ForgotPassword requests a password reset email for the given address.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter account email", os.Stdout)
	if err != nil {
		return err
	}
	printResult(a.session.ForgotPassword(ctx, email))
	return nil
}

// ResetPassword consumes a reset token from the password reset email and
// sets a new password. The new password is wiped before returning.
func (a *App) ResetPassword(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter reset token", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	printResult(a.session.ResetPassword(ctx, token, string(password)))
	return nil
}

// ResendVerification asks the backend to send the verification email again.
func (a *App) ResendVerification(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter account email", os.Stdout)
	if err != nil {
		return err
	}
	printResult(a.session.ResendVerification(ctx, email))
	return nil
}

// VerifyEmail confirms an account with the token from the verification email.
func (a *App) VerifyEmail(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter verification token", os.Stdout)
	if err != nil {
		return err
	}
	printResult(a.session.VerifyEmail(ctx, token))
	return nil
}

// printResult renders an AuthResult for the terminal.
func printResult(res models.AuthResult) {
	switch {
	case res.Success && res.Message != "":
		printlnFn(res.Message)
	case res.Success:
		printlnFn("Success!")
	case res.RequiresVerification:
		printlnFn(res.Message)
		printlnFn("Run 'resend' to get a new verification email for", res.Email)
	default:
		printlnFn("Error:", res.Message)
	}
}
