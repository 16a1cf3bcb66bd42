package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	ResendVerification(ctx context.Context) error
	VerifyEmail(ctx context.Context) error
	Profile(ctx context.Context) error
	Refresh(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ToggleFavorite(ctx context.Context, productID string) error
	ToggleSavedArticle(ctx context.Context, articleID string) error
	ToggleAllergy(ctx context.Context, ingredientID string) error
	Like(ctx context.Context, articleID string) error
	Routine(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the Clea CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help            — show available commands
//	  - register        — create an account
//	  - login           — authenticate
//	  - forgot          — request a password reset email
//	  - reset           — set a new password with a reset token
//	  - resend          — resend the verification email
//	  - verify          — confirm an email with a verification token
//	  - exit | quit     — leave the program
//
//	Logged in:
//	  - help            — show available commands
//	  - profile         — show the current profile
//	  - edit            — update profile fields
//	  - refresh         — re-fetch the profile from the server
//	  - fav <id>        — toggle a favorite product
//	  - save <id>       — toggle a saved article
//	  - allergen <id>   — toggle an allergen
//	  - like <id>       — toggle an article like
//	  - routine ...     — manage the routine builder (see 'routine help')
//	  - logout          — log out
//	  - exit | quit     — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("clea> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, edit, refresh, fav <id>, save <id>, allergen <id>, like <id>, routine, logout, exit")
			} else {
				printlnFn("Available commands: register, login, forgot, reset, resend, verify, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "resend":
			_ = a.ResendVerification(ctx)

		case "verify":
			_ = a.VerifyEmail(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "fav":
			if len(args) == 0 {
				printlnFn("Usage: fav <product-id>")
				continue
			}
			_ = a.ToggleFavorite(ctx, args[0])

		case "save":
			if len(args) == 0 {
				printlnFn("Usage: save <article-id>")
				continue
			}
			_ = a.ToggleSavedArticle(ctx, args[0])

		case "allergen":
			if len(args) == 0 {
				printlnFn("Usage: allergen <ingredient-id>")
				continue
			}
			_ = a.ToggleAllergy(ctx, args[0])

		case "like":
			if len(args) == 0 {
				printlnFn("Usage: like <article-id>")
				continue
			}
			_ = a.Like(ctx, args[0])

		case "routine":
			_ = a.Routine(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
