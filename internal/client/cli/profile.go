package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/Amelia-Slapek/clea-client/internal/client/models"
	"github.com/Amelia-Slapek/clea-client/internal/common"
)

// Profile prints the current user's profile and membership counts.
func (a *App) Profile(ctx context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(fmt.Sprintf("%s %s <%s> (@%s)", u.FirstName, u.LastName, u.Email, u.Username))
	printlnFn(fmt.Sprintf("favorites: %d, saved articles: %d, allergens: %d",
		len(u.FavoriteProducts), len(u.SavedArticles), len(u.Allergies)))
	return nil
}

// Refresh re-fetches the profile from the server so membership sets
// changed on another device show up here.
func (a *App) Refresh(ctx context.Context) error {
	res := a.session.RefreshUserData(ctx)
	if !res.Success {
		printResult(res)
		return nil
	}
	return a.Profile(ctx)
}

// EditProfile prompts for profile fields; empty input keeps the current
// value. Changing the password asks for the current one first, and both
// password buffers are wiped before returning.
func (a *App) EditProfile(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "First name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Username (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	change, err := getSimpleText(a.reader, "Change password? (y/N)", os.Stdout)
	if err != nil {
		return err
	}

	req := models.UpdateProfileRequest{
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
	}

	if change == "y" || change == "Y" {
		printlnFn("Current password:")
		current, err := getPassword(os.Stdout)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(current)

		printlnFn("New password:")
		next, err := getPassword(os.Stdout)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(next)

		req.CurrentPassword = string(current)
		req.NewPassword = string(next)
	}

	printResult(a.session.UpdateProfile(ctx, req))
	return nil
}
