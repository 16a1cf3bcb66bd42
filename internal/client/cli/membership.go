package cli

import (
	"context"
	"errors"

	"github.com/Amelia-Slapek/clea-client/internal/client/membership"
)

// ToggleFavorite flips a product in or out of the favorites set.
func (a *App) ToggleFavorite(ctx context.Context, productID string) error {
	return a.toggle(ctx, membership.Favorites, productID, "favorites")
}

// ToggleSavedArticle flips an article in or out of the saved set.
func (a *App) ToggleSavedArticle(ctx context.Context, articleID string) error {
	return a.toggle(ctx, membership.SavedArticles, articleID, "saved articles")
}

// ToggleAllergy flips an ingredient in or out of the allergen set.
func (a *App) ToggleAllergy(ctx context.Context, ingredientID string) error {
	return a.toggle(ctx, membership.Allergies, ingredientID, "allergens")
}

func (a *App) toggle(ctx context.Context, kind membership.Kind, entityID, label string) error {
	member, err := a.toggler.Toggle(ctx, kind, entityID)
	if err != nil {
		printToggleError(err)
		return err
	}
	if member {
		printlnFn("Added", entityID, "to", label)
	} else {
		printlnFn("Removed", entityID, "from", label)
	}
	return nil
}

// Like toggles an article like and prints the updated count. The count is
// adjusted optimistically inside the toggler, so the number shown already
// reflects the server state on success or the rolled-back value on failure.
func (a *App) Like(ctx context.Context, articleID string) error {
	counter := a.likeCounter(articleID)
	liked, err := a.toggler.ToggleLike(ctx, articleID, counter)
	if err != nil {
		printToggleError(err)
		return err
	}
	if liked {
		printlnFn("Liked article", articleID, "- likes:", counter.Value())
	} else {
		printlnFn("Unliked article", articleID, "- likes:", counter.Value())
	}
	return nil
}

func printToggleError(err error) {
	switch {
	case errors.Is(err, membership.ErrLoginRequired):
		printlnFn("Please log in first")
	case errors.Is(err, membership.ErrToggleInFlight):
		printlnFn("Still syncing the previous change, try again")
	default:
		printlnFn("Error:", err.Error())
	}
}
