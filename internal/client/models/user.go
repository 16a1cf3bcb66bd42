// Package models contains client-side domain types for the Clea client:
// the authenticated user and their membership sets, auth operation results,
// compatibility reports, and skincare routines.
package models

// User is the client's snapshot of the authenticated identity as returned
// by the backend. Membership sets (favorites, saved articles, allergies)
// are owned by the server; the client only replaces them wholesale with
// values confirmed by a server response.
type User struct {
	ID            string `json:"_id"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Username      string `json:"username"`
	AvatarImageID string `json:"avatarImageId,omitempty"`

	FavoriteProducts []string `json:"favoriteProducts,omitempty"`
	SavedArticles    []string `json:"savedArticles,omitempty"`
	Allergies        []string `json:"allergies,omitempty"`
}

// Clone returns a deep copy of the user, including membership slices,
// so callers can hand out snapshots without sharing mutable state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.FavoriteProducts = append([]string(nil), u.FavoriteProducts...)
	c.SavedArticles = append([]string(nil), u.SavedArticles...)
	c.Allergies = append([]string(nil), u.Allergies...)
	return &c
}

// HasFavorite reports whether productID is in the user's favorites set.
func (u *User) HasFavorite(productID string) bool {
	return contains(u.FavoriteProducts, productID)
}

// HasSavedArticle reports whether articleID is in the user's saved set.
func (u *User) HasSavedArticle(articleID string) bool {
	return contains(u.SavedArticles, articleID)
}

// HasAllergy reports whether ingredientID is in the user's allergen set.
func (u *User) HasAllergy(ingredientID string) bool {
	return contains(u.Allergies, ingredientID)
}

func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

// Sanitize returns the subset of the user that may be written to durable
// local storage: identity and display fields only. Membership sets, or any
// other server-side field, never reach the persisted record; a reload
// reconstructs them from the backend.
func Sanitize(u *User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Username:      u.Username,
		AvatarImageID: u.AvatarImageID,
	}
}
