package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUser() *User {
	return &User{
		ID:               "u1",
		Email:            "anna@example.com",
		FirstName:        "Anna",
		LastName:         "Nowak",
		Username:         "anowak",
		AvatarImageID:    "av42",
		FavoriteProducts: []string{"p1", "p2"},
		SavedArticles:    []string{"a1"},
		Allergies:        []string{"i9"},
	}
}

func TestUserClone_Independent(t *testing.T) {
	u := sampleUser()
	c := u.Clone()
	require.Equal(t, u, c)

	c.FavoriteProducts[0] = "changed"
	c.Allergies = append(c.Allergies, "i10")

	assert.Equal(t, "p1", u.FavoriteProducts[0])
	assert.Len(t, u.Allergies, 1)
}

func TestUserClone_Nil(t *testing.T) {
	var u *User
	assert.Nil(t, u.Clone())
}

func TestMembershipChecks(t *testing.T) {
	u := sampleUser()

	assert.True(t, u.HasFavorite("p2"))
	assert.False(t, u.HasFavorite("p3"))
	assert.True(t, u.HasSavedArticle("a1"))
	assert.False(t, u.HasSavedArticle("a2"))
	assert.True(t, u.HasAllergy("i9"))
	assert.False(t, u.HasAllergy("i1"))
}

func TestSanitize_DropsMembershipSets(t *testing.T) {
	u := sampleUser()
	s := Sanitize(u)

	require.NotNil(t, s)
	assert.Equal(t, u.ID, s.ID)
	assert.Equal(t, u.Email, s.Email)
	assert.Equal(t, u.FirstName, s.FirstName)
	assert.Equal(t, u.LastName, s.LastName)
	assert.Equal(t, u.Username, s.Username)
	assert.Equal(t, u.AvatarImageID, s.AvatarImageID)

	assert.Nil(t, s.FavoriteProducts)
	assert.Nil(t, s.SavedArticles)
	assert.Nil(t, s.Allergies)
}

func TestSanitize_Idempotent(t *testing.T) {
	u := sampleUser()
	once := Sanitize(u)
	twice := Sanitize(once)
	assert.Equal(t, once, twice)
}

func TestSanitize_Nil(t *testing.T) {
	assert.Nil(t, Sanitize(nil))
}
