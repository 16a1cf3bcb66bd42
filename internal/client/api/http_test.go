package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amelia-Slapek/clea-client/internal/client/models"
	"github.com/Amelia-Slapek/clea-client/internal/logging"
)

func newClient(ts *httptest.Server) *HTTPClient {
	return NewHTTPClient(ts.URL, 5*time.Second, logging.NewNop())
}

func TestVerifyToken_SendsBearer(t *testing.T) {
	var gotAuth, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	err := newClient(ts).VerifyToken(context.Background(), "tok-123")

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "/api/auth/verify-token", gotPath)
}

func TestVerifyToken_NonOKIsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	err := newClient(ts).VerifyToken(context.Background(), "stale")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_Success(t *testing.T) {
	var gotBody map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"token":   "tok-new",
			"user":    map[string]any{"_id": "u1", "username": "anowak"},
			"message": "welcome back",
		})
	}))
	defer ts.Close()

	resp, err := newClient(ts).Login(context.Background(), "anowak", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "anowak", gotBody["login"])
	assert.Equal(t, "secret123", gotBody["password"])
	assert.Equal(t, "tok-new", resp.Token)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, "welcome back", resp.Message)
}

func TestLogin_FailureCarriesVerificationFields(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"message":              "please confirm your email",
			"requiresVerification": true,
			"email":                "anna@example.com",
		})
	}))
	defer ts.Close()

	_, err := newClient(ts).Login(context.Background(), "anowak", "secret123")

	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "please confirm your email", apiErr.Message)
	assert.True(t, apiErr.RequiresVerification)
	assert.Equal(t, "anna@example.com", apiErr.Email)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDo_EmptyErrorBodyFallsBackToStatusText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer ts.Close()

	_, err := newClient(ts).AddAllergy(context.Background(), "tok", "i1")

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusText(http.StatusConflict), apiErr.Message)
}

func TestDo_ServerDown(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	err := newClient(ts).VerifyToken(context.Background(), "tok")

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMembershipEndpoints_MethodsAndPaths(t *testing.T) {
	type call struct{ method, path string }
	var got call
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = call{r.Method, r.URL.Path}
		json.NewEncoder(w).Encode(map[string]any{
			"favoriteProducts": []string{"p1"},
			"savedArticles":    []string{"a1"},
			"allergies":        []string{"i1"},
		})
	}))
	defer ts.Close()
	c := newClient(ts)
	ctx := context.Background()

	tests := []struct {
		name string
		fn   func() (*MembershipResponse, error)
		want call
	}{
		{"add favorite", func() (*MembershipResponse, error) { return c.AddFavorite(ctx, "t", "p1") },
			call{http.MethodPost, "/api/auth/favorites/p1"}},
		{"remove favorite", func() (*MembershipResponse, error) { return c.RemoveFavorite(ctx, "t", "p1") },
			call{http.MethodDelete, "/api/auth/favorites/p1"}},
		{"add saved article", func() (*MembershipResponse, error) { return c.AddSavedArticle(ctx, "t", "a1") },
			call{http.MethodPost, "/api/auth/saved-articles/a1"}},
		{"remove saved article", func() (*MembershipResponse, error) { return c.RemoveSavedArticle(ctx, "t", "a1") },
			call{http.MethodDelete, "/api/auth/saved-articles/a1"}},
		{"add allergy", func() (*MembershipResponse, error) { return c.AddAllergy(ctx, "t", "i1") },
			call{http.MethodPost, "/api/auth/allergies/i1"}},
		{"remove allergy", func() (*MembershipResponse, error) { return c.RemoveAllergy(ctx, "t", "i1") },
			call{http.MethodDelete, "/api/auth/allergies/i1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.fn()
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckCompatibility_Payload(t *testing.T) {
	var gotBody map[string][]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products/check-compatibility", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"compatible": false,
			"conflicts": []map[string]string{
				{"productA": "p1", "productB": "p2", "reason": "retinol with acids"},
			},
			"allergenWarnings": []map[string]string{
				{"productId": "p2", "ingredient": "limonene"},
			},
		})
	}))
	defer ts.Close()

	report, err := newClient(ts).CheckCompatibility(context.Background(), "tok", []string{"p1", "p2"})

	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, gotBody["productIds"])
	assert.False(t, report.Compatible)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, "retinol with acids", report.Conflicts[0].Reason)
	require.Len(t, report.AllergenWarnings, 1)
	assert.Equal(t, "limonene", report.AllergenWarnings[0].Ingredient)
}

func TestSaveRoutine_CreateVsUpdate(t *testing.T) {
	type call struct{ method, path string }
	var got call
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = call{r.Method, r.URL.Path}
		var rt models.Routine
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rt))
		if rt.ID == "" {
			rt.ID = "r-new"
		}
		json.NewEncoder(w).Encode(rt)
	}))
	defer ts.Close()
	c := newClient(ts)
	ctx := context.Background()

	created, err := c.SaveRoutine(ctx, "tok", models.Routine{Name: "Morning", TimeOfDay: "morning", ProductIDs: []string{"p1"}})
	require.NoError(t, err)
	assert.Equal(t, call{http.MethodPost, "/api/skincare-routines"}, got)
	assert.Equal(t, "r-new", created.ID)

	_, err = c.SaveRoutine(ctx, "tok", models.Routine{ID: "r7", Name: "Evening", TimeOfDay: "evening", ProductIDs: []string{"p1"}})
	require.NoError(t, err)
	assert.Equal(t, call{http.MethodPut, "/api/skincare-routines/r7"}, got)
}

func TestLikeEndpoints(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/articles/a1/like":
			json.NewEncoder(w).Encode(map[string]int{"likes": 5})
		case "/api/articles/a1/unlike":
			json.NewEncoder(w).Encode(map[string]int{"likes": 4})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()
	c := newClient(ts)
	ctx := context.Background()

	liked, err := c.LikeArticle(ctx, "tok", "a1")
	require.NoError(t, err)
	assert.Equal(t, 5, liked.Likes)

	unliked, err := c.UnlikeArticle(ctx, "tok", "a1")
	require.NoError(t, err)
	assert.Equal(t, 4, unliked.Likes)
}

func TestPasswordAndVerificationEndpoints(t *testing.T) {
	var calls []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"message": "done"})
	}))
	defer ts.Close()
	c := newClient(ts)
	ctx := context.Background()

	_, err := c.ForgotPassword(ctx, "anna@example.com")
	require.NoError(t, err)
	_, err = c.ResetPassword(ctx, "reset-tok", "newsecret1")
	require.NoError(t, err)
	_, err = c.ResendVerification(ctx, "anna@example.com")
	require.NoError(t, err)
	_, err = c.VerifyEmail(ctx, "verif-tok")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST /api/auth/forgot-password",
		"POST /api/auth/reset-password",
		"POST /api/auth/resend-verification",
		"GET /api/auth/verify-email/verif-tok",
	}, calls)
}
