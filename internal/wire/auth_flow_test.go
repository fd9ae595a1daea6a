package wire

import (
	"encoding/json"
	"net/http"
	"testing"

	"review-catalog/internal/data/entity"

	"github.com/stretchr/testify/require"
)

func TestSignupCreatesUserWithCodeHash(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
	})
	requireStatus(t, rec, http.StatusOK)

	data := dataMap(t, rec)
	require.Equal(t, "alice", data["username"])
	require.Equal(t, "alice@example.com", data["email"])

	app.store.mu.Lock()
	defer app.store.mu.Unlock()
	require.Len(t, app.store.users, 1)
	for _, user := range app.store.users {
		require.Equal(t, entity.RoleUser, user.Role)
		require.NotEmpty(t, user.CodeHash)
	}
}

func TestSignupRejectsReservedUsername(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "me",
		"email":    "me@example.com",
	})
	requireStatus(t, rec, http.StatusBadRequest)

	app.store.mu.Lock()
	defer app.store.mu.Unlock()
	require.Empty(t, app.store.users)
}

func TestSignupRejectsDuplicates(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "bob", entity.RoleUser, false)

	// Same username, different email
	rec := app.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "bob",
		"email":    "other@example.com",
	})
	requireStatus(t, rec, http.StatusBadRequest)

	// Different username, same email
	rec = app.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "robert",
		"email":    "bob@example.com",
	})
	requireStatus(t, rec, http.StatusBadRequest)

	app.store.mu.Lock()
	defer app.store.mu.Unlock()
	require.Len(t, app.store.users, 1)
}

func TestSignupRejectsInvalidPayload(t *testing.T) {
	app := newTestApp(t)

	cases := []map[string]string{
		{"username": "no-email"},
		{"email": "no-user@example.com"},
		{"username": "bad name!", "email": "bad@example.com"},
		{"username": "ok", "email": "not-an-email"},
	}
	for _, body := range cases {
		rec := app.do(t, http.MethodPost, "/api/v1/auth/signup", "", body)
		requireStatus(t, rec, http.StatusBadRequest)
	}
}

func TestTokenExchange(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "carol", entity.RoleUser, false)

	rec := app.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username":          "carol",
		"confirmation_code": "654321",
	})
	requireStatus(t, rec, http.StatusOK)

	var token string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	require.NotEmpty(t, token)

	// The token authenticates against the rest of the API.
	rec = app.do(t, http.MethodGet, "/api/v1/users/me", token, nil)
	requireStatus(t, rec, http.StatusOK)
	require.Equal(t, "carol", dataMap(t, rec)["username"])
}

func TestTokenRejections(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "dave", entity.RoleUser, false)

	cases := []map[string]string{
		{"username": "dave", "confirmation_code": "000000"},
		{"username": "nobody", "confirmation_code": "654321"},
		{"username": "dave"},
		{"confirmation_code": "654321"},
	}
	for _, body := range cases {
		rec := app.do(t, http.MethodPost, "/api/v1/auth/token", "", body)
		requireStatus(t, rec, http.StatusBadRequest)
		require.Empty(t, rec.Body.Bytes())
	}
}
