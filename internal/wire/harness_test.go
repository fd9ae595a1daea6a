package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"review-catalog/internal/data/entity"
	"review-catalog/pkg/mailer"
	"review-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func errNotFound(what string) error {
	return fmt.Errorf("%s not found", what)
}

const testJWTSecret = "test-secret"

type testApp struct {
	router *chi.Mux
	store  *fakeStore
	config *utils.Config
}

// newTestApp wires the full router against the in-memory fakes with a
// logging mailer.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := newFakeStore()
	repo := newFakeRepository(store)
	config := &utils.Config{
		App:  utils.AppConfig{Name: "review-catalog-test", Port: "0"},
		JWT:  utils.JWTConfig{Secret: testJWTSecret, ExpiryHours: 1},
		Code: utils.CodeConfig{Length: 6},
	}
	logger := zap.NewNop()
	mail := mailer.New(utils.EmailConfig{}, logger)

	app := Wiring(repo, config, mail, logger)
	return &testApp{router: app.Router, store: store, config: config}
}

// seedUser inserts a user directly into the store, bypassing signup.
// The confirmation code for every seeded user is "654321".
func (a *testApp) seedUser(t *testing.T, username string, role entity.UserRole, superuser bool) *entity.User {
	t.Helper()

	codeHash, err := utils.HashConfirmationCode("654321")
	require.NoError(t, err)

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:    username,
		Email:       username + "@example.com",
		Role:        role,
		CodeHash:    codeHash,
		IsSuperuser: superuser,
	}

	a.store.mu.Lock()
	a.store.users[user.ID] = user
	a.store.mu.Unlock()

	return user
}

func (a *testApp) tokenFor(t *testing.T, user *entity.User) string {
	t.Helper()

	token, err := utils.GenerateAccessToken(
		testJWTSecret, user.ID, user.Username, string(user.Role), 1)
	require.NoError(t, err)
	return token
}

// do runs one request through the router. A non-nil body is marshaled
// as JSON; a non-empty token becomes a bearer header.
func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// decodeEnvelope parses the standard response envelope; Data comes back
// as generic JSON values.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()

	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func dataMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	resp := decodeEnvelope(t, rec)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "expected object data, got %T", resp.Data)
	return data
}

// seedTitle inserts a title directly into the store.
func (a *testApp) seedTitle(t *testing.T, name string, year int) *entity.Title {
	t.Helper()

	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: name,
		Year: year,
	}

	a.store.mu.Lock()
	a.store.titles[title.ID] = title
	a.store.titleGenres[title.ID] = nil
	a.store.mu.Unlock()

	return title
}

func (a *testApp) seedReview(t *testing.T, title *entity.Title, author *entity.User, score int) *entity.Review {
	t.Helper()

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		TitleID:  title.ID,
		AuthorID: author.ID,
		Text:     "seeded review",
		Score:    score,
	}

	a.store.mu.Lock()
	a.store.reviews[review.ID] = review
	a.store.mu.Unlock()

	return review
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}
