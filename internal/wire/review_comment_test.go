package wire

import (
	"net/http"
	"testing"
	"time"

	"review-catalog/internal/data/entity"
	"review-catalog/pkg/utils"

	"github.com/stretchr/testify/require"
)

func TestOneReviewPerAuthorAndTitle(t *testing.T) {
	app := newTestApp(t)
	title := app.seedTitle(t, "Reviewed", 2015)
	first := app.seedUser(t, "first", entity.RoleUser, false)
	second := app.seedUser(t, "second", entity.RoleUser, false)
	path := "/api/v1/titles/" + title.ID.String() + "/reviews"

	rec := app.do(t, http.MethodPost, path, app.tokenFor(t, first),
		map[string]any{"text": "great", "score": 8})
	requireStatus(t, rec, http.StatusCreated)
	data := dataMap(t, rec)
	require.Equal(t, "first", data["author"])
	require.Equal(t, "Reviewed", data["title"])

	// Second review by the same author
	rec = app.do(t, http.MethodPost, path, app.tokenFor(t, first),
		map[string]any{"text": "changed my mind", "score": 3})
	requireStatus(t, rec, http.StatusBadRequest)

	// A different author is fine
	rec = app.do(t, http.MethodPost, path, app.tokenFor(t, second),
		map[string]any{"text": "fine", "score": 5})
	requireStatus(t, rec, http.StatusCreated)
}

func TestReviewScoreBounds(t *testing.T) {
	app := newTestApp(t)
	title := app.seedTitle(t, "Bounds", 2015)
	user := app.seedUser(t, "scorer", entity.RoleUser, false)
	path := "/api/v1/titles/" + title.ID.String() + "/reviews"

	for _, score := range []int{0, 11, -1} {
		rec := app.do(t, http.MethodPost, path, app.tokenFor(t, user),
			map[string]any{"text": "out of range", "score": score})
		requireStatus(t, rec, http.StatusBadRequest)
	}
}

func TestReviewsRequireExistingTitle(t *testing.T) {
	app := newTestApp(t)
	user := app.seedUser(t, "lost", entity.RoleUser, false)
	path := "/api/v1/titles/" + utils.GenerateUUID().String() + "/reviews"

	rec := app.do(t, http.MethodGet, path, "", nil)
	requireStatus(t, rec, http.StatusNotFound)

	rec = app.do(t, http.MethodPost, path, app.tokenFor(t, user),
		map[string]any{"text": "orphan", "score": 5})
	requireStatus(t, rec, http.StatusNotFound)
}

func TestReviewMutationPolicy(t *testing.T) {
	app := newTestApp(t)
	title := app.seedTitle(t, "Contested", 2018)
	author := app.seedUser(t, "author", entity.RoleUser, false)
	stranger := app.seedUser(t, "stranger", entity.RoleUser, false)
	moderator := app.seedUser(t, "mod", entity.RoleModerator, false)
	review := app.seedReview(t, title, author, 7)
	path := "/api/v1/titles/" + title.ID.String() + "/reviews/" + review.ID.String()

	// Stranger cannot touch it
	rec := app.do(t, http.MethodPatch, path, app.tokenFor(t, stranger),
		map[string]any{"score": 1})
	requireStatus(t, rec, http.StatusForbidden)

	// Author edits their own
	rec = app.do(t, http.MethodPatch, path, app.tokenFor(t, author),
		map[string]any{"score": 9})
	requireStatus(t, rec, http.StatusOK)
	require.EqualValues(t, 9, dataMap(t, rec)["score"])

	// Moderator deletes someone else's
	rec = app.do(t, http.MethodDelete, path, app.tokenFor(t, moderator), nil)
	requireStatus(t, rec, http.StatusNoContent)

	rec = app.do(t, http.MethodGet, path, "", nil)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestReviewListNewestFirst(t *testing.T) {
	app := newTestApp(t)
	title := app.seedTitle(t, "Ordered", 2020)
	older := app.seedUser(t, "older", entity.RoleUser, false)
	newer := app.seedUser(t, "newer", entity.RoleUser, false)

	first := app.seedReview(t, title, older, 4)
	second := app.seedReview(t, title, newer, 8)
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	rec := app.do(t, http.MethodGet, "/api/v1/titles/"+title.ID.String()+"/reviews", "", nil)
	requireStatus(t, rec, http.StatusOK)

	items, ok := dataMap(t, rec)["data"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	top, ok := items[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "newer", top["author"])
}

func TestCommentLifecycleAndPolicy(t *testing.T) {
	app := newTestApp(t)
	title := app.seedTitle(t, "Discussed", 2021)
	author := app.seedUser(t, "author", entity.RoleUser, false)
	commenter := app.seedUser(t, "commenter", entity.RoleUser, false)
	stranger := app.seedUser(t, "stranger", entity.RoleUser, false)
	moderator := app.seedUser(t, "mod", entity.RoleModerator, false)
	review := app.seedReview(t, title, author, 6)
	base := "/api/v1/titles/" + title.ID.String() + "/reviews/" + review.ID.String() + "/comments"

	// Unauthenticated create is rejected by the middleware
	rec := app.do(t, http.MethodPost, base, "", map[string]string{"text": "anon"})
	requireStatus(t, rec, http.StatusUnauthorized)

	rec = app.do(t, http.MethodPost, base, app.tokenFor(t, commenter),
		map[string]string{"text": "well said"})
	requireStatus(t, rec, http.StatusCreated)
	commentID, ok := dataMap(t, rec)["id"].(string)
	require.True(t, ok)

	// Public read
	rec = app.do(t, http.MethodGet, base+"/"+commentID, "", nil)
	requireStatus(t, rec, http.StatusOK)
	require.Equal(t, "commenter", dataMap(t, rec)["author"])

	// Stranger cannot delete
	rec = app.do(t, http.MethodDelete, base+"/"+commentID, app.tokenFor(t, stranger), nil)
	requireStatus(t, rec, http.StatusForbidden)

	// Author deletes their own
	rec = app.do(t, http.MethodDelete, base+"/"+commentID, app.tokenFor(t, commenter), nil)
	requireStatus(t, rec, http.StatusNoContent)

	// Moderator may delete another author's comment
	rec = app.do(t, http.MethodPost, base, app.tokenFor(t, commenter),
		map[string]string{"text": "again"})
	requireStatus(t, rec, http.StatusCreated)
	commentID, ok = dataMap(t, rec)["id"].(string)
	require.True(t, ok)

	rec = app.do(t, http.MethodDelete, base+"/"+commentID, app.tokenFor(t, moderator), nil)
	requireStatus(t, rec, http.StatusNoContent)
}

func TestCommentsRequireExistingParents(t *testing.T) {
	app := newTestApp(t)
	title := app.seedTitle(t, "Lonely", 2022)
	user := app.seedUser(t, "user", entity.RoleUser, false)

	// Review from another title does not resolve under this one
	other := app.seedTitle(t, "Other", 2023)
	review := app.seedReview(t, other, user, 5)

	path := "/api/v1/titles/" + title.ID.String() + "/reviews/" + review.ID.String() + "/comments"
	rec := app.do(t, http.MethodGet, path, "", nil)
	requireStatus(t, rec, http.StatusNotFound)
}
