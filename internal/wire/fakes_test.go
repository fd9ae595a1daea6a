package wire

import (
	"context"
	"sort"
	"strings"
	"sync"

	"review-catalog/internal/data/entity"
	"review-catalog/internal/data/repository"

	"github.com/google/uuid"
)

// fakeStore is a mutex-guarded in-memory database shared by the fake
// repositories, so cross-repository behavior (rating aggregation, FK
// style checks) works the same as in SQL.
type fakeStore struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*entity.User
	categories  map[uuid.UUID]*entity.Category
	genres      map[uuid.UUID]*entity.Genre
	titles      map[uuid.UUID]*entity.Title
	titleGenres map[uuid.UUID][]uuid.UUID
	reviews     map[uuid.UUID]*entity.Review
	comments    map[uuid.UUID]*entity.Comment
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       map[uuid.UUID]*entity.User{},
		categories:  map[uuid.UUID]*entity.Category{},
		genres:      map[uuid.UUID]*entity.Genre{},
		titles:      map[uuid.UUID]*entity.Title{},
		titleGenres: map[uuid.UUID][]uuid.UUID{},
		reviews:     map[uuid.UUID]*entity.Review{},
		comments:    map[uuid.UUID]*entity.Comment{},
	}
}

func newFakeRepository(store *fakeStore) *repository.Repository {
	return &repository.Repository{
		User:     &fakeUserRepo{store: store},
		Category: &fakeCategoryRepo{store: store},
		Genre:    &fakeGenreRepo{store: store},
		Title:    &fakeTitleRepo{store: store},
		Review:   &fakeReviewRepo{store: store},
		Comment:  &fakeCommentRepo{store: store},
	}
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ---------- users ----------

type fakeUserRepo struct {
	store *fakeStore
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, u := range f.store.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}

	copied := *user
	f.store.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	user, ok := f.store.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, user := range f.store.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, user := range f.store.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.User, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var users []*entity.User
	for _, user := range f.store.users {
		if search != "" && !strings.Contains(strings.ToLower(user.Username), strings.ToLower(search)) {
			continue
		}
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return paginate(users, limit, offset), nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context, search string) (int64, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var count int64
	for _, user := range f.store.users {
		if search != "" && !strings.Contains(strings.ToLower(user.Username), strings.ToLower(search)) {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if _, ok := f.store.users[user.ID]; !ok {
		return errNotFound("user")
	}
	for id, u := range f.store.users {
		if id == user.ID {
			continue
		}
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}

	copied := *user
	f.store.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if _, ok := f.store.users[id]; !ok {
		return errNotFound("user")
	}
	delete(f.store.users, id)
	return nil
}

// ---------- categories ----------

type fakeCategoryRepo struct {
	store *fakeStore
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, c := range f.store.categories {
		if c.Slug == category.Slug {
			return repository.ErrDuplicate
		}
	}
	copied := *category
	f.store.categories[category.ID] = &copied
	return nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	category, ok := f.store.categories[id]
	if !ok {
		return nil, nil
	}
	copied := *category
	return &copied, nil
}

func (f *fakeCategoryRepo) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, category := range f.store.categories {
		if category.Slug == slug {
			copied := *category
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var categories []*entity.Category
	for _, category := range f.store.categories {
		if search != "" && !strings.Contains(strings.ToLower(category.Name), strings.ToLower(search)) {
			continue
		}
		copied := *category
		categories = append(categories, &copied)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return paginate(categories, limit, offset), nil
}

func (f *fakeCategoryRepo) CountAll(ctx context.Context, search string) (int64, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var count int64
	for _, category := range f.store.categories {
		if search != "" && !strings.Contains(strings.ToLower(category.Name), strings.ToLower(search)) {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeCategoryRepo) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for id, category := range f.store.categories {
		if category.Slug == slug {
			delete(f.store.categories, id)
			// SET NULL semantics on titles
			for _, title := range f.store.titles {
				if title.CategoryID != nil && *title.CategoryID == id {
					title.CategoryID = nil
				}
			}
			return true, nil
		}
	}
	return false, nil
}

// ---------- genres ----------

type fakeGenreRepo struct {
	store *fakeStore
}

func (f *fakeGenreRepo) Create(ctx context.Context, genre *entity.Genre) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, g := range f.store.genres {
		if g.Slug == genre.Slug {
			return repository.ErrDuplicate
		}
	}
	copied := *genre
	f.store.genres[genre.ID] = &copied
	return nil
}

func (f *fakeGenreRepo) FindBySlug(ctx context.Context, slug string) (*entity.Genre, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, genre := range f.store.genres {
		if genre.Slug == slug {
			copied := *genre
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeGenreRepo) FindByTitleID(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var genres []*entity.Genre
	for _, genreID := range f.store.titleGenres[titleID] {
		if genre, ok := f.store.genres[genreID]; ok {
			copied := *genre
			genres = append(genres, &copied)
		}
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
	return genres, nil
}

func (f *fakeGenreRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var genres []*entity.Genre
	for _, genre := range f.store.genres {
		if search != "" && !strings.Contains(strings.ToLower(genre.Name), strings.ToLower(search)) {
			continue
		}
		copied := *genre
		genres = append(genres, &copied)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
	return paginate(genres, limit, offset), nil
}

func (f *fakeGenreRepo) CountAll(ctx context.Context, search string) (int64, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var count int64
	for _, genre := range f.store.genres {
		if search != "" && !strings.Contains(strings.ToLower(genre.Name), strings.ToLower(search)) {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeGenreRepo) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for id, genre := range f.store.genres {
		if genre.Slug == slug {
			delete(f.store.genres, id)
			for titleID, genreIDs := range f.store.titleGenres {
				kept := genreIDs[:0]
				for _, gid := range genreIDs {
					if gid != id {
						kept = append(kept, gid)
					}
				}
				f.store.titleGenres[titleID] = kept
			}
			return true, nil
		}
	}
	return false, nil
}

// ---------- titles ----------

type fakeTitleRepo struct {
	store *fakeStore
}

// ratingLocked mirrors the SQL AVG aggregate; caller holds the lock.
func (f *fakeTitleRepo) ratingLocked(titleID uuid.UUID) *float64 {
	var sum, count float64
	for _, review := range f.store.reviews {
		if review.TitleID == titleID {
			sum += float64(review.Score)
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := sum / count
	return &avg
}

func (f *fakeTitleRepo) Create(ctx context.Context, title *entity.Title, genreIDs []uuid.UUID) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	copied := *title
	f.store.titles[title.ID] = &copied
	f.store.titleGenres[title.ID] = append([]uuid.UUID{}, genreIDs...)
	return nil
}

func (f *fakeTitleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	title, ok := f.store.titles[id]
	if !ok {
		return nil, nil
	}
	copied := *title
	copied.Rating = f.ratingLocked(id)
	return &copied, nil
}

func (f *fakeTitleRepo) matchLocked(title *entity.Title, filter repository.TitleFilter) bool {
	if filter.Name != "" && !strings.Contains(strings.ToLower(title.Name), strings.ToLower(filter.Name)) {
		return false
	}
	if filter.Year != nil && title.Year != *filter.Year {
		return false
	}
	if filter.CategorySlug != "" {
		if title.CategoryID == nil {
			return false
		}
		category, ok := f.store.categories[*title.CategoryID]
		if !ok || category.Slug != filter.CategorySlug {
			return false
		}
	}
	if filter.GenreSlug != "" {
		found := false
		for _, genreID := range f.store.titleGenres[title.ID] {
			if genre, ok := f.store.genres[genreID]; ok && genre.Slug == filter.GenreSlug {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *fakeTitleRepo) FindAll(ctx context.Context, filter repository.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var titles []*entity.Title
	for id, title := range f.store.titles {
		if !f.matchLocked(title, filter) {
			continue
		}
		copied := *title
		copied.Rating = f.ratingLocked(id)
		titles = append(titles, &copied)
	}
	sort.Slice(titles, func(i, j int) bool { return titles[i].Name < titles[j].Name })
	return paginate(titles, limit, offset), nil
}

func (f *fakeTitleRepo) CountAll(ctx context.Context, filter repository.TitleFilter) (int64, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var count int64
	for _, title := range f.store.titles {
		if f.matchLocked(title, filter) {
			count++
		}
	}
	return count, nil
}

func (f *fakeTitleRepo) Update(ctx context.Context, title *entity.Title, genreIDs []uuid.UUID, replaceGenres bool) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if _, ok := f.store.titles[title.ID]; !ok {
		return errNotFound("title")
	}
	copied := *title
	f.store.titles[title.ID] = &copied
	if replaceGenres {
		f.store.titleGenres[title.ID] = append([]uuid.UUID{}, genreIDs...)
	}
	return nil
}

func (f *fakeTitleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if _, ok := f.store.titles[id]; !ok {
		return errNotFound("title")
	}
	delete(f.store.titles, id)
	delete(f.store.titleGenres, id)
	for rid, review := range f.store.reviews {
		if review.TitleID == id {
			delete(f.store.reviews, rid)
		}
	}
	return nil
}

// ---------- reviews ----------

type fakeReviewRepo struct {
	store *fakeStore
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, r := range f.store.reviews {
		if r.AuthorID == review.AuthorID && r.TitleID == review.TitleID {
			return repository.ErrDuplicate
		}
	}
	copied := *review
	f.store.reviews[review.ID] = &copied
	return nil
}

func (f *fakeReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	review, ok := f.store.reviews[id]
	if !ok {
		return nil, nil
	}
	copied := *review
	return &copied, nil
}

func (f *fakeReviewRepo) FindByTitleID(ctx context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var reviews []*entity.Review
	for _, review := range f.store.reviews {
		if review.TitleID == titleID {
			copied := *review
			reviews = append(reviews, &copied)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return paginate(reviews, limit, offset), nil
}

func (f *fakeReviewRepo) CountByTitleID(ctx context.Context, titleID uuid.UUID) (int64, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var count int64
	for _, review := range f.store.reviews {
		if review.TitleID == titleID {
			count++
		}
	}
	return count, nil
}

func (f *fakeReviewRepo) FindByAuthorAndTitle(ctx context.Context, authorID, titleID uuid.UUID) (*entity.Review, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, review := range f.store.reviews {
		if review.AuthorID == authorID && review.TitleID == titleID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if _, ok := f.store.reviews[review.ID]; !ok {
		return errNotFound("review")
	}
	copied := *review
	f.store.reviews[review.ID] = &copied
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if _, ok := f.store.reviews[id]; !ok {
		return errNotFound("review")
	}
	delete(f.store.reviews, id)
	for cid, comment := range f.store.comments {
		if comment.ReviewID == id {
			delete(f.store.comments, cid)
		}
	}
	return nil
}

// ---------- comments ----------

type fakeCommentRepo struct {
	store *fakeStore
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	copied := *comment
	f.store.comments[comment.ID] = &copied
	return nil
}

func (f *fakeCommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	comment, ok := f.store.comments[id]
	if !ok {
		return nil, nil
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeCommentRepo) FindByReviewID(ctx context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var comments []*entity.Comment
	for _, comment := range f.store.comments {
		if comment.ReviewID == reviewID {
			copied := *comment
			comments = append(comments, &copied)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.After(comments[j].CreatedAt) })
	return paginate(comments, limit, offset), nil
}

func (f *fakeCommentRepo) CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var count int64
	for _, comment := range f.store.comments {
		if comment.ReviewID == reviewID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCommentRepo) Update(ctx context.Context, comment *entity.Comment) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if _, ok := f.store.comments[comment.ID]; !ok {
		return errNotFound("comment")
	}
	copied := *comment
	f.store.comments[comment.ID] = &copied
	return nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if _, ok := f.store.comments[id]; !ok {
		return errNotFound("comment")
	}
	delete(f.store.comments, id)
	return nil
}
