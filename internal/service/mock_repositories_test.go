package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/noteduco342/storyline-backend/internal/apperr"
	"github.com/noteduco342/storyline-backend/internal/models"
	"github.com/noteduco342/storyline-backend/internal/repository"
	pkgerrors "github.com/pkg/errors"
)

func notFound(what, id string) error {
	return pkgerrors.Wrapf(apperr.ErrNotFound, "%s %s", what, id)
}

// MockUserRepository is a map-backed repository.UserRepositoryInterface.
type MockUserRepository struct {
	users   map[string]*models.User
	follows *MockFollowRepository
	posts   *MockPostRepository
	deleted []string
	// updateErr fails UpdateProfile before anything is written.
	updateErr error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*models.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return pkgerrors.Wrap(apperr.ErrConflict, "username taken")
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, notFound("user", id)
}

func (m *MockUserRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *models.User, renamed bool) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	cp := *user
	m.users[user.ID] = &cp
	if renamed && m.posts != nil {
		for _, p := range m.posts.posts {
			if p.AuthorID == user.ID {
				p.AuthorName = user.Username
			}
		}
	}
	return nil
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id string, role models.Role) error {
	u, ok := m.users[id]
	if !ok {
		return notFound("user", id)
	}
	u.Role = role
	return nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockUserRepository) ListAuthors(ctx context.Context) ([]models.AuthorEntry, error) {
	var out []models.AuthorEntry
	for _, u := range m.users {
		if !u.Role.CanPublish() {
			continue
		}
		entry := models.AuthorEntry{ID: u.ID, Username: u.Username, Role: u.Role}
		if m.follows != nil {
			entry.FollowerCount, _ = m.follows.CountFollowers(ctx, u.ID)
		}
		if m.posts != nil {
			entry.StoryCount, _ = m.posts.CountPublishedByAuthor(ctx, u.ID)
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FollowerCount != out[j].FollowerCount {
			return out[i].FollowerCount > out[j].FollowerCount
		}
		return out[i].Username < out[j].Username
	})
	return out, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return notFound("user", id)
	}
	delete(m.users, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// MockPostRepository is a map-backed repository.PostRepositoryInterface.
type MockPostRepository struct {
	posts   map[string]*models.Post
	follows *MockFollowRepository
	deleted []string
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{posts: make(map[string]*models.Post)}
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *MockPostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	if p, ok := m.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, notFound("post", id)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.posts[id]; !ok {
		return notFound("post", id)
	}
	delete(m.posts, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *MockPostRepository) filter(keep func(*models.Post) bool) []models.Post {
	var out []models.Post
	for _, p := range m.posts {
		if keep(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func limitPosts(posts []models.Post, limit int) []models.Post {
	if limit > 0 && len(posts) > limit {
		return posts[:limit]
	}
	return posts
}

func (m *MockPostRepository) ListPublished(ctx context.Context, limit int) ([]models.Post, error) {
	return limitPosts(m.filter(func(p *models.Post) bool { return p.Published }), limit), nil
}

func (m *MockPostRepository) ListByAuthor(ctx context.Context, authorID string, includeDrafts bool) ([]models.Post, error) {
	return m.filter(func(p *models.Post) bool {
		return p.AuthorID == authorID && (includeDrafts || p.Published)
	}), nil
}

func (m *MockPostRepository) CountPublishedByAuthor(ctx context.Context, authorID string) (int64, error) {
	posts, _ := m.ListByAuthor(ctx, authorID, false)
	return int64(len(posts)), nil
}

func (m *MockPostRepository) Search(ctx context.Context, q repository.PostQuery) ([]models.Post, error) {
	posts := m.filter(func(p *models.Post) bool {
		if !p.Published {
			return false
		}
		if q.Category != "" && p.Category != q.Category {
			return false
		}
		if q.Text == "" {
			return true
		}
		for _, field := range []string{p.Title, p.Content, p.AuthorName} {
			if strings.Contains(strings.ToLower(field), q.Text) {
				return true
			}
		}
		return false
	})
	return limitPosts(posts, q.Limit), nil
}

func (m *MockPostRepository) Categories(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range m.posts {
		if p.Published && p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *MockPostRepository) ListFeed(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	posts := m.filter(func(p *models.Post) bool {
		if !p.Published || m.follows == nil {
			return false
		}
		ok, _ := m.follows.Exists(ctx, userID, p.AuthorID)
		return ok
	})
	return limitPosts(posts, limit), nil
}

type edge struct {
	a, b string
}

// MockFollowRepository is a map-backed repository.FollowRepositoryInterface.
type MockFollowRepository struct {
	mu    sync.Mutex
	edges map[edge]time.Time
	err   error
}

func NewMockFollowRepository() *MockFollowRepository {
	return &MockFollowRepository{edges: make(map[edge]time.Time)}
}

func (m *MockFollowRepository) Toggle(ctx context.Context, followerID, followingID string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := edge{followerID, followingID}
	if _, ok := m.edges[key]; ok {
		delete(m.edges, key)
		return false, nil
	}
	m.edges[key] = at
	return true, nil
}

func (m *MockFollowRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.edges[edge{followerID, followingID}]
	return ok, nil
}

func (m *MockFollowRepository) list(match func(edge) (string, bool)) []models.FollowEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.FollowEntry
	for e, at := range m.edges {
		if id, ok := match(e); ok {
			out = append(out, models.FollowEntry{ID: id, FollowedAt: at})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FollowedAt.After(out[j].FollowedAt) })
	return out
}

func (m *MockFollowRepository) ListFollowing(ctx context.Context, userID string) ([]models.FollowEntry, error) {
	return m.list(func(e edge) (string, bool) { return e.b, e.a == userID }), nil
}

func (m *MockFollowRepository) ListFollowers(ctx context.Context, userID string) ([]models.FollowEntry, error) {
	return m.list(func(e edge) (string, bool) { return e.a, e.b == userID }), nil
}

func (m *MockFollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	rows, _ := m.ListFollowers(ctx, userID)
	return int64(len(rows)), m.err
}

func (m *MockFollowRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	rows, _ := m.ListFollowing(ctx, userID)
	return int64(len(rows)), m.err
}

// MockLikeRepository is a map-backed repository.LikeRepositoryInterface.
type MockLikeRepository struct {
	mu    sync.Mutex
	likes map[edge]time.Time
	posts *MockPostRepository
	err   error
}

func NewMockLikeRepository(posts *MockPostRepository) *MockLikeRepository {
	return &MockLikeRepository{likes: make(map[edge]time.Time), posts: posts}
}

func (m *MockLikeRepository) Toggle(ctx context.Context, postID, userID string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := edge{postID, userID}
	if _, ok := m.likes[key]; ok {
		delete(m.likes, key)
		return false, nil
	}
	m.likes[key] = at
	return true, nil
}

func (m *MockLikeRepository) Exists(ctx context.Context, postID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.likes[edge{postID, userID}]
	return ok, nil
}

func (m *MockLikeRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for key := range m.likes {
		if key.a == postID {
			n++
		}
	}
	return n, nil
}

func (m *MockLikeRepository) CountReceivedByAuthor(ctx context.Context, authorID string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for key := range m.likes {
		if p, ok := m.posts.posts[key.a]; ok && p.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

// MockBookmarkRepository is a map-backed repository.BookmarkRepositoryInterface.
type MockBookmarkRepository struct {
	marks map[edge]time.Time
	posts *MockPostRepository
}

func NewMockBookmarkRepository(posts *MockPostRepository) *MockBookmarkRepository {
	return &MockBookmarkRepository{marks: make(map[edge]time.Time), posts: posts}
}

func (m *MockBookmarkRepository) Toggle(ctx context.Context, userID, postID string, at time.Time) (bool, error) {
	key := edge{userID, postID}
	if _, ok := m.marks[key]; ok {
		delete(m.marks, key)
		return false, nil
	}
	m.marks[key] = at
	return true, nil
}

func (m *MockBookmarkRepository) Exists(ctx context.Context, userID, postID string) (bool, error) {
	_, ok := m.marks[edge{userID, postID}]
	return ok, nil
}

func (m *MockBookmarkRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	var n int64
	for key := range m.marks {
		if key.b == postID {
			n++
		}
	}
	return n, nil
}

func (m *MockBookmarkRepository) ListByUser(ctx context.Context, userID string) ([]models.BookmarkEntry, error) {
	var out []models.BookmarkEntry
	for key, at := range m.marks {
		if key.a != userID {
			continue
		}
		if p, ok := m.posts.posts[key.b]; ok && p.Published {
			out = append(out, models.BookmarkEntry{Post: *p, BookmarkedAt: at})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookmarkedAt.After(out[j].BookmarkedAt) })
	return out, nil
}

// MockHistoryRepository is a map-backed repository.HistoryRepositoryInterface.
type MockHistoryRepository struct {
	visits map[edge]time.Time
	posts  *MockPostRepository
}

func NewMockHistoryRepository(posts *MockPostRepository) *MockHistoryRepository {
	return &MockHistoryRepository{visits: make(map[edge]time.Time), posts: posts}
}

func (m *MockHistoryRepository) Record(ctx context.Context, userID, postID string, at time.Time) error {
	m.visits[edge{userID, postID}] = at
	return nil
}

func (m *MockHistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	var out []models.HistoryEntry
	for key, at := range m.visits {
		if key.a != userID {
			continue
		}
		if p, ok := m.posts.posts[key.b]; ok && p.Published {
			out = append(out, models.HistoryEntry{Post: *p, ReadAt: at})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReadAt.After(out[j].ReadAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockHistoryRepository) Clear(ctx context.Context, userID string) (int64, error) {
	var n int64
	for key := range m.visits {
		if key.a == userID {
			delete(m.visits, key)
			n++
		}
	}
	return n, nil
}

// MockCommentRepository is a slice-backed repository.CommentRepositoryInterface.
type MockCommentRepository struct {
	comments []models.Comment
	users    *MockUserRepository
}

func NewMockCommentRepository(users *MockUserRepository) *MockCommentRepository {
	return &MockCommentRepository{users: users}
}

func (m *MockCommentRepository) entry(c models.Comment) models.CommentEntry {
	e := models.CommentEntry{Comment: c}
	if u, ok := m.users.users[c.UserID]; ok {
		e.Username = u.Username
		e.Avatar = u.Avatar
	}
	return e
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) (*models.CommentEntry, error) {
	m.comments = append(m.comments, *comment)
	e := m.entry(*comment)
	return &e, nil
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID string) ([]models.CommentEntry, error) {
	var out []models.CommentEntry
	for i := len(m.comments) - 1; i >= 0; i-- {
		if m.comments[i].PostID == postID {
			out = append(out, m.entry(m.comments[i]))
		}
	}
	return out, nil
}
