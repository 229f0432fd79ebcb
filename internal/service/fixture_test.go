package service

import (
	"time"

	"github.com/noteduco342/storyline-backend/internal/models"
)

var testBase = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	users     *MockUserRepository
	posts     *MockPostRepository
	follows   *MockFollowRepository
	likes     *MockLikeRepository
	bookmarks *MockBookmarkRepository
	history   *MockHistoryRepository
	comments  *MockCommentRepository
	clock     time.Time
}

func newFixture() *fixture {
	f := &fixture{
		users:   NewMockUserRepository(),
		posts:   NewMockPostRepository(),
		follows: NewMockFollowRepository(),
		clock:   testBase,
	}
	f.users.follows = f.follows
	f.users.posts = f.posts
	f.posts.follows = f.follows
	f.likes = NewMockLikeRepository(f.posts)
	f.bookmarks = NewMockBookmarkRepository(f.posts)
	f.history = NewMockHistoryRepository(f.posts)
	f.comments = NewMockCommentRepository(f.users)
	return f
}

// tick advances the fixture clock by a minute and returns the new time.
func (f *fixture) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fixture) user(id, username string, role models.Role) Actor {
	f.users.users[id] = &models.User{ID: id, Username: username, Role: role, CreatedAt: testBase}
	return Actor{ID: id, Role: role}
}

func (f *fixture) post(id, authorID, category string, published bool, offset time.Duration) *models.Post {
	p := &models.Post{
		ID:        id,
		AuthorID:  authorID,
		Title:     "Title " + id,
		Content:   "content of " + id,
		Category:  category,
		Published: published,
		CreatedAt: testBase.Add(offset),
		UpdatedAt: testBase.Add(offset),
	}
	if u, ok := f.users.users[authorID]; ok {
		p.AuthorName = u.Username
	}
	f.posts.posts[id] = p
	return p
}
