package models

import "time"

// FollowEntry is a row of a following/followers listing. StoryCount is only
// populated for following listings.
type FollowEntry struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Avatar     string    `json:"avatar"`
	Bio        string    `json:"bio"`
	Role       Role      `json:"role"`
	FollowedAt time.Time `json:"followed_at"`
	StoryCount *int64    `json:"story_count,omitempty"`
}

type BookmarkEntry struct {
	Post
	BookmarkedAt time.Time `json:"bookmarked_at"`
}

type HistoryEntry struct {
	Post
	ReadAt time.Time `json:"read_at"`
}

type AuthorEntry struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Avatar        string `json:"avatar"`
	Bio           string `json:"bio"`
	Role          Role   `json:"role"`
	StoryCount    int64  `json:"story_count"`
	FollowerCount int64  `json:"follower_count"`
}

type UserStats struct {
	Followers  int64 `json:"followers"`
	Following  int64 `json:"following"`
	Posts      int64 `json:"posts"`
	TotalLikes int64 `json:"totalLikes"`
}
