package models

import "time"

type Post struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	AuthorID   string    `gorm:"size:64;not null;index" json:"author_id"`
	AuthorName string    `gorm:"size:64" json:"author_name"`
	Title      string    `gorm:"not null" json:"title"`
	Excerpt    string    `gorm:"type:text" json:"excerpt"`
	Content    string    `gorm:"type:text" json:"content"`
	Category   string    `gorm:"size:64;index" json:"category"`
	CoverImage string    `json:"cover_image"`
	ReadTime   string    `gorm:"size:32" json:"read_time"`
	Published  bool      `gorm:"not null;index" json:"published"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// VisibleTo reports whether a viewer may read the post. Drafts are only
// visible to their author and to admins.
func (p *Post) VisibleTo(viewerID string, viewerRole Role) bool {
	if p.Published {
		return true
	}
	return viewerRole == RoleAdmin || (viewerID != "" && viewerID == p.AuthorID)
}
