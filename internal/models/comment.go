package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on a post. Replies point at their parent
// through ParentID and are only one level deep.
type Comment struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	AuthorID  uuid.UUID  `json:"author_id" gorm:"type:uuid;not null;index"`
	Author    User       `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	PostID    uuid.UUID  `json:"post_id" gorm:"type:uuid;not null;index"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty" gorm:"type:uuid;index"`
	Replies   []Comment  `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CommentView struct {
	ID        uuid.UUID     `json:"id"`
	Content   string        `json:"content"`
	PostID    uuid.UUID     `json:"post_id"`
	ParentID  *uuid.UUID    `json:"parent_id,omitempty"`
	Author    UserCompact   `json:"author"`
	Replies   []CommentView `json:"replies,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func NewCommentView(c *Comment) CommentView {
	v := CommentView{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		ParentID:  c.ParentID,
		Author:    c.Author.ToCompact(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	for i := range c.Replies {
		v.Replies = append(v.Replies, NewCommentView(&c.Replies[i]))
	}
	return v
}

// CommentSummary is the comment excerpt attached to notifications
type CommentSummary struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	AuthorID  uuid.UUID `json:"author_id"`
	PostID    uuid.UUID `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=500"`
	ParentID string `json:"parentId,omitempty" validate:"omitempty,uuid"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
