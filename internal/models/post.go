package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a feed post. Department is copied from the author at creation time.
type Post struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Content    string     `json:"content" gorm:"type:text;not null"`
	Image      string     `json:"image"`
	Department Department `json:"department" gorm:"size:8;index"`
	AuthorID   uuid.UUID  `json:"author_id" gorm:"type:uuid;not null;index"`
	Author     User       `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Likes      []Like     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Comments   []Comment  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PostView is a post joined with its author, likes and comment thread
type PostView struct {
	ID            uuid.UUID     `json:"id"`
	Content       string        `json:"content"`
	Image         string        `json:"image,omitempty"`
	Department    Department    `json:"department"`
	Author        UserCompact   `json:"author"`
	LikedBy       []uuid.UUID   `json:"liked_by"`
	Comments      []CommentView `json:"comments"`
	LikesCount    int64         `json:"likes_count"`
	CommentsCount int64         `json:"comments_count"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// NewPostView projects a post loaded with Author, Likes and top-level
// Comments (with replies). commentsCount counts replies too.
func NewPostView(p *Post, commentsCount int64) PostView {
	likedBy := make([]uuid.UUID, len(p.Likes))
	for i, l := range p.Likes {
		likedBy[i] = l.UserID
	}
	comments := make([]CommentView, len(p.Comments))
	for i := range p.Comments {
		comments[i] = NewCommentView(&p.Comments[i])
	}
	return PostView{
		ID:            p.ID,
		Content:       p.Content,
		Image:         p.Image,
		Department:    p.Department,
		Author:        p.Author.ToCompact(),
		LikedBy:       likedBy,
		Comments:      comments,
		LikesCount:    int64(len(p.Likes)),
		CommentsCount: commentsCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// PostSummary is the post excerpt attached to notifications
type PostSummary struct {
	ID      uuid.UUID `json:"id"`
	Content string    `json:"content"`
	Image   string    `json:"image,omitempty"`
}

// CreatePostRequest carries the text fields of a multipart post upload
type CreatePostRequest struct {
	Content string `json:"content" form:"content" validate:"max=2000"`
}

type UpdatePostRequest struct {
	Content     string `json:"content" form:"content" validate:"max=2000"`
	RemoveImage bool   `json:"removeImage" form:"removeImage"`
}
