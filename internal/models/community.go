package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Community is a department-scoped group. An author owns at most one,
// enforced by the unique index on AuthorID.
type Community struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string          `json:"title" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Image       string          `json:"image"`
	Department  Department      `json:"department" gorm:"size:8;index"`
	AuthorID    uuid.UUID       `json:"author_id" gorm:"type:uuid;not null;uniqueIndex:idx_communities_author"`
	Author      User            `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Posts       []CommunityPost `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (c *Community) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CommunityPost struct {
	ID          uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	Content     string             `json:"content" gorm:"type:text;not null"`
	Image       string             `json:"image"`
	Department  Department         `json:"department" gorm:"size:8"`
	CommunityID uuid.UUID          `json:"community_id" gorm:"type:uuid;not null;index"`
	AuthorID    uuid.UUID          `json:"author_id" gorm:"type:uuid;not null;index"`
	Author      User               `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Comments    []CommunityComment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time          `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func (p *CommunityPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CommunityComment mirrors Comment under a community post. CommunityID is
// always the owning post's community.
type CommunityComment struct {
	ID              uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	Content         string             `json:"content" gorm:"type:text;not null"`
	AuthorID        uuid.UUID          `json:"author_id" gorm:"type:uuid;not null;index"`
	Author          User               `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CommunityID     uuid.UUID          `json:"community_id" gorm:"type:uuid;not null;index"`
	CommunityPostID uuid.UUID          `json:"community_post_id" gorm:"type:uuid;not null;index"`
	ParentID        *uuid.UUID         `json:"parent_id,omitempty" gorm:"type:uuid;index"`
	Replies         []CommunityComment `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func (c *CommunityComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CommunityView struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Image       string              `json:"image,omitempty"`
	Department  Department          `json:"department"`
	Author      UserCompact         `json:"author"`
	Posts       []CommunityPostView `json:"posts,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func NewCommunityView(c *Community) CommunityView {
	v := CommunityView{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Image:       c.Image,
		Department:  c.Department,
		Author:      c.Author.ToCompact(),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	for i := range c.Posts {
		v.Posts = append(v.Posts, NewCommunityPostView(&c.Posts[i]))
	}
	return v
}

type CommunityPostView struct {
	ID          uuid.UUID              `json:"id"`
	Content     string                 `json:"content"`
	Image       string                 `json:"image,omitempty"`
	Department  Department             `json:"department"`
	CommunityID uuid.UUID              `json:"community_id"`
	Author      UserCompact            `json:"author"`
	Comments    []CommunityCommentView `json:"comments"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

func NewCommunityPostView(p *CommunityPost) CommunityPostView {
	v := CommunityPostView{
		ID:          p.ID,
		Content:     p.Content,
		Image:       p.Image,
		Department:  p.Department,
		CommunityID: p.CommunityID,
		Author:      p.Author.ToCompact(),
		Comments:    make([]CommunityCommentView, 0, len(p.Comments)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for i := range p.Comments {
		v.Comments = append(v.Comments, NewCommunityCommentView(&p.Comments[i]))
	}
	return v
}

type CommunityCommentView struct {
	ID              uuid.UUID              `json:"id"`
	Content         string                 `json:"content"`
	CommunityPostID uuid.UUID              `json:"community_post_id"`
	ParentID        *uuid.UUID             `json:"parent_id,omitempty"`
	Author          UserCompact            `json:"author"`
	Replies         []CommunityCommentView `json:"replies,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

func NewCommunityCommentView(c *CommunityComment) CommunityCommentView {
	v := CommunityCommentView{
		ID:              c.ID,
		Content:         c.Content,
		CommunityPostID: c.CommunityPostID,
		ParentID:        c.ParentID,
		Author:          c.Author.ToCompact(),
		CreatedAt:       c.CreatedAt,
	}
	for i := range c.Replies {
		v.Replies = append(v.Replies, NewCommunityCommentView(&c.Replies[i]))
	}
	return v
}

type CreateCommunityRequest struct {
	Title       string `json:"title" form:"title" validate:"required,max=100"`
	Description string `json:"description" form:"description" validate:"required,max=1000"`
}

type UpdateCommunityRequest struct {
	Title       string `json:"title" form:"title" validate:"omitempty,max=100"`
	Description string `json:"description" form:"description" validate:"omitempty,max=1000"`
	RemoveImage bool   `json:"removeImage" form:"removeImage"`
}
