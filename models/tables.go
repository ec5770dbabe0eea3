package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Twitter   string    `json:"twitter"`
	Avatar    string    `json:"avatar"` // image-service reference, empty when unset
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Credential keeps the password hash out of the users table so a User can
// be handed to templates and JSON without carrying it along.
type Credential struct {
	ID     string `gorm:"primaryKey" json:"id"`
	Hash   string `gorm:"not null" json:"-"`
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`
}

func (c *Credential) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Post struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Slug       string    `gorm:"uniqueIndex;not null" json:"slug"`
	Preface    string    `gorm:"type:text;not null" json:"preface"`
	Body       string    `gorm:"type:text" json:"body"`
	CoverImage string    `json:"cover_image"` // image-service reference, empty when none
	IsPublish  bool      `gorm:"default:false;index" json:"is_publish"`
	UserID     string    `gorm:"not null;index" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
