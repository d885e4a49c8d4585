package domain

import "time"

// MicroPost Model
type MicroPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`              // Primary key
	UserID    uint      `gorm:"index;not null" json:"userId"`      // Owning user
	Content   string    `gorm:"type:text;not null" json:"content"` // Post body
	CreatedAt time.Time `gorm:"index;not null" json:"createdAt"`   // Assigned by the server at insert time
}

// TableName keeps the table name of the original schema
func (MicroPost) TableName() string { return "microposts" }

// FeedItem is a post joined with its author. AuthorID and AuthorName are nil
// when the author row no longer exists.
type FeedItem struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"userId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	AuthorID   *uint     `json:"authorId"`
	AuthorName *string   `json:"authorName"`
}

// UserPost is a post listed on its author's profile
type UserPost struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name"`
}
