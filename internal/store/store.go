// Package store is the query layer: parameterized reads and writes against
// the users, microposts and relationships tables.
package store

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateUser    = errors.New("user name or email already exists")
	ErrPostNotFound     = errors.New("post not found")
	ErrAlreadyFollowing = errors.New("already following")
)

// Queries groups the per-resource stores over one database handle.
type Queries struct {
	Users         *UserStore
	Posts         *PostStore
	Relationships *RelationshipStore
}

func New(db *gorm.DB) *Queries {
	return &Queries{
		Users:         NewUserStore(db),
		Posts:         NewPostStore(db),
		Relationships: NewRelationshipStore(db),
	}
}
