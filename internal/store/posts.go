package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"microposts/internal/domain"

	"gorm.io/gorm"
)

type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// ListFeedWithAuthors returns every post, newest first. The left join keeps
// posts whose author row is gone; their author fields are nil.
func (s *PostStore) ListFeedWithAuthors(ctx context.Context) ([]domain.FeedItem, error) {
	var items []domain.FeedItem
	err := s.db.WithContext(ctx).
		Table("microposts").
		Select("microposts.id, microposts.user_id, microposts.content, microposts.created_at, users.id AS author_id, users.name AS author_name").
		Joins("LEFT JOIN users ON users.id = microposts.user_id").
		Order("microposts.created_at DESC").
		Order("microposts.id DESC").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	return items, nil
}

// ListByUser returns one author's posts, newest first.
func (s *PostStore) ListByUser(ctx context.Context, userID uint) ([]domain.UserPost, error) {
	var posts []domain.UserPost
	err := s.db.WithContext(ctx).
		Table("microposts").
		Select("microposts.id, microposts.user_id, microposts.content, microposts.created_at, users.name").
		Joins("JOIN users ON users.id = microposts.user_id").
		Where("microposts.user_id = ?", userID).
		Order("microposts.created_at DESC").
		Order("microposts.id DESC").
		Scan(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts by user: %w", err)
	}
	return posts, nil
}

// Create inserts a post. createdAt comes from the caller's clock, not the database.
func (s *PostStore) Create(ctx context.Context, userID uint, content string, createdAt time.Time) (*domain.MicroPost, error) {
	p := domain.MicroPost{UserID: userID, Content: content, CreatedAt: createdAt}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &p, nil
}

func (s *PostStore) FindByID(ctx context.Context, id uint) (*domain.MicroPost, error) {
	var p domain.MicroPost
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &p, nil
}

// DeleteByID deletes unconditionally; ownership is checked by the caller.
func (s *PostStore) DeleteByID(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&domain.MicroPost{}, id).Error; err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *PostStore) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.MicroPost{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}
