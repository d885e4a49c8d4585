package store

import (
	"context"
	"errors"
	"fmt"

	"microposts/internal/domain"

	"gorm.io/gorm"
)

type RelationshipStore struct {
	db *gorm.DB
}

func NewRelationshipStore(db *gorm.DB) *RelationshipStore {
	return &RelationshipStore{db: db}
}

func (s *RelationshipStore) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.Relationship{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("relationship exists: %w", err)
	}
	return n > 0, nil
}

// Create inserts the edge. A concurrent duplicate loses on the unique index
// and reports ErrAlreadyFollowing.
func (s *RelationshipStore) Create(ctx context.Context, followerID, followedID uint) error {
	r := domain.Relationship{FollowerID: followerID, FollowedID: followedID}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFollowing
		}
		return fmt.Errorf("create relationship: %w", err)
	}
	return nil
}

// Delete removes the edge; deleting a missing edge is not an error.
func (s *RelationshipStore) Delete(ctx context.Context, followerID, followedID uint) error {
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&domain.Relationship{}).Error
	if err != nil {
		return fmt.Errorf("delete relationship: %w", err)
	}
	return nil
}

// DeleteForUser removes every edge where userID is follower or followed.
func (s *RelationshipStore) DeleteForUser(ctx context.Context, userID uint) error {
	return deleteRelationshipsFor(s.db.WithContext(ctx), userID)
}

func deleteRelationshipsFor(db *gorm.DB, userID uint) error {
	err := db.Where("follower_id = ?", userID).Or("followed_id = ?", userID).Delete(&domain.Relationship{}).Error
	if err != nil {
		return fmt.Errorf("delete relationships for user: %w", err)
	}
	return nil
}

func (s *RelationshipStore) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.count(ctx, "follower_id = ?", userID)
}

func (s *RelationshipStore) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.count(ctx, "followed_id = ?", userID)
}

func (s *RelationshipStore) count(ctx context.Context, where string, userID uint) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.Relationship{}).Where(where, userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count relationships: %w", err)
	}
	return n, nil
}

// ListFollowing returns the users that userID follows.
func (s *RelationshipStore) ListFollowing(ctx context.Context, userID uint) ([]domain.UserSummary, error) {
	return s.list(ctx, "users.id = relationships.followed_id", "relationships.follower_id = ?", userID)
}

// ListFollowers returns the users that follow userID.
func (s *RelationshipStore) ListFollowers(ctx context.Context, userID uint) ([]domain.UserSummary, error) {
	return s.list(ctx, "users.id = relationships.follower_id", "relationships.followed_id = ?", userID)
}

func (s *RelationshipStore) list(ctx context.Context, on, where string, userID uint) ([]domain.UserSummary, error) {
	var users []domain.UserSummary
	err := s.db.WithContext(ctx).
		Table("relationships").
		Select("users.id, users.name").
		Joins("JOIN users ON "+on).
		Where(where, userID).
		Order("users.id").
		Scan(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	return users, nil
}
