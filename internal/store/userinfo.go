package store

import (
	"context"

	"microposts/internal/domain"
)

// UserInfo reads the sidebar aggregate for userID. It issues four separate
// queries on every call and is never cached.
func (q *Queries) UserInfo(ctx context.Context, userID uint) (*domain.UserInfo, error) {
	u, err := q.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts, err := q.Posts.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := q.Relationships.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	followers, err := q.Relationships.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.UserInfo{
		Name:           u.Name,
		PostCount:      posts,
		FollowingCount: following,
		FollowerCount:  followers,
	}, nil
}
