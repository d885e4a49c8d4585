package domain

// Relationship Model: FollowerID follows FollowedID
type Relationship struct {
	ID         uint `gorm:"primaryKey"`                                        // Primary key
	FollowerID uint `gorm:"not null;uniqueIndex:idx_relationships_pair;index"` // Following user
	FollowedID uint `gorm:"not null;uniqueIndex:idx_relationships_pair;index"` // Followed user
}
