package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`                  // Primary key
	Name     string `gorm:"uniqueIndex;not null" json:"name"`      // Unique display name
	Email    string `gorm:"uniqueIndex;not null" json:"email"`     // Unique email, used to sign in
	Password string `gorm:"not null" json:"-"`                     // Bcrypt hash, never plaintext
	IsAdmin  bool   `gorm:"not null;default:false" json:"isAdmin"` // Admin flag
}

// UserSummary is the identity shown in follow lists
type UserSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// UserInfo is the sidebar aggregate rendered on most pages
type UserInfo struct {
	Name           string `json:"name"`           // User name
	PostCount      int64  `json:"postCount"`      // Number of posts authored
	FollowingCount int64  `json:"followingCount"` // Number of users followed
	FollowerCount  int64  `json:"followerCount"`  // Number of followers
}
