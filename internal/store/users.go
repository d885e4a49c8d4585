package store

import (
	"context"
	"errors"
	"fmt"

	"microposts/internal/domain"

	"gorm.io/gorm"
)

// UserFields are the columns rewritten wholesale by a profile edit.
type UserFields struct {
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
}

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByNameOrEmail returns every user whose name or email matches. An empty
// slice means neither is taken.
func (s *UserStore) FindByNameOrEmail(ctx context.Context, name, email string) ([]domain.User, error) {
	var users []domain.User
	err := s.db.WithContext(ctx).Where("name = ?", name).Or("email = ?", email).Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("find user by name or email: %w", err)
	}
	return users, nil
}

func (s *UserStore) Create(ctx context.Context, name, email, passwordHash string, isAdmin bool) (*domain.User, error) {
	u := domain.User{Name: name, Email: email, Password: passwordHash, IsAdmin: isAdmin}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, translate(err, "create user")
	}
	return &u, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err, "find user by email")
	}
	return &u, nil
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, "find user by id")
	}
	return &u, nil
}

// UpdateByID overwrites every editable column. There is no partial update
// and no optimistic concurrency: the last writer wins.
func (s *UserStore) UpdateByID(ctx context.Context, id uint, f UserFields) error {
	res := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(map[string]any{
		"name":     f.Name,
		"email":    f.Email,
		"password": f.PasswordHash,
		"is_admin": f.IsAdmin,
	})
	if res.Error != nil {
		return translate(res.Error, "update user")
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteByID removes only the user row; see DeleteWithRelations for the cascade.
func (s *UserStore) DeleteByID(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&domain.User{}, id).Error; err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// DeleteWithRelations removes the user, every relationship naming it on
// either side, and its posts, in one transaction.
func (s *UserStore) DeleteWithRelations(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.User{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		if err := deleteRelationshipsFor(tx, id); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&domain.MicroPost{}).Error; err != nil {
			return fmt.Errorf("delete user posts: %w", err)
		}
		return nil
	})
}

// ListAll is a full scan for the user directory.
func (s *UserStore) ListAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func translate(err error, op string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrUserNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateUser
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
