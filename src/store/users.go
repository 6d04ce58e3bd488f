package store

import (
	"context"
	"fmt"
	"triphub/src/models"
	"triphub/src/types"

	"gorm.io/gorm/clause"
)

// UpsertUser inserts the user or refreshes name and image of an existing
// row. The role of an existing user is never touched here.
func (s *Store) UpsertUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "image", "updated_at"}),
	}).Create(user).Error
	return translate(err, "saving user")
}

// EnsureUser creates a bare user row for email unless one exists.
func (s *Store) EnsureUser(ctx context.Context, email string) error {
	user := models.User{Email: email, Role: types.ROLE_USER}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error
	return translate(err, "ensuring user")
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "finding user")
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, translate(err, "listing users")
	}
	return users, nil
}

// RoleOf resolves the stored role of email. Unknown emails resolve to the
// plain user role.
func (s *Store) RoleOf(ctx context.Context, email string) (types.Role, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("role").Where("email = ?", email).Limit(1).Find(&user).Error
	if err != nil {
		return "", translate(err, "resolving role")
	}
	if user.Role == "" {
		return types.ROLE_USER, nil
	}
	return user.Role, nil
}

func (s *Store) SetUserRole(ctx context.Context, email string, role types.Role) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Update("role", role)
	if res.Error != nil {
		return 0, translate(res.Error, fmt.Sprintf("setting role of %s", email))
	}
	return res.RowsAffected, nil
}
