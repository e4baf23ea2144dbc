package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/andrescamacho/mediator-go/internal/domain/user"
)

// GormUserRepository implements user.Repository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts u and assigns the generated ID
func (r *GormUserRepository) Create(ctx context.Context, u *user.User) error {
	model := userToModel(u)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.ID = model.ID
	return nil
}

// FindByID retrieves a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id int) (*user.User, error) {
	var model UserModel
	result := dbFrom(ctx, r.db).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &user.NotFoundError{Key: "id=" + strconv.Itoa(id)}
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}
	return modelToUser(&model), nil
}

// FindByEmail retrieves a user by normalised email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	email = user.NormalizeEmail(email)

	var model UserModel
	result := dbFrom(ctx, r.db).Where("email = ?", email).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &user.NotFoundError{Key: "email=" + email}
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}
	return modelToUser(&model), nil
}

// List retrieves all users ordered by ID
func (r *GormUserRepository) List(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	if err := dbFrom(ctx, r.db).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*user.User, 0, len(models))
	for i := range models {
		users = append(users, modelToUser(&models[i]))
	}
	return users, nil
}

func modelToUser(model *UserModel) *user.User {
	u := &user.User{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt.UTC(),
	}
	if model.Email != nil {
		u.Email = *model.Email
	}
	return u
}

func userToModel(u *user.User) *UserModel {
	model := &UserModel{
		ID:        u.ID,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
	if u.Email != "" {
		email := u.Email
		model.Email = &email
	}
	return model
}

var _ user.Repository = (*GormUserRepository)(nil)
