package repository

import (
	"fmt"

	"talent-track/core/models"
)

// UserRepository handles persistence for application accounts
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// List returns every user
func (r *UserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.store.Read(UsersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Save rewrites the whole user collection
func (r *UserRepository) Save(users []models.User) error {
	return r.store.Write(UsersFile, users)
}

// GetByUsername retrieves a user account
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	users, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user %s not found", username)
}
