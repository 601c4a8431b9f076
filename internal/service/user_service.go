package service

import (
	"eco-actions/internal/model"
	"eco-actions/internal/repository"
)

// UserInput represents data required to create a user.
type UserInput struct {
	UserID   string
	Name     string
	City     string
	Grade    string
	Username string
}

// UserService wraps user-related business logic over the file store.
type UserService struct {
	store *repository.FileStore
}

func NewUserService(store *repository.FileStore) *UserService {
	return &UserService{store: store}
}

// Create persists a new user. All fields are required. Username uniqueness is
// advisory and checked by clients via CheckUsername beforehand, not here.
func (s *UserService) Create(input UserInput) (*model.User, error) {
	for field, value := range map[string]string{
		"user_id":  input.UserID,
		"name":     input.Name,
		"city":     input.City,
		"grade":    input.Grade,
		"username": input.Username,
	} {
		if value == "" {
			return nil, newValidationError(field, "обязательное поле")
		}
	}

	user := model.User{
		UserID:   input.UserID,
		Name:     input.Name,
		City:     input.City,
		Grade:    input.Grade,
		Username: input.Username,
	}

	err := s.store.UpdateUsers(func(users []model.User) ([]model.User, error) {
		return append(users, user), nil
	})
	if err != nil {
		return nil, &PersistenceError{Op: "users", Err: err}
	}
	return &user, nil
}

// Get finds a user by id with a linear scan over the collection.
func (s *UserService) Get(userID string) (*model.User, error) {
	for _, user := range s.store.LoadUsers() {
		if user.UserID == userID {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// CheckUsername reports whether username is still free. The comparison is
// case-exact.
func (s *UserService) CheckUsername(username string) bool {
	for _, user := range s.store.LoadUsers() {
		if user.Username == username {
			return false
		}
	}
	return true
}

// Statistics holds collection totals; per-user breakdowns are computed by the
// bot from the action list.
type Statistics struct {
	TotalUsers   int `json:"total_users"`
	TotalActions int `json:"total_actions"`
}

// Stats counts persisted users and actions.
func (s *UserService) Stats() Statistics {
	return Statistics{
		TotalUsers:   len(s.store.LoadUsers()),
		TotalActions: len(s.store.LoadActions()),
	}
}
