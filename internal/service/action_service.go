package service

import (
	"errors"
	"strconv"

	"eco-actions/internal/model"
	"eco-actions/internal/repository"
)

var errAlreadyRegistered = errors.New("already registered")

// ActionInput represents data required to create an action.
type ActionInput struct {
	Title       string
	Date        string
	Location    string
	Description string
	ProposerID  string
}

// RegisterResult distinguishes a fresh registration from a repeated one.
type RegisterResult int

const (
	Registered RegisterResult = iota
	AlreadyRegistered
)

// ActionService wraps action-related business logic over the file store.
type ActionService struct {
	store *repository.FileStore
}

func NewActionService(store *repository.FileStore) *ActionService {
	return &ActionService{store: store}
}

// List returns every persisted action.
func (s *ActionService) List() []model.Action {
	return s.store.LoadActions()
}

// Create validates the date, assigns the next id and persists the action
// with an empty ratings list.
func (s *ActionService) Create(input ActionInput) (*model.Action, error) {
	if _, err := model.ParseDate(input.Date); err != nil {
		return nil, newValidationError("date", "ожидается формат YYYY-MM-DD")
	}

	action := model.Action{
		Title:       input.Title,
		Date:        input.Date,
		Location:    input.Location,
		Description: input.Description,
		ProposerID:  input.ProposerID,
		Ratings:     []model.Rating{},
	}

	err := s.store.UpdateActions(func(actions []model.Action) ([]model.Action, error) {
		action.ID = strconv.Itoa(nextActionID(actions))
		return append(actions, action), nil
	})
	if err != nil {
		return nil, &PersistenceError{Op: "actions", Err: err}
	}
	return &action, nil
}

// Register adds userID to the action's participants. Registering twice is a
// no-op that reports AlreadyRegistered.
func (s *ActionService) Register(actionID, userID string) (RegisterResult, error) {
	if userID == "" {
		return 0, newValidationError("user_id", "не указан user_id")
	}

	err := s.store.UpdateActions(func(actions []model.Action) ([]model.Action, error) {
		for i := range actions {
			if actions[i].ID != actionID {
				continue
			}
			if actions[i].HasParticipant(userID) {
				// Skip the save entirely so the repeat stays a no-op.
				return nil, errAlreadyRegistered
			}
			actions[i].Participants = append(actions[i].Participants, userID)
			return actions, nil
		}
		return nil, ErrNotFound
	})
	switch {
	case err == nil:
		return Registered, nil
	case errors.Is(err, errAlreadyRegistered):
		return AlreadyRegistered, nil
	case errors.Is(err, ErrNotFound):
		return 0, ErrNotFound
	default:
		return 0, &PersistenceError{Op: "actions", Err: err}
	}
}

// Rate appends a rating record to the action. Repeated ratings from the same
// user are allowed.
func (s *ActionService) Rate(actionID, userID string, rating int, review string) error {
	if userID == "" {
		return newValidationError("user_id", "не указан user_id")
	}
	if rating < 1 || rating > 5 {
		return newValidationError("rating", "оценка должна быть от 1 до 5")
	}

	err := s.store.UpdateActions(func(actions []model.Action) ([]model.Action, error) {
		for i := range actions {
			if actions[i].ID != actionID {
				continue
			}
			actions[i].Ratings = append(actions[i].Ratings, model.Rating{
				UserID: userID,
				Rating: rating,
				Review: review,
			})
			return actions, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return &PersistenceError{Op: "actions", Err: err}
	}
	return nil
}

// nextActionID is 1 + the highest numeric id, or 1 for an empty collection.
// Non-numeric ids are skipped.
func nextActionID(actions []model.Action) int {
	maxID := 0
	for _, action := range actions {
		id, err := strconv.Atoi(action.ID)
		if err != nil {
			continue
		}
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}
