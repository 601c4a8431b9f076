package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"eco-actions/internal/model"
	"eco-actions/internal/repository"
)

func newActionService(t *testing.T) *ActionService {
	t.Helper()
	return NewActionService(repository.NewFileStore(t.TempDir()))
}

func validInput() ActionInput {
	return ActionInput{
		Title:       "Cleanup",
		Date:        "2025-06-01",
		Location:    "Springfield",
		Description: "Park cleanup",
		ProposerID:  "42",
	}
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	svc := newActionService(t)

	first, err := svc.Create(validInput())
	require.NoError(t, err)
	require.Equal(t, "1", first.ID)

	second, err := svc.Create(validInput())
	require.NoError(t, err)
	require.Equal(t, "2", second.ID)

	ids := make(map[string]bool)
	for _, action := range svc.List() {
		require.False(t, ids[action.ID], "duplicate id %s", action.ID)
		ids[action.ID] = true
	}
}

func TestCreateContinuesFromHighestID(t *testing.T) {
	store := repository.NewFileStore(t.TempDir())
	require.NoError(t, store.SaveActions([]model.Action{
		{ID: "7", Title: "Старое"},
		{ID: "bad-id", Title: "Сломанное"},
	}))
	svc := NewActionService(store)

	created, err := svc.Create(validInput())
	require.NoError(t, err)
	require.Equal(t, "8", created.ID)
}

func TestCreateRejectsBadDate(t *testing.T) {
	svc := newActionService(t)

	for _, date := range []string{"", "01-06-2025", "2025/06/01", "завтра"} {
		input := validInput()
		input.Date = date
		_, err := svc.Create(input)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "date %q", date)
	}
	require.Empty(t, svc.List())
}

func TestCreateInitializesEmptyRatings(t *testing.T) {
	svc := newActionService(t)

	created, err := svc.Create(validInput())
	require.NoError(t, err)
	require.NotNil(t, created.Ratings)
	require.Empty(t, created.Ratings)
}

func TestRegisterIsIdempotent(t *testing.T) {
	svc := newActionService(t)
	created, err := svc.Create(validInput())
	require.NoError(t, err)

	result, err := svc.Register(created.ID, "42")
	require.NoError(t, err)
	require.Equal(t, Registered, result)

	result, err = svc.Register(created.ID, "42")
	require.NoError(t, err)
	require.Equal(t, AlreadyRegistered, result)

	actions := svc.List()
	require.Len(t, actions, 1)
	require.Equal(t, []string{"42"}, actions[0].Participants)
}

func TestRegisterUnknownAction(t *testing.T) {
	svc := newActionService(t)

	_, err := svc.Register("99", "42")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterRequiresUserID(t *testing.T) {
	svc := newActionService(t)

	_, err := svc.Register("1", "")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestRateRejectsOutOfRangeWithoutMutation(t *testing.T) {
	svc := newActionService(t)
	created, err := svc.Create(validInput())
	require.NoError(t, err)

	for _, rating := range []int{0, -1, 6, 100} {
		err := svc.Rate(created.ID, "42", rating, "так себе")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "rating %d", rating)
	}

	require.Empty(t, svc.List()[0].Ratings)
}

func TestRateAppendsAndAllowsRepeats(t *testing.T) {
	svc := newActionService(t)
	created, err := svc.Create(validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Rate(created.ID, "42", 5, "отлично"))
	require.NoError(t, svc.Rate(created.ID, "42", 3, "уже не так"))

	ratings := svc.List()[0].Ratings
	require.Len(t, ratings, 2)
	require.Equal(t, model.Rating{UserID: "42", Rating: 5, Review: "отлично"}, ratings[0])
}

func TestRateUnknownAction(t *testing.T) {
	svc := newActionService(t)

	err := svc.Rate("99", "42", 4, "норм")
	require.ErrorIs(t, err, ErrNotFound)
}
