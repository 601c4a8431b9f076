package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eco-actions/internal/model"
)

func TestListActionsIsCached(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode([]model.Action{{ID: "1", Title: "Субботник"}})
	}))
	defer server.Close()

	c := New(server.URL, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		actions, err := c.ListActions(ctx)
		require.NoError(t, err)
		require.Len(t, actions, 1)
	}
	require.Equal(t, int32(1), hits.Load())
}

func TestCreateActionInvalidatesListCache(t *testing.T) {
	var listHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(model.Action{ID: "2"})
			return
		}
		listHits.Add(1)
		json.NewEncoder(w).Encode([]model.Action{{ID: "1"}})
	}))
	defer server.Close()

	c := New(server.URL, time.Minute)
	ctx := context.Background()

	_, err := c.ListActions(ctx)
	require.NoError(t, err)

	_, err = c.CreateAction(ctx, ActionInput{Title: "Посадка", Date: "2025-06-01", Location: "Парк", Description: "Деревья", ProposerID: "42"})
	require.NoError(t, err)

	_, err = c.ListActions(ctx)
	require.NoError(t, err)
	require.Equal(t, int32(2), listHits.Load(), "list after create must hit the server")
}

func TestGetUserCachesNotFound(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Пользователь не найден"})
	}))
	defer server.Close()

	c := New(server.URL, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		user, err := c.GetUser(ctx, "404")
		require.NoError(t, err)
		require.Nil(t, user)
	}
	require.Equal(t, int32(1), hits.Load())
}

func TestCreateUserInvalidatesUserCache(t *testing.T) {
	var getHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(model.User{UserID: "42"})
			return
		}
		getHits.Add(1)
		json.NewEncoder(w).Encode(model.User{UserID: "42", Name: "Ана"})
	}))
	defer server.Close()

	c := New(server.URL, time.Minute)
	ctx := context.Background()

	_, err := c.GetUser(ctx, "42")
	require.NoError(t, err)

	require.NoError(t, c.CreateUser(ctx, model.User{UserID: "42", Name: "Ана", City: "Москва", Grade: "10А", Username: "ana123"}))

	_, err = c.GetUser(ctx, "42")
	require.NoError(t, err)
	require.Equal(t, int32(2), getHits.Load())
}

func TestRegisterReturnsServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/actions/1/register", r.URL.Path)
		var payload struct {
			UserID string `json:"user_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "42", payload.UserID)
		json.NewEncoder(w).Encode(map[string]string{"message": "Успешная регистрация"})
	}))
	defer server.Close()

	c := New(server.URL, time.Minute)
	message, err := c.Register(context.Background(), "1", "42")
	require.NoError(t, err)
	require.Equal(t, "Успешная регистрация", message)
}

func TestUnexpectedStatusBecomesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Не удалось сохранить изменения"}`))
	}))
	defer server.Close()

	c := New(server.URL, time.Minute)
	_, err := c.Statistics(context.Background())

	var sErr *StatusError
	require.ErrorAs(t, err, &sErr)
	require.Equal(t, http.StatusInternalServerError, sErr.StatusCode)
	require.Contains(t, sErr.Body, "Не удалось сохранить изменения")
}

func TestCheckUsername(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/check_username/ana123", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]bool{"available": false})
	}))
	defer server.Close()

	c := New(server.URL, time.Minute)
	available, err := c.CheckUsername(context.Background(), "ana123")
	require.NoError(t, err)
	require.False(t, available)
}
