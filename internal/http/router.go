package http

import "net/http"

type RouterConfig struct {
	Actions *ActionHandler
	Users   *UserHandler
}

// NewRouter wires the API surface onto the stdlib mux.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /actions", cfg.Actions.List)
	mux.HandleFunc("POST /actions", cfg.Actions.Create)
	mux.HandleFunc("POST /actions/{id}/register", cfg.Actions.Register)
	mux.HandleFunc("POST /actions/{id}/rate", cfg.Actions.Rate)

	mux.HandleFunc("POST /users", cfg.Users.Create)
	mux.HandleFunc("GET /users/check_username/{username}", cfg.Users.CheckUsername)
	mux.HandleFunc("GET /users/{id}", cfg.Users.Get)
	mux.HandleFunc("GET /statistics", cfg.Users.Statistics)

	return RequestLogger(mux)
}
