package model

// User stores a registered participant. UserID comes from Telegram and is
// kept as text, matching the persisted form.
type User struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Grade    string `json:"grade"`
	Username string `json:"username"`
}
