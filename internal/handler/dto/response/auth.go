package response

import (
	"time"

	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

func FromUserView(view *queries.UserView) *UserResponse {
	return &UserResponse{
		ID:        view.ID,
		Username:  view.Username,
		CreatedAt: view.CreatedAt,
	}
}
