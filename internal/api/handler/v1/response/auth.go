package response

import "github.com/huddleup-labs/huddleup-api/internal/domain"

type VerifyJWTResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
