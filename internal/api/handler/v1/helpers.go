package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/huddleup-labs/huddleup-api/internal/api/handler/v1/response"
	"github.com/huddleup-labs/huddleup-api/internal/api/middleware"
	"github.com/huddleup-labs/huddleup-api/internal/domain"
	"github.com/huddleup-labs/huddleup-api/internal/service"
)

// getUserFromContext resolves the authenticated user set by the JWT
// middleware into a full domain.User.
func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	userID := ctx.GetString(middleware.ContextKeyUserID)
	if userID == "" {
		return domain.User{}, response.ErrUnauthorized("user is not authenticated")
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrNotFound("user", "ID", userID)
		}

		return domain.User{}, response.ErrInternalServerError(err)
	}

	return user, nil
}
