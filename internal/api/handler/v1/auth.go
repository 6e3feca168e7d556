package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huddleup-labs/huddleup-api/internal/api/handler/v1/request"
	"github.com/huddleup-labs/huddleup-api/internal/api/handler/v1/response"
	"github.com/huddleup-labs/huddleup-api/internal/api/middleware"
	"github.com/huddleup-labs/huddleup-api/internal/domain"
	"github.com/huddleup-labs/huddleup-api/internal/service"
)

type AuthService interface {
	VerifyJWT(ctx context.Context, idToken, userAgent string) (string, domain.User, error)
	VerifyExternalWallet(ctx context.Context, wallet, userAgent string) (string, domain.User, error)
	RefreshSession(ctx context.Context, userID, userAgent string) (string, domain.User, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

// HandleVerifyJWT godoc
// @Summary      Verify a wallet provider token and open a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.VerifyJWTRequest true "request body"
// @Success      200      {object}   response.VerifyJWTResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/verify-jwt [post]
func (h *AuthHandler) HandleVerifyJWT(ctx *gin.Context) {
	var req request.VerifyJWTRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	token, user, err := h.svc.VerifyJWT(ctx.Request.Context(), req.IDToken, ctx.Request.UserAgent())
	if err != nil {
		if errors.Is(err, service.ErrJWTVerification) || errors.Is(err, service.ErrNoWalletInToken) {
			response.RenderErr(ctx, response.ErrJWTVerification(err))
			return
		}

		err = fmt.Errorf("v1.HandleVerifyJWT -> h.svc.VerifyJWT -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.VerifyJWTResponse{
		Token: token,
		User:  user,
	})
}

// HandleVerifyExternalWallet godoc
// @Summary      Open a session for an external wallet address
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.VerifyExternalWalletRequest true "request body"
// @Success      200      {object}   response.VerifyJWTResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/verify-wallet [post]
func (h *AuthHandler) HandleVerifyExternalWallet(ctx *gin.Context) {
	var req request.VerifyExternalWalletRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	token, user, err := h.svc.VerifyExternalWallet(ctx.Request.Context(), req.WalletAddress, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleVerifyExternalWallet -> h.svc.VerifyExternalWallet -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.VerifyJWTResponse{
		Token: token,
		User:  user,
	})
}

// HandleRefreshSession godoc
// @Summary      Re-issue the session token
// @Tags         auth
// @Produce      json
// @Success      200      {object}   response.VerifyJWTResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/refresh [post]
// @Security     BearerAuth
func (h *AuthHandler) HandleRefreshSession(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextKeyUserID)
	if userID == "" {
		response.RenderErr(ctx, response.ErrUnauthorized("user is not authenticated"))
		return
	}

	token, user, err := h.svc.RefreshSession(ctx.Request.Context(), userID, ctx.Request.UserAgent())
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
			return
		}

		err = fmt.Errorf("v1.HandleRefreshSession -> h.svc.RefreshSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.VerifyJWTResponse{
		Token: token,
		User:  user,
	})
}
