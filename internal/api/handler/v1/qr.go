package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huddleup-labs/huddleup-api/internal/api/handler/v1/request"
	"github.com/huddleup-labs/huddleup-api/internal/api/handler/v1/response"
	"github.com/huddleup-labs/huddleup-api/internal/service"
)

type QRService interface {
	GenerateParticipationQR(ctx context.Context, walletAddress, eventID string) (string, string, error)
	VerifyParticipationToken(ctx context.Context, token string) (string, string, error)
}

type QRHandler struct {
	svc  QRService
	uSvc UserService
}

func NewQRHandler(svc QRService, uSvc UserService) *QRHandler {
	return &QRHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGenerateQR godoc
// @Summary      Generate an attendance QR code for a joined event
// @Tags         qr
// @Accept       json
// @Produce      json
// @Param        request  body      request.GenerateQRRequest true "request body"
// @Success      200      {object}  response.GenerateQRResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /qr/generate [post]
// @Security     BearerAuth
func (h *QRHandler) HandleGenerateQR(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.GenerateQRRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	imageURL, token, err := h.svc.GenerateParticipationQR(ctx.Request.Context(), user.WalletAddress, req.EventID)
	if err != nil {
		if errors.Is(err, service.ErrNotParticipating) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrNotParticipating))
			return
		}
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", req.EventID))
			return
		}

		err = fmt.Errorf("v1.HandleGenerateQR -> h.svc.GenerateParticipationQR -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.GenerateQRResponse{
		ImageURL: imageURL,
		Token:    token,
	})
}

// HandleVerifyQR godoc
// @Summary      Verify an attendance QR token
// @Tags         qr
// @Accept       json
// @Produce      json
// @Param        request  body      request.VerifyQRRequest true "request body"
// @Success      200      {object}  response.VerifyQRResponse
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /qr/verify [post]
// @Security     BearerAuth
func (h *QRHandler) HandleVerifyQR(ctx *gin.Context) {
	var req request.VerifyQRRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	wallet, eventID, err := h.svc.VerifyParticipationToken(ctx.Request.Context(), req.Token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQRToken) || errors.Is(err, service.ErrNotParticipating) {
			ctx.JSON(http.StatusOK, response.VerifyQRResponse{Valid: false})
			return
		}

		err = fmt.Errorf("v1.HandleVerifyQR -> h.svc.VerifyParticipationToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.VerifyQRResponse{
		Valid:         true,
		WalletAddress: wallet,
		EventID:       eventID,
	})
}
