package v1

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/huddleup-labs/huddleup-api/internal/api/handler/v1/response"
)

// maxUploadBytes caps banner uploads at 5 MiB.
const maxUploadBytes = 5 << 20

var allowedImageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

type UploadStore interface {
	Upload(ctx context.Context, key string, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

type UploadHandler struct {
	store UploadStore
	uSvc  UserService
}

func NewUploadHandler(store UploadStore, uSvc UserService) *UploadHandler {
	return &UploadHandler{
		store: store,
		uSvc:  uSvc,
	}
}

// HandleUploadImage godoc
// @Summary      Upload an event banner image
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file true "image file"
// @Success      201   {object}  response.UploadResponse
// @Failure      400   {object}  response.Err
// @Failure      401   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /upload/images [post]
// @Security     BearerAuth
func (h *UploadHandler) HandleUploadImage(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if fileHeader.Size > maxUploadBytes {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("file exceeds %d bytes", maxUploadBytes)))
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := allowedImageTypes[ext]
	if !ok {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("unsupported file type %q", ext)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		err = fmt.Errorf("v1.HandleUploadImage -> io.ReadAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	key := fmt.Sprintf("banners/%s/%s%s", user.ID, uuid.NewString(), ext)
	url, err := h.store.Upload(ctx.Request.Context(), key, contentType, data)
	if err != nil {
		err = fmt.Errorf("v1.HandleUploadImage -> h.store.Upload -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.UploadResponse{URL: url})
}

// HandleDeleteImage godoc
// @Summary      Delete an uploaded image
// @Tags         uploads
// @Produce      json
// @Param        key  query  string true "object key returned at upload time"
// @Success      204
// @Failure      400   {object}  response.Err
// @Failure      401   {object}  response.Err
// @Failure      403   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /upload/image [delete]
// @Security     BearerAuth
func (h *UploadHandler) HandleDeleteImage(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	key := ctx.Query("key")
	if key == "" {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("key is required")))
		return
	}

	// Users may only remove objects under their own prefix.
	if !strings.HasPrefix(key, fmt.Sprintf("banners/%s/", user.ID)) {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("key does not belong to the current user")))
		return
	}

	if err := h.store.Delete(ctx.Request.Context(), key); err != nil {
		err = fmt.Errorf("v1.HandleDeleteImage -> h.store.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
