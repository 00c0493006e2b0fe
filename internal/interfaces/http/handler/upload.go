package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/laiyolobaru/backend/internal/application/media"
	"github.com/laiyolobaru/backend/internal/interfaces/http/dto"
)

// multipartOverhead leaves room for the form fields around the file
const multipartOverhead = 1 << 20

// UploadHandler receives images from the dashboard
type UploadHandler struct {
	BaseHandler
	mediaService MediaService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(mediaService MediaService) *UploadHandler {
	return &UploadHandler{mediaService: mediaService}
}

// Upload godoc
// @Summary      Upload image
// @Description  JPEG or PNG. Wide images are downscaled before they are stored.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Image"
// @Param        folder formData string true "Target folder" Enums(articles, umkm, travels, writers)
// @Success      201 {object} dto.Response{data=media.UploadResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	maxSize := h.mediaService.MaxUploadSize()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.ErrorWithCode(c, dto.ErrCodeFileTooLarge, "Ukuran file melebihi batas maksimum")
			return
		}
		h.BadRequest(c, "File wajib diunggah")
		return
	}
	if fileHeader.Size > maxSize {
		h.ErrorWithCode(c, dto.ErrCodeFileTooLarge, "Ukuran file melebihi batas maksimum")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.mediaService.Upload(c.Request.Context(), media.UploadInput{
		Folder:   media.Folder(c.PostForm("folder")),
		Filename: fileHeader.Filename,
		Data:     data,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
