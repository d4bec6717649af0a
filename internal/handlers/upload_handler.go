package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gopet/internal/utils"
	"gopet/pkg/logger"
	"gopet/pkg/storage"
)

// UploadHandler stores raw files (license scans, pet photos) and serves them
// back by key. File contents are never inspected.
type UploadHandler struct {
	storage  storage.StorageProvider
	maxBytes int64
	logger   *logger.Logger
	now      func() time.Time
}

func NewUploadHandler(provider storage.StorageProvider, maxBytes int64, log *logger.Logger) *UploadHandler {
	return &UploadHandler{
		storage:  provider,
		maxBytes: maxBytes,
		logger:   orNop(log),
		now:      time.Now,
	}
}

type uploadResult struct {
	URL string `json:"url"`
}

func (h *UploadHandler) Upload(c *gin.Context) {
	if h.maxBytes > 0 {
		if c.Request.ContentLength > h.maxBytes {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, utils.CodePayloadTooLarge, utils.ErrFileTooLarge)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}

	header, err := c.FormFile(utils.UploadFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, utils.CodePayloadTooLarge, utils.ErrFileTooLarge)
			return
		}
		utils.BadRequestResponse(c, utils.ErrMissingFile)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, h.logger, err, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	key := storage.NewObjectKey(header.Filename, h.now())
	result, err := h.storage.Upload(c.Request.Context(), &storage.UploadRequest{
		Key:         key,
		Reader:      file,
		ContentType: storage.ContentTypeFor(key),
		Size:        header.Size,
	})
	if err != nil {
		respondError(c, h.logger, err, "Failed to store uploaded file")
		return
	}

	h.logger.WithContext(c.Request.Context()).
		WithFields(map[string]interface{}{"key": key, "size": result.Size}).
		Info("File uploaded")
	utils.CreatedResponse(c, utils.MsgFileUploaded, uploadResult{URL: result.URL})
}

// Download streams a stored object. Remote providers hand out their own
// URLs, so this mostly serves local storage.
func (h *UploadHandler) Download(c *gin.Context) {
	key := objectKey(c)
	if key == "" {
		utils.NotFoundResponse(c, utils.ErrFileNotFound)
		return
	}

	object, err := h.storage.Download(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			utils.NotFoundResponse(c, utils.ErrFileNotFound)
			return
		}
		respondError(c, h.logger, err, "Failed to read stored file")
		return
	}
	defer object.Reader.Close()

	contentType := object.ContentType
	if contentType == "" {
		contentType = storage.ContentTypeFor(key)
	}
	c.DataFromReader(http.StatusOK, object.Size, contentType, object.Reader, nil)
}

func (h *UploadHandler) Delete(c *gin.Context) {
	key := objectKey(c)
	if key == "" {
		utils.NotFoundResponse(c, utils.ErrFileNotFound)
		return
	}

	exists, err := h.storage.FileExists(c.Request.Context(), key)
	if err != nil {
		respondError(c, h.logger, err, "Failed to look up stored file")
		return
	}
	if !exists {
		utils.NotFoundResponse(c, utils.ErrFileNotFound)
		return
	}

	if err := h.storage.Delete(c.Request.Context(), key); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			utils.NotFoundResponse(c, utils.ErrFileNotFound)
			return
		}
		respondError(c, h.logger, err, "Failed to delete stored file")
		return
	}
	utils.SuccessResponse(c, utils.MsgFileDeleted, nil)
}

func objectKey(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("key"), "/")
}
