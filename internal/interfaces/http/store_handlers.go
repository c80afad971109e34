package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/bill-review/internal/application/port"
)

// storeHandlers serve the store API consumed by remote clients.
// Answers are bare JSON, without the Response envelope.
type storeHandlers struct {
	store          ProofStore
	maxUploadBytes int64
	logger         Logger
}

type updateBody struct {
	Data *string `json:"data" binding:"required"`
}

func storeError(c *gin.Context, err error) {
	c.JSON(port.StoreErrorCode(err), gin.H{"error": err.Error()})
}

// List handles GET /v1/bills
func (h *storeHandlers) List(c *gin.Context) {
	records, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Store list failed", "error", err)
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Create handles POST /v1/bills with multipart fields "file" and "email"
func (h *storeHandlers) Create(c *gin.Context) {
	file, err := readProof(c, "file", h.maxUploadBytes)
	if err != nil {
		storeError(c, port.NewStoreError(http.StatusBadRequest, err))
		return
	}

	result, err := h.store.Create(c.Request.Context(), port.Upload{File: file, Email: c.PostForm("email")})
	if err != nil {
		h.logger.Error("Store create failed", "error", err, "file_name", file.Name)
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Update handles PATCH /v1/bills/:id; without id a new record is inserted
func (h *storeHandlers) Update(c *gin.Context) {
	var body updateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		storeError(c, port.NewStoreError(http.StatusBadRequest, fmt.Errorf("invalid update body: %w", err)))
		return
	}

	err := h.store.Update(c.Request.Context(), port.UpdateRequest{Data: *body.Data, Selector: c.Param("id")})
	if err != nil {
		if !errors.Is(err, port.ErrNotFound) {
			h.logger.Error("Store update failed", "error", err, "id", c.Param("id"))
		}
		storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ServeFile handles GET /v1/files/:key/:name
func (h *storeHandlers) ServeFile(c *gin.Context) {
	content, contentType, err := h.store.OpenProof(c.Request.Context(), c.Param("key"), c.Param("name"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.Header("Cache-Control", "private, max-age=86400")
	c.Data(http.StatusOK, contentType, content)
}
