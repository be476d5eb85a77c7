package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusatlas/scheduling-api/internal/service"
	"github.com/campusatlas/scheduling-api/pkg/response"
)

// ExportHandler serves schedule exports as downloadable files.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// RoomSchedule godoc
// @Summary Export a room's weekly schedule
// @Tags Exports
// @Produce octet-stream
// @Param id path string true "Room ID"
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /rooms/{id}/schedule/export [get]
func (h *ExportHandler) RoomSchedule(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.FormatCSV)))
	payload, err := h.service.RoomSchedule(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", payload.FileName))
	c.Data(http.StatusOK, payload.ContentType, payload.Data)
}
