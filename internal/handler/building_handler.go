package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusatlas/scheduling-api/internal/models"
	"github.com/campusatlas/scheduling-api/internal/service"
	appErrors "github.com/campusatlas/scheduling-api/pkg/errors"
	"github.com/campusatlas/scheduling-api/pkg/response"
)

// BuildingHandler exposes campus building endpoints.
type BuildingHandler struct {
	service *service.BuildingService
	metrics *service.MetricsService
}

// NewBuildingHandler constructs a building handler.
func NewBuildingHandler(svc *service.BuildingService, metrics *service.MetricsService) *BuildingHandler {
	return &BuildingHandler{service: svc, metrics: metrics}
}

// List godoc
// @Summary List campus buildings
// @Tags Buildings
// @Produce json
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /buildings [get]
func (h *BuildingHandler) List(c *gin.Context) {
	var filter models.BuildingFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	buildings, pagination, cacheHit, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordCacheOperation(cacheHit)

	source := "database"
	if cacheHit {
		source = "cache"
	}
	response.JSON(c, http.StatusOK, buildings, pagination, map[string]interface{}{"source": source})
}

// Get godoc
// @Summary Get building detail
// @Tags Buildings
// @Produce json
// @Param id path string true "Building ID"
// @Success 200 {object} response.Envelope
// @Router /buildings/{id} [get]
func (h *BuildingHandler) Get(c *gin.Context) {
	building, err := h.service.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, building, nil)
}

// Create godoc
// @Summary Create building
// @Tags Buildings
// @Accept json
// @Produce json
// @Param payload body service.CreateBuildingRequest true "Building payload"
// @Success 201 {object} response.Envelope
// @Router /buildings [post]
func (h *BuildingHandler) Create(c *gin.Context) {
	var req service.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	building, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, building)
}

// Update godoc
// @Summary Update building
// @Tags Buildings
// @Accept json
// @Produce json
// @Param id path string true "Building ID"
// @Param payload body service.UpdateBuildingRequest true "Building payload"
// @Success 200 {object} response.Envelope
// @Router /buildings/{id} [put]
func (h *BuildingHandler) Update(c *gin.Context) {
	var req service.UpdateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	building, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, building, nil)
}

// Delete godoc
// @Summary Delete building
// @Tags Buildings
// @Produce json
// @Param id path string true "Building ID"
// @Success 204
// @Router /buildings/{id} [delete]
func (h *BuildingHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
