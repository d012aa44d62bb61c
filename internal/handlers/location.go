package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gymsuite/backend/internal/resources"
	"github.com/gymsuite/backend/internal/services"
	"github.com/gymsuite/backend/pkg/response"
	"gorm.io/gorm"
)

type LocationHandler struct {
	locationService *services.LocationService
}

func NewLocationHandler(db *gorm.DB) *LocationHandler {
	return &LocationHandler{locationService: services.NewLocationService(db)}
}

// List returns paginated locations, optionally scoped to one gym
// GET /api/locations?gym_id=
func (h *LocationHandler) List(c *gin.Context) {
	var req services.LocationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	result, err := h.locationService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := resources.NewLocationList(result.Items, resources.With("gym"), result.Counts)
	response.Paginated(c, data, result.Page, result.PerPage, result.Total)
}

// GetByID returns a location with its gym and counts
// GET /api/locations/:id
func (h *LocationHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid location id")
		return
	}

	location, counts, err := h.locationService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, resources.NewLocation(location, resources.With("gym"), counts))
}

// Create creates a new location
// POST /api/locations
func (h *LocationHandler) Create(c *gin.Context) {
	var req services.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	location, err := h.locationService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, resources.NewLocation(location, resources.With("gym"), nil))
}

// Update patches a location
// PUT /api/locations/:id
func (h *LocationHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid location id")
		return
	}

	var req services.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	location, err := h.locationService.Update(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, resources.NewLocation(location, resources.With("gym"), nil))
}

// Delete removes a location and detaches its users and groups
// DELETE /api/locations/:id
func (h *LocationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid location id")
		return
	}

	if err := h.locationService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c, true, "Location deleted successfully")
}
