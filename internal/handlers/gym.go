package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gymsuite/backend/internal/resources"
	"github.com/gymsuite/backend/internal/services"
	"github.com/gymsuite/backend/pkg/response"
	"gorm.io/gorm"
)

type GymHandler struct {
	gymService *services.GymService
}

func NewGymHandler(db *gorm.DB) *GymHandler {
	return &GymHandler{gymService: services.NewGymService(db)}
}

// List returns paginated gyms with location and user counts
// GET /api/gyms
func (h *GymHandler) List(c *gin.Context) {
	var req services.GymListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	result, err := h.gymService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := resources.NewGymList(result.Items, result.Counts)
	response.Paginated(c, data, result.Page, result.PerPage, result.Total)
}

// GetByID returns a gym with all child counts
// GET /api/gyms/:id
func (h *GymHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid gym id")
		return
	}

	gym, counts, err := h.gymService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, resources.NewGym(gym, counts))
}

// Create creates a new gym
// POST /api/gyms
func (h *GymHandler) Create(c *gin.Context) {
	var req services.CreateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	gym, err := h.gymService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, resources.NewGym(gym, nil))
}

// Update patches a gym
// PUT /api/gyms/:id
func (h *GymHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid gym id")
		return
	}

	var req services.UpdateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	gym, err := h.gymService.Update(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, resources.NewGym(gym, nil))
}

// Delete removes a gym and everything that belongs to it
// DELETE /api/gyms/:id
func (h *GymHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid gym id")
		return
	}

	if err := h.gymService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c, true, "Gym deleted successfully")
}
