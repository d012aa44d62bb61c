package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gymsuite/backend/internal/resources"
	"github.com/gymsuite/backend/internal/services"
	"github.com/gymsuite/backend/pkg/response"
	"gorm.io/gorm"
)

type GroupHandler struct {
	groupService *services.GroupService
}

func NewGroupHandler(db *gorm.DB) *GroupHandler {
	return &GroupHandler{groupService: services.NewGroupService(db)}
}

var groupRelations = resources.With("gym", "locations", "members")

// List returns paginated groups, optionally scoped to one gym
// GET /api/groups?gym_id=
func (h *GroupHandler) List(c *gin.Context) {
	var req services.GroupListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	result, err := h.groupService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := resources.NewGroupList(result.Items, groupRelations, nil)
	response.Paginated(c, data, result.Page, result.PerPage, result.Total)
}

// GetByID returns a group with gym, locations and enrollment state
// GET /api/groups/:id
func (h *GroupHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}

	group, err := h.groupService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, resources.NewGroup(group, groupRelations, nil))
}

// Create creates a new group, optionally attaching locations
// POST /api/groups
func (h *GroupHandler) Create(c *gin.Context) {
	var req services.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	group, err := h.groupService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, resources.NewGroup(group, groupRelations, nil))
}

// Update patches a group; location_ids replaces the attachment set
// PUT /api/groups/:id
func (h *GroupHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}

	var req services.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	group, err := h.groupService.Update(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, resources.NewGroup(group, groupRelations, nil))
}

// Delete removes a group and its memberships
// DELETE /api/groups/:id
func (h *GroupHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}

	if err := h.groupService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c, true, "Group deleted successfully")
}

type enrollRequest struct {
	UserID uint `json:"user_id" binding:"required,min=1"`
}

// Enroll adds a user to the group
// POST /api/groups/:id/enroll
func (h *GroupHandler) Enroll(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}

	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	member, err := h.groupService.Enroll(uint(id), req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, member)
}

// Unenroll removes a user from the group
// DELETE /api/groups/:id/enroll/:user_id
func (h *GroupHandler) Unenroll(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	if err := h.groupService.Unenroll(uint(id), uint(userID)); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c, true, "User removed from group")
}
