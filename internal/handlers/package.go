package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gymsuite/backend/internal/resources"
	"github.com/gymsuite/backend/internal/services"
	"github.com/gymsuite/backend/pkg/response"
	"gorm.io/gorm"
)

type PackageHandler struct {
	packageService *services.PackageService
}

func NewPackageHandler(db *gorm.DB) *PackageHandler {
	return &PackageHandler{packageService: services.NewPackageService(db)}
}

// List returns paginated packages, optionally scoped to one gym
// GET /api/packages?gym_id=
func (h *PackageHandler) List(c *gin.Context) {
	var req services.PackageListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	result, err := h.packageService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := resources.NewPackageList(result.Items, resources.With("gym"), result.Counts)
	response.Paginated(c, data, result.Page, result.PerPage, result.Total)
}

// GetByID returns a package with subscription counts
// GET /api/packages/:id
func (h *PackageHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid package id")
		return
	}

	pkg, counts, err := h.packageService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, resources.NewPackage(pkg, resources.With("gym"), counts))
}

// Create creates a new package
// POST /api/packages
func (h *PackageHandler) Create(c *gin.Context) {
	var req services.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	pkg, err := h.packageService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, resources.NewPackage(pkg, resources.With("gym"), nil))
}

// Update patches a package
// PUT /api/packages/:id
func (h *PackageHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid package id")
		return
	}

	var req services.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	pkg, err := h.packageService.Update(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, resources.NewPackage(pkg, resources.With("gym"), nil))
}

// Delete removes a package and its subscriptions
// DELETE /api/packages/:id
func (h *PackageHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid package id")
		return
	}

	if err := h.packageService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c, true, "Package deleted successfully")
}

// Purchase creates a subscription for a user
// POST /api/packages/:id/purchase
func (h *PackageHandler) Purchase(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid package id")
		return
	}

	var req services.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	subscription, err := h.packageService.Purchase(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, resources.NewSubscription(subscription))
}
