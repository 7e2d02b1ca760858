package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coad-fablab/printlab-api/internal/dto"
	"github.com/coad-fablab/printlab-api/internal/models"
	appErrors "github.com/coad-fablab/printlab-api/pkg/errors"
	"github.com/coad-fablab/printlab-api/pkg/response"
)

type staffService interface {
	List(ctx context.Context, includeInactive bool) ([]models.StaffMember, error)
	Create(ctx context.Context, req dto.CreateStaffRequest) (*models.StaffMember, error)
	SetActive(ctx context.Context, name string, req dto.StaffStatusRequest) (*models.StaffMember, error)
}

// StaffHandler exposes roster management endpoints.
type StaffHandler struct {
	staff staffService
}

// NewStaffHandler constructs StaffHandler.
func NewStaffHandler(staff staffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// List godoc
// @Summary List the staff roster
// @Tags Staff
// @Produce json
// @Param include_inactive query bool false "Include deactivated members"
// @Success 200 {object} response.Envelope
// @Router /staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	staff, err := h.staff.List(c.Request.Context(), includeInactive)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"staff": staff})
}

// Create godoc
// @Summary Add a staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param payload body dto.CreateStaffRequest true "Staff payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	member, err := h.staff.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"member": member})
}

// SetActive godoc
// @Summary Activate or deactivate a staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param name path string true "Staff name"
// @Param payload body dto.StaffStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /staff/{name} [patch]
func (h *StaffHandler) SetActive(c *gin.Context) {
	var req dto.StaffStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	member, err := h.staff.SetActive(c.Request.Context(), c.Param("name"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"member": member})
}
