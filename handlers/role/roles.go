package role

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acadbridge/campus-api/services"
	"github.com/acadbridge/campus-api/utils/middleware"
	"github.com/acadbridge/campus-api/utils/response"
	"github.com/acadbridge/campus-api/utils/validation"
)

// RoleHandler handles role-grant requests
type RoleHandler struct {
	db        *gorm.DB
	grants    *services.GrantService
	validator *validation.Validator
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(db *gorm.DB, grants *services.GrantService) *RoleHandler {
	return &RoleHandler{
		db:        db,
		grants:    grants,
		validator: validation.NewValidator(),
	}
}

// GiveRoleRequest targets users with an entity to scope the role to.
type GiveRoleRequest struct {
	UserIDs  []uint `json:"user_ids" validate:"required,min=1"`
	EntityID uint   `json:"entity_id" validate:"required"`
}

// GiveFacultyRoleRequest carries the faculty grant batch.
type GiveFacultyRoleRequest struct {
	UserMembershipID []services.FacultyMembership `json:"user_membership_id" validate:"required,min=1,dive"`
}

// GiveStudentRoleRequest carries the student grant batch.
type GiveStudentRoleRequest struct {
	UserMembershipIDs []services.StudentMembership `json:"user_membership_ids" validate:"required,min=1,dive"`
}

// GiveCommunityMemberRoleRequest targets users to join the caller's community.
type GiveCommunityMemberRoleRequest struct {
	UserIDs []uint `json:"user_ids" validate:"required,min=1"`
}

// GiveInstitutionRole handles POST /api/v1/role/institution
// The single-target rule lives in the grant service and surfaces as a 400.
func (h *RoleHandler) GiveInstitutionRole(c *fiber.Ctx) error {
	var req GiveRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if err := h.grants.GrantInstitutionRole(c.Context(), req.UserIDs, req.EntityID); err != nil {
		return response.FromServiceError(c, err)
	}

	return response.SuccessWithMessage(c, "Institution role given", nil)
}

// GiveCommunityRole handles POST /api/v1/role/community
func (h *RoleHandler) GiveCommunityRole(c *fiber.Ctx) error {
	var req GiveRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if err := h.grants.GrantCommunityRole(c.Context(), req.UserIDs, req.EntityID); err != nil {
		return response.FromServiceError(c, err)
	}

	return response.SuccessWithMessage(c, "Community role given", nil)
}

// GiveFacultyRole handles POST /api/v1/role/faculty
func (h *RoleHandler) GiveFacultyRole(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req GiveFacultyRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if err := h.grants.GrantFacultyRole(c.Context(), identity.UserID, req.UserMembershipID); err != nil {
		return response.FromServiceError(c, err)
	}

	return response.SuccessWithMessage(c, "Faculty role given", nil)
}

// GiveStudentRole handles POST /api/v1/role/student
func (h *RoleHandler) GiveStudentRole(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req GiveStudentRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if err := h.grants.GrantStudentRole(c.Context(), identity.UserID, req.UserMembershipIDs); err != nil {
		return response.FromServiceError(c, err)
	}

	return response.SuccessWithMessage(c, "Student role given", nil)
}

// GiveCommunityMemberRole handles POST /api/v1/role/community-member
func (h *RoleHandler) GiveCommunityMemberRole(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req GiveCommunityMemberRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if err := h.grants.GrantCommunityMemberRole(c.Context(), identity.UserID, req.UserIDs); err != nil {
		return response.FromServiceError(c, err)
	}

	return response.SuccessWithMessage(c, "Community Member role given", nil)
}
