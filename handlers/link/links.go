package link

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acadbridge/campus-api/database"
	"github.com/acadbridge/campus-api/model"
	"github.com/acadbridge/campus-api/utils/response"
	"github.com/acadbridge/campus-api/utils/validation"
)

// LinkHandler handles institution link-record requests. Pair uniqueness lives
// in the storage layer; the handler only translates the violation.
type LinkHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewLinkHandler creates a new link handler
func NewLinkHandler(db *gorm.DB) *LinkHandler {
	return &LinkHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// InstitutionLinkRequest names the institution and the entity to link it to.
type InstitutionLinkRequest struct {
	InstitutionID uint `json:"institution_id" validate:"required"`
	LinkID        uint `json:"link_id" validate:"required"`
}

// LinkInstitutionDepartment handles POST /api/v1/link/institution-department
func (h *LinkHandler) LinkInstitutionDepartment(c *fiber.Ctx) error {
	var req InstitutionLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var institution model.Institution
	if err := h.db.First(&institution, req.InstitutionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Institution not found")
		}
		return response.InternalServerError(c, "Failed to fetch institution")
	}

	var department model.Department
	if err := h.db.First(&department, req.LinkID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Department not found")
		}
		return response.InternalServerError(c, "Failed to fetch department")
	}

	link := model.InstitutionDepartmentLink{
		InstitutionID: institution.ID,
		DepartmentID:  department.ID,
	}
	if err := h.db.Create(&link).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return response.Conflict(c, "Department already linked to institution")
		}
		return response.InternalServerError(c, "Failed to link department")
	}

	return response.SuccessWithMessage(c, "Department linked to institution", link)
}

// LinkInstitutionCourse handles POST /api/v1/link/institution-course
func (h *LinkHandler) LinkInstitutionCourse(c *fiber.Ctx) error {
	var req InstitutionLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var institution model.Institution
	if err := h.db.First(&institution, req.InstitutionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Institution not found")
		}
		return response.InternalServerError(c, "Failed to fetch institution")
	}

	var course model.Course
	if err := h.db.First(&course, req.LinkID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	link := model.InstitutionCourseLink{
		InstitutionID: institution.ID,
		CourseID:      course.ID,
	}
	if err := h.db.Create(&link).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return response.Conflict(c, "Course already linked to institution")
		}
		return response.InternalServerError(c, "Failed to link course")
	}

	return response.SuccessWithMessage(c, "Course linked to institution", link)
}
