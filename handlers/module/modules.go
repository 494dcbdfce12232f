package module

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acadbridge/campus-api/database"
	"github.com/acadbridge/campus-api/model"
	"github.com/acadbridge/campus-api/utils/response"
	"github.com/acadbridge/campus-api/utils/validation"
)

// ModuleHandler handles module-related requests
type ModuleHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewModuleHandler creates a new module handler
func NewModuleHandler(db *gorm.DB) *ModuleHandler {
	return &ModuleHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateModuleRequest represents the request body for creating a module
type CreateModuleRequest struct {
	CourseID     uint   `json:"course_id" validate:"required"`
	Name         string `json:"name" validate:"required,min=2,max=255"`
	Description  string `json:"description" validate:"omitempty,max=2000"`
	ModuleNumber int    `json:"module_number" validate:"required,min=1"`
}

// CreateModule handles POST /api/v1/module
func (h *ModuleHandler) CreateModule(c *fiber.Ctx) error {
	var req CreateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var course model.Course
	if err := h.db.First(&course, req.CourseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	module := model.Module{
		CourseID:     req.CourseID,
		Name:         validation.SanitizeString(req.Name),
		Description:  req.Description,
		ModuleNumber: req.ModuleNumber,
	}
	if err := h.db.Create(&module).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return response.Conflict(c, "Course already has a module with this number")
		}
		return response.InternalServerError(c, "Failed to create module")
	}

	return response.Created(c, module)
}

// ListModules handles GET /api/v1/module?id=<course_id>
// An unknown course id is a 404; a known course with zero modules is a 400.
// The two cases are deliberately distinct.
func (h *ModuleHandler) ListModules(c *fiber.Ctx) error {
	rawID := c.Query("id", "")
	if rawID == "" {
		return response.BadRequest(c, "Course id is required")
	}

	courseID, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	var course model.Course
	if err := h.db.First(&course, courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	var modules []model.Module
	if err := h.db.Where("course_id = ?", courseID).
		Order("module_number ASC").
		Find(&modules).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch modules")
	}

	if len(modules) == 0 {
		return response.BadRequest(c, "Course has no modules")
	}

	return response.Success(c, modules)
}
