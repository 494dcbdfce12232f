package department

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acadbridge/campus-api/database"
	"github.com/acadbridge/campus-api/model"
	"github.com/acadbridge/campus-api/services"
	"github.com/acadbridge/campus-api/utils/middleware"
	"github.com/acadbridge/campus-api/utils/query"
	"github.com/acadbridge/campus-api/utils/response"
	"github.com/acadbridge/campus-api/utils/validation"
)

// DepartmentHandler handles department-related requests
type DepartmentHandler struct {
	db        *gorm.DB
	scopes    *services.ScopeService
	validator *validation.Validator
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(db *gorm.DB, scopes *services.ScopeService) *DepartmentHandler {
	return &DepartmentHandler{
		db:        db,
		scopes:    scopes,
		validator: validation.NewValidator(),
	}
}

// CreateDepartmentRequest represents the request body for creating a department
type CreateDepartmentRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

// CreateDepartment handles POST /api/v1/department
func (h *DepartmentHandler) CreateDepartment(c *fiber.Ctx) error {
	var req CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Name = validation.SanitizeString(req.Name)

	var existing model.Department
	err := h.db.Where("name = ?", req.Name).First(&existing).Error
	if err == nil {
		return response.Conflict(c, "Department with this name already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.InternalServerError(c, "Failed to check department")
	}

	// The unique index still holds when a concurrent create slips past the
	// pre-check.
	department := model.Department{Name: req.Name}
	if err := h.db.Create(&department).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return response.Conflict(c, "Department with this name already exists")
		}
		return response.InternalServerError(c, "Failed to create department")
	}

	return response.Created(c, department)
}

// ListDepartments handles GET /api/v1/department
// The result is role-scoped: Faculty and Student callers get the full list
// with their own links annotated onto each row.
func (h *DepartmentHandler) ListDepartments(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	scope, err := h.scopes.Resolve(c.Context(), *identity)
	if err != nil {
		return response.FromServiceError(c, err)
	}

	search := c.Query("search", "")

	q := scope.Departments(h.db.Model(&model.Department{}))
	q = query.Search(q, search, "name")

	var departments []model.Department
	if err := q.Find(&departments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch departments")
	}

	return response.Success(c, departments)
}
