package course

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

// CourseHandler handles course-related requests
type CourseHandler struct {
	db        *gorm.DB
	scopes    *services.ScopeService
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB, scopes *services.ScopeService) *CourseHandler {
	return &CourseHandler{
		db:        db,
		scopes:    scopes,
		validator: validation.NewValidator(),
	}
}

// CreateCourseRequest represents the request body for creating a course
type CreateCourseRequest struct {
	Name              string `json:"name" validate:"required,min=2,max=255"`
	Code              string `json:"code" validate:"required,min=1,max=50"`
	DepartmentID      uint   `json:"department_id" validate:"required"`
	EducationSystemID uint   `json:"education_system_id" validate:"required"`
	ClassOrSemester   string `json:"class_or_semester" validate:"required,max=50"`
}

// CreateCourse handles POST /api/v1/course
// Linking the course to its department is a required side effect, so both
// rows are created in one transaction.
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Code = validation.SanitizeString(req.Code)

	var department model.Department
	if err := h.db.First(&department, req.DepartmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Department not found")
		}
		return response.InternalServerError(c, "Failed to fetch department")
	}

	var educationSystem model.EducationSystem
	if err := h.db.First(&educationSystem, req.EducationSystemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Education system not found")
		}
		return response.InternalServerError(c, "Failed to fetch education system")
	}

	var existing model.Course
	checkErr := h.db.Where("name = ? OR code = ?", req.Name, req.Code).First(&existing).Error
	if checkErr == nil {
		return response.Conflict(c, "Course with this name or code already exists")
	}
	if !errors.Is(checkErr, gorm.ErrRecordNotFound) {
		return response.InternalServerError(c, "Failed to check course")
	}

	course := model.Course{
		Name:              req.Name,
		Code:              req.Code,
		EducationSystemID: req.EducationSystemID,
		ClassOrSemester:   req.ClassOrSemester,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		link := model.CourseDepartmentLink{
			CourseID:     course.ID,
			DepartmentID: department.ID,
		}
		return tx.Create(&link).Error
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return response.Conflict(c, "Course with this name or code already exists")
		}
		return response.InternalServerError(c, "Failed to create course")
	}

	return response.Created(c, course)
}

// ListCourses handles GET /api/v1/course
// The result is role-scoped: Faculty callers get the full list annotated
// with their own course links; Student callers only see courses matching
// their class/semester and department links.
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	scope, err := h.scopes.Resolve(c.Context(), *identity)
	if err != nil {
		return response.FromServiceError(c, err)
	}

	search := c.Query("search", "")

	q := scope.Courses(h.db.Model(&model.Course{}))
	if search != "" {
		// The education system name is searchable too, which needs the join.
		q = q.Joins("JOIN education_systems ON education_systems.id = courses.education_system_id")
		q = query.Search(q, search,
			"courses.name", "courses.code", "courses.class_or_semester", "education_systems.name")
	}

	var courses []model.Course
	if err := q.Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	return response.Success(c, courses)
}
