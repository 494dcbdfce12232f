package institution

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acadbridge/campus-api/database"
	"github.com/acadbridge/campus-api/model"
	"github.com/acadbridge/campus-api/utils/query"
	"github.com/acadbridge/campus-api/utils/response"
	"github.com/acadbridge/campus-api/utils/validation"
)

// InstitutionHandler handles institution-related requests
type InstitutionHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewInstitutionHandler creates a new institution handler
func NewInstitutionHandler(db *gorm.DB) *InstitutionHandler {
	return &InstitutionHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateInstitutionRequest represents the request body for creating an institution
type CreateInstitutionRequest struct {
	Name              string `json:"name" validate:"required,min=2,max=255"`
	Place             string `json:"place" validate:"required,min=2,max=255"`
	InstitutionType   string `json:"institution_type" validate:"required,oneof=SCHOOL COLLEGE"`
	EducationSystemID uint   `json:"education_system_id" validate:"required"`
}

// CreateInstitution handles POST /api/v1/institution
func (h *InstitutionHandler) CreateInstitution(c *fiber.Ctx) error {
	var req CreateInstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Place = validation.SanitizeString(req.Place)

	var educationSystem model.EducationSystem
	if err := h.db.First(&educationSystem, req.EducationSystemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Education system not found")
		}
		return response.InternalServerError(c, "Failed to fetch education system")
	}

	var existing model.Institution
	err := h.db.Where("name = ?", req.Name).First(&existing).Error
	if err == nil {
		return response.Conflict(c, "Institution with this name already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.InternalServerError(c, "Failed to check institution")
	}

	institution := model.Institution{
		Name:              req.Name,
		Place:             req.Place,
		Type:              model.InstitutionType(req.InstitutionType),
		EducationSystemID: req.EducationSystemID,
	}
	if err := h.db.Create(&institution).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return response.Conflict(c, "Institution with this name already exists")
		}
		return response.InternalServerError(c, "Failed to create institution")
	}

	return response.Created(c, institution)
}

// ListInstitutions handles GET /api/v1/institution
func (h *InstitutionHandler) ListInstitutions(c *fiber.Ctx) error {
	search := c.Query("search", "")

	q := h.db.Model(&model.Institution{})
	q = query.Search(q, search, "name", "place")

	var institutions []model.Institution
	if err := q.Find(&institutions).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch institutions")
	}

	return response.Success(c, institutions)
}
