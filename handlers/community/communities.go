package community

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

// CommunityHandler handles community-related requests
type CommunityHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCommunityHandler creates a new community handler
func NewCommunityHandler(db *gorm.DB) *CommunityHandler {
	return &CommunityHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateCommunityRequest represents the request body for creating a community
type CreateCommunityRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=255"`
	Level         string `json:"level" validate:"required,min=1,max=100"`
	CommunityType string `json:"community_type" validate:"required,min=1,max=100"`
}

// CreateCommunity handles POST /api/v1/community
func (h *CommunityHandler) CreateCommunity(c *fiber.Ctx) error {
	var req CreateCommunityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Name = validation.SanitizeString(req.Name)

	var existing model.Community
	err := h.db.Where("name = ?", req.Name).First(&existing).Error
	if err == nil {
		return response.Conflict(c, "Community with this name already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.InternalServerError(c, "Failed to check community")
	}

	community := model.Community{
		Name:          req.Name,
		Level:         req.Level,
		CommunityType: req.CommunityType,
	}
	if err := h.db.Create(&community).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return response.Conflict(c, "Community with this name already exists")
		}
		return response.InternalServerError(c, "Failed to create community")
	}

	return response.Created(c, community)
}

// ListCommunities handles GET /api/v1/community
func (h *CommunityHandler) ListCommunities(c *fiber.Ctx) error {
	search := c.Query("search", "")

	q := h.db.Model(&model.Community{})
	q = query.Search(q, search, "name", "level", "community_type")

	var communities []model.Community
	if err := q.Find(&communities).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch communities")
	}

	return response.Success(c, communities)
}
