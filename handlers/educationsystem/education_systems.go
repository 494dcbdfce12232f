package educationsystem

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acadbridge/campus-api/database"
	"github.com/acadbridge/campus-api/model"
	"github.com/acadbridge/campus-api/utils/cache"
	"github.com/acadbridge/campus-api/utils/query"
	"github.com/acadbridge/campus-api/utils/response"
	"github.com/acadbridge/campus-api/utils/validation"
)

const listCacheKey = "education_systems:all"
const listCacheTTL = 5 * time.Minute

// EducationSystemHandler handles education-system requests. The unfiltered
// list is read-through cached in Redis; the cache is optional and the handler
// degrades to uncached when it is nil.
type EducationSystemHandler struct {
	db        *gorm.DB
	cache     *cache.RedisCache
	validator *validation.Validator
}

// NewEducationSystemHandler creates a new education-system handler
func NewEducationSystemHandler(db *gorm.DB, redisCache *cache.RedisCache) *EducationSystemHandler {
	return &EducationSystemHandler{
		db:        db,
		cache:     redisCache,
		validator: validation.NewValidator(),
	}
}

// CreateEducationSystemRequest represents the request body for creating an education system
type CreateEducationSystemRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

// CreateEducationSystem handles POST /api/v1/education-system
func (h *EducationSystemHandler) CreateEducationSystem(c *fiber.Ctx) error {
	var req CreateEducationSystemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Name = validation.SanitizeString(req.Name)

	var existing model.EducationSystem
	err := h.db.Where("name = ?", req.Name).First(&existing).Error
	if err == nil {
		return response.Conflict(c, "Education system with this name already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.InternalServerError(c, "Failed to check education system")
	}

	educationSystem := model.EducationSystem{Name: req.Name}
	if err := h.db.Create(&educationSystem).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return response.Conflict(c, "Education system with this name already exists")
		}
		return response.InternalServerError(c, "Failed to create education system")
	}

	if h.cache != nil {
		h.cache.Delete(c.Context(), listCacheKey)
	}

	return response.Created(c, educationSystem)
}

// ListEducationSystems handles GET /api/v1/education-system
func (h *EducationSystemHandler) ListEducationSystems(c *fiber.Ctx) error {
	search := c.Query("search", "")

	// Only the unfiltered list is cached.
	if search == "" && h.cache != nil {
		var cached []model.EducationSystem
		if err := h.cache.GetJSON(c.Context(), listCacheKey, &cached); err == nil {
			return response.Success(c, cached)
		}
	}

	q := h.db.Model(&model.EducationSystem{})
	q = query.Search(q, search, "name")

	var educationSystems []model.EducationSystem
	if err := q.Find(&educationSystems).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch education systems")
	}

	if search == "" && h.cache != nil {
		h.cache.SetJSON(c.Context(), listCacheKey, educationSystems, listCacheTTL)
	}

	return response.Success(c, educationSystems)
}
