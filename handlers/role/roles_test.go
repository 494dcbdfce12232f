package role_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/acadbridge/campus-api/database"
	role_handlers "github.com/acadbridge/campus-api/handlers/role"
	"github.com/acadbridge/campus-api/model"
	"github.com/acadbridge/campus-api/services"
	"github.com/acadbridge/campus-api/utils/auth"
	"github.com/acadbridge/campus-api/utils/middleware"
	"github.com/acadbridge/campus-api/utils/response"
)

type roleTestEnv struct {
	app        *fiber.App
	db         *gorm.DB
	jwtManager *auth.JWTManager
}

func newRoleTestEnv(t *testing.T) *roleTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedRoles(db))

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "campus-api-test",
	})
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	handler := role_handlers.NewRoleHandler(db, services.NewGrantService(db))

	app := fiber.New()
	roles := app.Group("/api/v1/role", authMiddleware.Required())
	roles.Post("/institution", authMiddleware.RequireRoles(model.RoleAdmin), handler.GiveInstitutionRole)
	roles.Post("/community", authMiddleware.RequireRoles(model.RoleAdmin), handler.GiveCommunityRole)
	roles.Post("/faculty", authMiddleware.RequireRoles(model.RoleInstitution), handler.GiveFacultyRole)
	roles.Post("/student", authMiddleware.RequireRoles(model.RoleInstitution), handler.GiveStudentRole)
	roles.Post("/community-member", authMiddleware.RequireRoles(model.RoleCommunity), handler.GiveCommunityMemberRole)

	return &roleTestEnv{app: app, db: db, jwtManager: jwtManager}
}

func (e *roleTestEnv) token(t *testing.T, userID uint, roles ...model.RoleName) string {
	t.Helper()
	token, _, err := e.jwtManager.GenerateAccessToken(userID, "caller@example.com", roles)
	require.NoError(t, err)
	return token
}

func (e *roleTestEnv) post(t *testing.T, path, token string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func (e *roleTestEnv) seedInstitution(t *testing.T) (model.User, model.Institution) {
	t.Helper()

	system := model.EducationSystem{Name: "State Board"}
	require.NoError(t, e.db.Create(&system).Error)

	institution := model.Institution{
		Name:              "Northfield College",
		Place:             "Test City",
		Type:              model.InstitutionTypeCollege,
		EducationSystemID: system.ID,
	}
	require.NoError(t, e.db.Create(&institution).Error)

	user := model.User{Email: "target@example.com", Name: "Target", PasswordHash: "x"}
	require.NoError(t, e.db.Create(&user).Error)

	return user, institution
}

func TestGiveInstitutionRole(t *testing.T) {
	t.Run("requires a token", func(t *testing.T) {
		env := newRoleTestEnv(t)
		resp := env.post(t, "/api/v1/role/institution", "", fiber.Map{})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects non-admin callers", func(t *testing.T) {
		env := newRoleTestEnv(t)
		token := env.token(t, 1, model.RoleFaculty)

		resp := env.post(t, "/api/v1/role/institution", token, fiber.Map{})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("rejects more than one target user", func(t *testing.T) {
		env := newRoleTestEnv(t)
		user, institution := env.seedInstitution(t)
		token := env.token(t, 99, model.RoleAdmin)

		resp := env.post(t, "/api/v1/role/institution", token, fiber.Map{
			"user_ids":  []uint{user.ID, user.ID + 1},
			"entity_id": institution.ID,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeResponse(t, resp)
		require.NotNil(t, body.Error)
		assert.Equal(t, "Only one user can be given institution role", body.Error.Message)

		// The rejected request must not have granted anything.
		var count int64
		require.NoError(t, env.db.Model(&model.UserInstitutionLink{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("grants the role", func(t *testing.T) {
		env := newRoleTestEnv(t)
		user, institution := env.seedInstitution(t)
		token := env.token(t, 99, model.RoleAdmin)

		resp := env.post(t, "/api/v1/role/institution", token, fiber.Map{
			"user_ids":  []uint{user.ID},
			"entity_id": institution.ID,
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeResponse(t, resp)
		assert.True(t, body.Success)
		assert.Equal(t, "Institution role given", body.Message)
	})

	t.Run("second admin grant conflicts", func(t *testing.T) {
		env := newRoleTestEnv(t)
		user, institution := env.seedInstitution(t)
		second := model.User{Email: "second@example.com", Name: "Second", PasswordHash: "x"}
		require.NoError(t, env.db.Create(&second).Error)
		token := env.token(t, 99, model.RoleAdmin)

		resp := env.post(t, "/api/v1/role/institution", token, fiber.Map{
			"user_ids":  []uint{user.ID},
			"entity_id": institution.ID,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = env.post(t, "/api/v1/role/institution", token, fiber.Map{
			"user_ids":  []uint{second.ID},
			"entity_id": institution.ID,
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		body := decodeResponse(t, resp)
		require.NotNil(t, body.Error)
		assert.Equal(t, "Institution already has an admin", body.Error.Message)
	})

	t.Run("unknown institution is a 404", func(t *testing.T) {
		env := newRoleTestEnv(t)
		user, _ := env.seedInstitution(t)
		token := env.token(t, 99, model.RoleAdmin)

		resp := env.post(t, "/api/v1/role/institution", token, fiber.Map{
			"user_ids":  []uint{user.ID},
			"entity_id": 9999,
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGiveCommunityRole(t *testing.T) {
	t.Run("rejects more than one target user", func(t *testing.T) {
		env := newRoleTestEnv(t)
		community := model.Community{Name: "Science Club"}
		require.NoError(t, env.db.Create(&community).Error)
		token := env.token(t, 99, model.RoleAdmin)

		resp := env.post(t, "/api/v1/role/community", token, fiber.Map{
			"user_ids":  []uint{1, 2},
			"entity_id": community.ID,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeResponse(t, resp)
		require.NotNil(t, body.Error)
		assert.Equal(t, "Only one user can be given community role", body.Error.Message)
	})
}

func TestGiveFacultyRole(t *testing.T) {
	t.Run("requires the institution role", func(t *testing.T) {
		env := newRoleTestEnv(t)
		token := env.token(t, 1, model.RoleAdmin)

		resp := env.post(t, "/api/v1/role/faculty", token, fiber.Map{})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("grants faculty from the caller's institution", func(t *testing.T) {
		env := newRoleTestEnv(t)
		admin, institution := env.seedInstitution(t)

		// Make the caller the institution admin directly.
		link := model.UserInstitutionLink{
			UserID:        admin.ID,
			InstitutionID: institution.ID,
			Role:          model.RoleInstitution,
		}
		require.NoError(t, env.db.Create(&link).Error)

		department := model.Department{Name: "Mathematics"}
		require.NoError(t, env.db.Create(&department).Error)

		target := model.User{Email: "teacher@example.com", Name: "Teacher", PasswordHash: "x"}
		require.NoError(t, env.db.Create(&target).Error)

		token := env.token(t, admin.ID, model.RoleInstitution)
		resp := env.post(t, "/api/v1/role/faculty", token, fiber.Map{
			"user_membership_id": []fiber.Map{{
				"user_id":        target.ID,
				"member_id":      "FAC-001",
				"department_ids": []uint{department.ID},
			}},
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeResponse(t, resp)
		assert.Equal(t, "Faculty role given", body.Message)

		var faculty model.Faculty
		require.NoError(t, env.db.Where("user_id = ?", target.ID).First(&faculty).Error)
	})
}
