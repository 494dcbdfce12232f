package module_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/acadbridge/campus-api/database"
	module_handlers "github.com/acadbridge/campus-api/handlers/module"
	"github.com/acadbridge/campus-api/model"
	"github.com/acadbridge/campus-api/utils/auth"
	"github.com/acadbridge/campus-api/utils/middleware"
	"github.com/acadbridge/campus-api/utils/response"
)

type moduleTestEnv struct {
	app        *fiber.App
	db         *gorm.DB
	jwtManager *auth.JWTManager
}

func newModuleTestEnv(t *testing.T) *moduleTestEnv {
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

	handler := module_handlers.NewModuleHandler(db)

	app := fiber.New()
	modules := app.Group("/api/v1/module", authMiddleware.Required())
	modules.Post("/", authMiddleware.RequireRoles(model.RoleAdmin), handler.CreateModule)
	modules.Get("/",
		authMiddleware.RequireRoles(model.RoleAdmin, model.RoleInstitution, model.RoleFaculty, model.RoleStudent),
		handler.ListModules)

	return &moduleTestEnv{app: app, db: db, jwtManager: jwtManager}
}

func (e *moduleTestEnv) request(t *testing.T, method, path string, roles []model.RoleName, payload interface{}) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")

	token, _, err := e.jwtManager.GenerateAccessToken(1, "caller@example.com", roles)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *moduleTestEnv) seedCourse(t *testing.T) model.Course {
	t.Helper()

	system := model.EducationSystem{Name: "State Board"}
	require.NoError(t, e.db.Create(&system).Error)

	course := model.Course{
		Name:              "Algebra",
		Code:              "MATH101",
		EducationSystemID: system.ID,
		ClassOrSemester:   "Semester 3",
	}
	require.NoError(t, e.db.Create(&course).Error)
	return course
}

func decodeEnvelope(t *testing.T, resp *http.Response) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestCreateModule(t *testing.T) {
	t.Run("creates a module", func(t *testing.T) {
		env := newModuleTestEnv(t)
		course := env.seedCourse(t)

		resp := env.request(t, http.MethodPost, "/api/v1/module", []model.RoleName{model.RoleAdmin}, fiber.Map{
			"course_id":     course.ID,
			"name":          "Linear Equations",
			"module_number": 1,
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("unknown course is a 404", func(t *testing.T) {
		env := newModuleTestEnv(t)

		resp := env.request(t, http.MethodPost, "/api/v1/module", []model.RoleName{model.RoleAdmin}, fiber.Map{
			"course_id":     9999,
			"name":          "Linear Equations",
			"module_number": 1,
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("duplicate module number conflicts", func(t *testing.T) {
		env := newModuleTestEnv(t)
		course := env.seedCourse(t)

		payload := fiber.Map{
			"course_id":     course.ID,
			"name":          "Linear Equations",
			"module_number": 1,
		}
		resp := env.request(t, http.MethodPost, "/api/v1/module", []model.RoleName{model.RoleAdmin}, payload)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = env.request(t, http.MethodPost, "/api/v1/module", []model.RoleName{model.RoleAdmin}, payload)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		body := decodeEnvelope(t, resp)
		require.NotNil(t, body.Error)
		assert.Equal(t, "Course already has a module with this number", body.Error.Message)
	})
}

func TestListModules(t *testing.T) {
	callerRoles := []model.RoleName{model.RoleAdmin}

	t.Run("missing course id is a 400", func(t *testing.T) {
		env := newModuleTestEnv(t)

		resp := env.request(t, http.MethodGet, "/api/v1/module", callerRoles, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeEnvelope(t, resp)
		require.NotNil(t, body.Error)
		assert.Equal(t, "Course id is required", body.Error.Message)
	})

	t.Run("non-numeric course id is a 400", func(t *testing.T) {
		env := newModuleTestEnv(t)

		resp := env.request(t, http.MethodGet, "/api/v1/module?id=abc", callerRoles, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeEnvelope(t, resp)
		require.NotNil(t, body.Error)
		assert.Equal(t, "Invalid course id", body.Error.Message)
	})

	t.Run("unknown course is a 404", func(t *testing.T) {
		env := newModuleTestEnv(t)

		resp := env.request(t, http.MethodGet, "/api/v1/module?id=9999", callerRoles, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeEnvelope(t, resp)
		require.NotNil(t, body.Error)
		assert.Equal(t, "Course not found", body.Error.Message)
	})

	t.Run("course without modules is a 400", func(t *testing.T) {
		env := newModuleTestEnv(t)
		course := env.seedCourse(t)

		resp := env.request(t, http.MethodGet, "/api/v1/module?id="+itoa(course.ID), callerRoles, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeEnvelope(t, resp)
		require.NotNil(t, body.Error)
		assert.Equal(t, "Course has no modules", body.Error.Message)
	})

	t.Run("modules come back ordered by module number", func(t *testing.T) {
		env := newModuleTestEnv(t)
		course := env.seedCourse(t)

		for _, n := range []int{3, 1, 2} {
			module := model.Module{
				CourseID:     course.ID,
				Name:         "Module",
				ModuleNumber: n,
			}
			require.NoError(t, env.db.Create(&module).Error)
		}

		resp := env.request(t, http.MethodGet, "/api/v1/module?id="+itoa(course.ID), callerRoles, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data []model.Module `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

		require.Len(t, body.Data, 3)
		assert.Equal(t, 1, body.Data[0].ModuleNumber)
		assert.Equal(t, 2, body.Data[1].ModuleNumber)
		assert.Equal(t, 3, body.Data[2].ModuleNumber)
	})
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
