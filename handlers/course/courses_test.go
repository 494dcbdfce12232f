package course_test

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
	course_handlers "github.com/acadbridge/campus-api/handlers/course"
	"github.com/acadbridge/campus-api/model"
	"github.com/acadbridge/campus-api/services"
	"github.com/acadbridge/campus-api/utils/auth"
	"github.com/acadbridge/campus-api/utils/middleware"
	"github.com/acadbridge/campus-api/utils/response"
)

type courseTestEnv struct {
	app        *fiber.App
	db         *gorm.DB
	jwtManager *auth.JWTManager
}

func newCourseTestEnv(t *testing.T) *courseTestEnv {
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

	handler := course_handlers.NewCourseHandler(db, services.NewScopeService(db))

	app := fiber.New()
	courses := app.Group("/api/v1/course", authMiddleware.Required())
	courses.Post("/", authMiddleware.RequireRoles(model.RoleAdmin), handler.CreateCourse)
	courses.Get("/",
		authMiddleware.RequireRoles(model.RoleAdmin, model.RoleInstitution, model.RoleFaculty, model.RoleStudent),
		handler.ListCourses)

	return &courseTestEnv{app: app, db: db, jwtManager: jwtManager}
}

func (e *courseTestEnv) request(t *testing.T, method, path string, userID uint, roles []model.RoleName, payload interface{}) *http.Response {
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

	token, _, err := e.jwtManager.GenerateAccessToken(userID, "caller@example.com", roles)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *courseTestEnv) seedPrerequisites(t *testing.T) (model.EducationSystem, model.Department) {
	t.Helper()

	system := model.EducationSystem{Name: "State Board"}
	require.NoError(t, e.db.Create(&system).Error)
	department := model.Department{Name: "Mathematics"}
	require.NoError(t, e.db.Create(&department).Error)
	return system, department
}

func TestCreateCourse(t *testing.T) {
	t.Run("creates a course with its department link", func(t *testing.T) {
		env := newCourseTestEnv(t)
		system, department := env.seedPrerequisites(t)

		resp := env.request(t, http.MethodPost, "/api/v1/course", 1,
			[]model.RoleName{model.RoleAdmin}, fiber.Map{
				"name":                "Bachelor of Science",
				"code":                "BSC",
				"department_id":       department.ID,
				"education_system_id": system.ID,
				"class_or_semester":   "Semester 1",
			})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var link model.CourseDepartmentLink
		require.NoError(t, env.db.Where("department_id = ?", department.ID).First(&link).Error)
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		env := newCourseTestEnv(t)
		system, department := env.seedPrerequisites(t)

		payload := fiber.Map{
			"name":                "Bachelor of Science",
			"code":                "BSC",
			"department_id":       department.ID,
			"education_system_id": system.ID,
			"class_or_semester":   "Semester 1",
		}
		resp := env.request(t, http.MethodPost, "/api/v1/course", 1,
			[]model.RoleName{model.RoleAdmin}, payload)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		payload["name"] = "Bachelor of Commerce"
		resp = env.request(t, http.MethodPost, "/api/v1/course", 1,
			[]model.RoleName{model.RoleAdmin}, payload)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("storage-level uniqueness conflict is a 409", func(t *testing.T) {
		env := newCourseTestEnv(t)
		system, department := env.seedPrerequisites(t)

		// A soft-deleted course keeps its unique name and code slots while
		// staying invisible to the duplicate pre-check, like a concurrent
		// create committing after the pre-check ran.
		course := model.Course{
			Name:              "Bachelor of Science",
			Code:              "BSC",
			EducationSystemID: system.ID,
			ClassOrSemester:   "Semester 1",
		}
		require.NoError(t, env.db.Create(&course).Error)
		require.NoError(t, env.db.Delete(&course).Error)

		resp := env.request(t, http.MethodPost, "/api/v1/course", 1,
			[]model.RoleName{model.RoleAdmin}, fiber.Map{
				"name":                "Bachelor of Science",
				"code":                "BSC",
				"department_id":       department.ID,
				"education_system_id": system.ID,
				"class_or_semester":   "Semester 1",
			})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		var body response.Response
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.NotNil(t, body.Error)
		assert.Equal(t, "Course with this name or code already exists", body.Error.Message)
	})

	t.Run("unknown department is a 404", func(t *testing.T) {
		env := newCourseTestEnv(t)
		system := model.EducationSystem{Name: "State Board"}
		require.NoError(t, env.db.Create(&system).Error)

		resp := env.request(t, http.MethodPost, "/api/v1/course", 1,
			[]model.RoleName{model.RoleAdmin}, fiber.Map{
				"name":                "Bachelor of Science",
				"code":                "BSC",
				"department_id":       999,
				"education_system_id": system.ID,
				"class_or_semester":   "Semester 1",
			})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestListCourses(t *testing.T) {
	t.Run("search matches the education system name", func(t *testing.T) {
		env := newCourseTestEnv(t)

		stateBoard := model.EducationSystem{Name: "State Board"}
		require.NoError(t, env.db.Create(&stateBoard).Error)
		university := model.EducationSystem{Name: "University System"}
		require.NoError(t, env.db.Create(&university).Error)

		boardCourse := model.Course{
			Name: "Higher Secondary", Code: "HS",
			EducationSystemID: stateBoard.ID, ClassOrSemester: "Class 12",
		}
		require.NoError(t, env.db.Create(&boardCourse).Error)
		universityCourse := model.Course{
			Name: "Bachelor of Arts", Code: "BA",
			EducationSystemID: university.ID, ClassOrSemester: "Semester 1",
		}
		require.NoError(t, env.db.Create(&universityCourse).Error)

		resp := env.request(t, http.MethodGet, "/api/v1/course/?search=University", 1,
			[]model.RoleName{model.RoleAdmin}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data []model.Course `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "Bachelor of Arts", body.Data[0].Name)
	})
}
