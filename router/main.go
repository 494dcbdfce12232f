package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acadbridge/campus-api/database"
	"github.com/acadbridge/campus-api/handlers"
	community_handlers "github.com/acadbridge/campus-api/handlers/community"
	course_handlers "github.com/acadbridge/campus-api/handlers/course"
	department_handlers "github.com/acadbridge/campus-api/handlers/department"
	educationsystem_handlers "github.com/acadbridge/campus-api/handlers/educationsystem"
	institution_handlers "github.com/acadbridge/campus-api/handlers/institution"
	link_handlers "github.com/acadbridge/campus-api/handlers/link"
	module_handlers "github.com/acadbridge/campus-api/handlers/module"
	role_handlers "github.com/acadbridge/campus-api/handlers/role"
	"github.com/acadbridge/campus-api/model"
	"github.com/acadbridge/campus-api/services"
	"github.com/acadbridge/campus-api/utils/auth"
	"github.com/acadbridge/campus-api/utils/cache"
	"github.com/acadbridge/campus-api/utils/middleware"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	// Get JWT secret from environment
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "campus-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Redis is optional. Without it the education system list just skips
	// the read-through cache.
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. List caching will be disabled.", err)
	}

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	// Initialize services
	grantService := services.NewGrantService(db)
	scopeService := services.NewScopeService(db)

	// Initialize handlers
	roleHandler := role_handlers.NewRoleHandler(db, grantService)
	educationSystemHandler := educationsystem_handlers.NewEducationSystemHandler(db, redisCache)
	institutionHandler := institution_handlers.NewInstitutionHandler(db)
	communityHandler := community_handlers.NewCommunityHandler(db)
	departmentHandler := department_handlers.NewDepartmentHandler(db, scopeService)
	courseHandler := course_handlers.NewCourseHandler(db, scopeService)
	moduleHandler := module_handlers.NewModuleHandler(db)
	linkHandler := link_handlers.NewLinkHandler(db)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth(store))

	// API v1 group, everything below requires a valid access token
	api := app.Group("/api/v1", authMiddleware.Required())

	// Role grant routes
	roles := api.Group("/role")
	roles.Post("/institution",
		authMiddleware.RequireRoles(model.RoleAdmin),
		middleware.AuditLog(db, "grant_role", "institution"),
		roleHandler.GiveInstitutionRole)
	roles.Post("/community",
		authMiddleware.RequireRoles(model.RoleAdmin),
		middleware.AuditLog(db, "grant_role", "community"),
		roleHandler.GiveCommunityRole)
	roles.Post("/faculty",
		authMiddleware.RequireRoles(model.RoleInstitution),
		middleware.AuditLog(db, "grant_role", "faculty"),
		roleHandler.GiveFacultyRole)
	roles.Post("/student",
		authMiddleware.RequireRoles(model.RoleInstitution),
		middleware.AuditLog(db, "grant_role", "student"),
		roleHandler.GiveStudentRole)
	roles.Post("/community-member",
		authMiddleware.RequireRoles(model.RoleCommunity),
		middleware.AuditLog(db, "grant_role", "community_member"),
		roleHandler.GiveCommunityMemberRole)

	// Education system routes
	educationSystems := api.Group("/education-system")
	educationSystems.Post("/",
		authMiddleware.RequireRoles(model.RoleAdmin),
		middleware.AuditLog(db, "create", "education_system"),
		educationSystemHandler.CreateEducationSystem)
	educationSystems.Get("/", authMiddleware.RequireRoles(model.RoleAdmin), educationSystemHandler.ListEducationSystems)

	// Institution routes
	institutions := api.Group("/institution")
	institutions.Post("/",
		authMiddleware.RequireRoles(model.RoleAdmin),
		middleware.AuditLog(db, "create", "institution"),
		institutionHandler.CreateInstitution)
	institutions.Get("/", authMiddleware.RequireRoles(model.RoleAdmin), institutionHandler.ListInstitutions)

	// Community routes
	communities := api.Group("/community")
	communities.Post("/",
		authMiddleware.RequireRoles(model.RoleAdmin),
		middleware.AuditLog(db, "create", "community"),
		communityHandler.CreateCommunity)
	communities.Get("/", authMiddleware.RequireRoles(model.RoleAdmin), communityHandler.ListCommunities)

	// Department routes, listing is role scoped
	departments := api.Group("/department")
	departments.Post("/",
		authMiddleware.RequireRoles(model.RoleAdmin),
		middleware.AuditLog(db, "create", "department"),
		departmentHandler.CreateDepartment)
	departments.Get("/",
		authMiddleware.RequireRoles(model.RoleAdmin, model.RoleInstitution, model.RoleFaculty, model.RoleStudent),
		departmentHandler.ListDepartments)

	// Course routes, listing is role scoped
	courses := api.Group("/course")
	courses.Post("/",
		authMiddleware.RequireRoles(model.RoleAdmin),
		middleware.AuditLog(db, "create", "course"),
		courseHandler.CreateCourse)
	courses.Get("/",
		authMiddleware.RequireRoles(model.RoleAdmin, model.RoleInstitution, model.RoleFaculty, model.RoleStudent),
		courseHandler.ListCourses)

	// Module routes
	modules := api.Group("/module")
	modules.Post("/",
		authMiddleware.RequireRoles(model.RoleAdmin),
		middleware.AuditLog(db, "create", "module"),
		moduleHandler.CreateModule)
	modules.Get("/",
		authMiddleware.RequireRoles(model.RoleAdmin, model.RoleInstitution, model.RoleFaculty, model.RoleStudent),
		moduleHandler.ListModules)

	// Institution link routes
	links := api.Group("/link", authMiddleware.RequireRoles(model.RoleInstitution))
	links.Post("/institution-department",
		middleware.AuditLog(db, "link", "institution_department"),
		linkHandler.LinkInstitutionDepartment)
	links.Post("/institution-course",
		middleware.AuditLog(db, "link", "institution_course"),
		linkHandler.LinkInstitutionCourse)
}
