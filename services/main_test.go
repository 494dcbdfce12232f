package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/acadbridge/campus-api/database"
	"github.com/acadbridge/campus-api/model"
)

// openTestDB opens an isolated in-memory database with the full schema and
// the role catalog seeded. Connections are capped at one so every query sees
// the same memory database.
func openTestDB(t *testing.T) *gorm.DB {
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

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) model.User {
	t.Helper()

	user := model.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestEducationSystem(t *testing.T, db *gorm.DB, name string) model.EducationSystem {
	t.Helper()

	system := model.EducationSystem{Name: name}
	require.NoError(t, db.Create(&system).Error)
	return system
}

func createTestInstitution(t *testing.T, db *gorm.DB, name string, systemID uint) model.Institution {
	t.Helper()

	institution := model.Institution{
		Name:              name,
		Place:             "Test City",
		Type:              model.InstitutionTypeCollege,
		EducationSystemID: systemID,
	}
	require.NoError(t, db.Create(&institution).Error)
	return institution
}

func createTestCommunity(t *testing.T, db *gorm.DB, name string) model.Community {
	t.Helper()

	community := model.Community{
		Name:          name,
		Level:         "District",
		CommunityType: "Science",
	}
	require.NoError(t, db.Create(&community).Error)
	return community
}

func createTestDepartments(t *testing.T, db *gorm.DB, count int) []model.Department {
	t.Helper()

	departments := make([]model.Department, 0, count)
	for i := 0; i < count; i++ {
		department := model.Department{Name: fmt.Sprintf("Department %d", i+1)}
		require.NoError(t, db.Create(&department).Error)
		departments = append(departments, department)
	}
	return departments
}
