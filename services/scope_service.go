package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/acadbridge/campus-api/model"
	"github.com/acadbridge/campus-api/utils/auth"
)

// Scope describes role-based visibility over departments and courses. List
// handlers apply it uniformly instead of branching on role themselves.
//
// Faculty and Student scopes annotate department rows rather than filter
// them: the caller receives the full list, each row preloaded with only
// their own link records. Only the student course view is a hard filter.
type Scope interface {
	Departments(q *gorm.DB) *gorm.DB
	Courses(q *gorm.DB) *gorm.DB
}

// ScopeService resolves the caller's identity into a Scope.
type ScopeService struct {
	db *gorm.DB
}

// NewScopeService creates a new scope service
func NewScopeService(db *gorm.DB) *ScopeService {
	return &ScopeService{db: db}
}

// Resolve picks the scope variant for the identity. Precedence when a caller
// holds several roles: Student, then Faculty, then Institution/Admin. A
// Faculty or Student caller without a profile row is a hard lookup error,
// never an unscoped or empty fallback.
func (s *ScopeService) Resolve(ctx context.Context, identity auth.Identity) (Scope, error) {
	if identity.HasRole(model.RoleStudent) {
		var student model.Student
		err := s.db.WithContext(ctx).Where("user_id = ?", identity.UserID).First(&student).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewNotFoundError("Student profile not found for caller")
			}
			return nil, err
		}

		var departmentIDs []uint
		err = s.db.WithContext(ctx).Model(&model.StudentDepartmentLink{}).
			Where("student_id = ?", student.ID).
			Pluck("department_id", &departmentIDs).Error
		if err != nil {
			return nil, err
		}

		return studentScope{student: student, departmentIDs: departmentIDs}, nil
	}

	if identity.HasRole(model.RoleFaculty) {
		var faculty model.Faculty
		err := s.db.WithContext(ctx).Where("user_id = ?", identity.UserID).First(&faculty).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewNotFoundError("Faculty profile not found for caller")
			}
			return nil, err
		}
		return facultyScope{facultyID: faculty.ID}, nil
	}

	// Admin sees everything; an Institution-role caller gets full access
	// within their institution.
	return unrestrictedScope{}, nil
}

type unrestrictedScope struct{}

func (unrestrictedScope) Departments(q *gorm.DB) *gorm.DB { return q }
func (unrestrictedScope) Courses(q *gorm.DB) *gorm.DB     { return q }

// facultyScope annotates rows with the caller's own links.
type facultyScope struct {
	facultyID uint
}

func (s facultyScope) Departments(q *gorm.DB) *gorm.DB {
	return q.Preload("FacultyLinks", "faculty_id = ?", s.facultyID)
}

func (s facultyScope) Courses(q *gorm.DB) *gorm.DB {
	return q.Preload("FacultyLinks", "faculty_id = ?", s.facultyID)
}

// studentScope annotates departments and hard-filters courses to the
// student's class/semester intersected with their department links.
type studentScope struct {
	student       model.Student
	departmentIDs []uint
}

func (s studentScope) Departments(q *gorm.DB) *gorm.DB {
	return q.Preload("StudentLinks", "student_id = ?", s.student.ID)
}

func (s studentScope) Courses(q *gorm.DB) *gorm.DB {
	// Columns are qualified so the list handler can join education_systems
	// for search without ambiguity.
	q = q.Where("courses.class_or_semester = ?", s.student.ClassOrSemester)
	if len(s.departmentIDs) == 0 {
		// No department links means no course is visible.
		return q.Where("1 = 0")
	}
	return q.
		Where("courses.id IN (SELECT course_id FROM course_department_links WHERE department_id IN ?)", s.departmentIDs).
		Preload("DepartmentLinks", "department_id IN ?", s.departmentIDs)
}
