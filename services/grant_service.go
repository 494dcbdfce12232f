package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/acadbridge/campus-api/database"
	"github.com/acadbridge/campus-api/model"
)

// GrantService attaches roles to users together with the scoping link and, for
// faculty/student grants, the profile row and department links. Every grant is
// a single transaction: either all rows commit or none do, so a role can never
// exist without its profile.
type GrantService struct {
	db *gorm.DB
}

// NewGrantService creates a new grant service
func NewGrantService(db *gorm.DB) *GrantService {
	return &GrantService{db: db}
}

// FacultyMembership is one faculty grant target.
type FacultyMembership struct {
	UserID        uint   `json:"user_id" validate:"required"`
	MemberID      string `json:"member_id" validate:"required,max=100"`
	DepartmentIDs []uint `json:"department_ids" validate:"required,min=1"`
}

// StudentMembership is one student grant target.
type StudentMembership struct {
	UserID          uint   `json:"user_id" validate:"required"`
	MemberID        string `json:"member_id" validate:"required,max=100"`
	DepartmentIDs   []uint `json:"department_ids" validate:"required,min=1"`
	ClassOrSemester string `json:"class_or_semester" validate:"required,max=50"`
}

// GrantInstitutionRole makes the target user the single admin of the
// institution. The admin slot is 1:1, so exactly one target is accepted. The
// pre-check gives a descriptive conflict; the partial unique index on
// user_institution_links closes the race two concurrent grants leave open.
func (s *GrantService) GrantInstitutionRole(ctx context.Context, userIDs []uint, institutionID uint) error {
	if len(userIDs) != 1 {
		return NewValidationError("Only one user can be given institution role")
	}
	userID := userIDs[0]

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			return translateFirstErr(err, "User not found")
		}

		var institution model.Institution
		if err := tx.First(&institution, institutionID).Error; err != nil {
			return translateFirstErr(err, "Institution not found")
		}

		var count int64
		if err := tx.Model(&model.UserInstitutionLink{}).
			Where("institution_id = ? AND role = ?", institutionID, model.RoleInstitution).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return NewConflictError("Institution already has an admin")
		}

		if err := s.attachRole(tx, &user, model.RoleInstitution); err != nil {
			return err
		}

		link := model.UserInstitutionLink{
			UserID:        user.ID,
			InstitutionID: institution.ID,
			Role:          model.RoleInstitution,
		}
		if err := tx.Create(&link).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return NewConflictError("Institution already has an admin")
			}
			return err
		}
		return nil
	})
}

// GrantCommunityRole makes the target user the single admin of the community.
func (s *GrantService) GrantCommunityRole(ctx context.Context, userIDs []uint, communityID uint) error {
	if len(userIDs) != 1 {
		return NewValidationError("Only one user can be given community role")
	}
	userID := userIDs[0]

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			return translateFirstErr(err, "User not found")
		}

		var community model.Community
		if err := tx.First(&community, communityID).Error; err != nil {
			return translateFirstErr(err, "Community not found")
		}

		var count int64
		if err := tx.Model(&model.UserCommunityLink{}).
			Where("community_id = ? AND role = ?", communityID, model.RoleCommunity).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return NewConflictError("Community already has an admin")
		}

		if err := s.attachRole(tx, &user, model.RoleCommunity); err != nil {
			return err
		}

		link := model.UserCommunityLink{
			UserID:      user.ID,
			CommunityID: community.ID,
			Role:        model.RoleCommunity,
		}
		if err := tx.Create(&link).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return NewConflictError("Community already has an admin")
			}
			return err
		}
		return nil
	})
}

// GrantFacultyRole grants the Faculty role to every membership target, scoped
// to the institution the caller administers. One transaction covers the whole
// batch.
func (s *GrantService) GrantFacultyRole(ctx context.Context, caller uint, memberships []FacultyMembership) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		callerLink, err := s.callerInstitution(tx, caller)
		if err != nil {
			return err
		}

		for _, m := range memberships {
			var user model.User
			if err := tx.First(&user, m.UserID).Error; err != nil {
				return translateFirstErr(err, fmt.Sprintf("User %d not found", m.UserID))
			}

			departments, err := s.lookupDepartments(tx, m.DepartmentIDs)
			if err != nil {
				return err
			}

			if err := s.attachRole(tx, &user, model.RoleFaculty); err != nil {
				return err
			}

			link := model.UserInstitutionLink{
				UserID:        user.ID,
				InstitutionID: callerLink.InstitutionID,
				Role:          model.RoleFaculty,
			}
			if err := tx.Create(&link).Error; err != nil {
				if database.IsUniqueViolation(err) {
					return NewConflictError("User %d already holds the faculty role in this institution", user.ID)
				}
				return err
			}

			faculty := model.Faculty{
				UserID:   user.ID,
				MemberID: m.MemberID,
			}
			if err := tx.Create(&faculty).Error; err != nil {
				if database.IsUniqueViolation(err) {
					return NewConflictError("User %d already has a faculty profile", user.ID)
				}
				return err
			}

			for _, department := range departments {
				deptLink := model.FacultyDepartmentLink{
					FacultyID:    faculty.ID,
					DepartmentID: department.ID,
				}
				if err := tx.Create(&deptLink).Error; err != nil {
					if database.IsUniqueViolation(err) {
						return NewConflictError("Faculty already linked to department %d", department.ID)
					}
					return err
				}
			}
		}
		return nil
	})
}

// GrantStudentRole grants the Student role to every membership target, scoped
// to the institution the caller administers. One transaction covers the whole
// batch.
func (s *GrantService) GrantStudentRole(ctx context.Context, caller uint, memberships []StudentMembership) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		callerLink, err := s.callerInstitution(tx, caller)
		if err != nil {
			return err
		}

		for _, m := range memberships {
			var user model.User
			if err := tx.First(&user, m.UserID).Error; err != nil {
				return translateFirstErr(err, fmt.Sprintf("User %d not found", m.UserID))
			}

			departments, err := s.lookupDepartments(tx, m.DepartmentIDs)
			if err != nil {
				return err
			}

			if err := s.attachRole(tx, &user, model.RoleStudent); err != nil {
				return err
			}

			link := model.UserInstitutionLink{
				UserID:        user.ID,
				InstitutionID: callerLink.InstitutionID,
				Role:          model.RoleStudent,
			}
			if err := tx.Create(&link).Error; err != nil {
				if database.IsUniqueViolation(err) {
					return NewConflictError("User %d already holds the student role in this institution", user.ID)
				}
				return err
			}

			student := model.Student{
				UserID:          user.ID,
				RollNumber:      m.MemberID,
				ClassOrSemester: m.ClassOrSemester,
			}
			if err := tx.Create(&student).Error; err != nil {
				if database.IsUniqueViolation(err) {
					return NewConflictError("User %d already has a student profile", user.ID)
				}
				return err
			}

			for _, department := range departments {
				deptLink := model.StudentDepartmentLink{
					StudentID:    student.ID,
					DepartmentID: department.ID,
				}
				if err := tx.Create(&deptLink).Error; err != nil {
					if database.IsUniqueViolation(err) {
						return NewConflictError("Student already linked to department %d", department.ID)
					}
					return err
				}
			}
		}
		return nil
	})
}

// GrantCommunityMemberRole attaches the CommunityMember role to every target,
// scoped to the community the caller administers.
func (s *GrantService) GrantCommunityMemberRole(ctx context.Context, caller uint, userIDs []uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var callerLink model.UserCommunityLink
		err := tx.Where("user_id = ? AND role = ?", caller, model.RoleCommunity).
			First(&callerLink).Error
		if err != nil {
			return translateFirstErr(err, "Caller is not linked to a community")
		}

		for _, userID := range userIDs {
			var user model.User
			if err := tx.First(&user, userID).Error; err != nil {
				return translateFirstErr(err, fmt.Sprintf("User %d not found", userID))
			}

			if err := s.attachRole(tx, &user, model.RoleCommunityMember); err != nil {
				return err
			}

			link := model.UserCommunityLink{
				UserID:      user.ID,
				CommunityID: callerLink.CommunityID,
				Role:        model.RoleCommunityMember,
			}
			if err := tx.Create(&link).Error; err != nil {
				if database.IsUniqueViolation(err) {
					return NewConflictError("User %d is already a member of this community", user.ID)
				}
				return err
			}
		}
		return nil
	})
}

// callerInstitution resolves the institution the caller administers from
// their own scoping link.
func (s *GrantService) callerInstitution(tx *gorm.DB, caller uint) (*model.UserInstitutionLink, error) {
	var link model.UserInstitutionLink
	err := tx.Where("user_id = ? AND role = ?", caller, model.RoleInstitution).
		First(&link).Error
	if err != nil {
		return nil, translateFirstErr(err, "Caller is not linked to an institution")
	}
	return &link, nil
}

// lookupDepartments loads all departments and fails if any id is unknown, so
// a partially wrong batch aborts the transaction instead of linking a subset.
func (s *GrantService) lookupDepartments(tx *gorm.DB, ids []uint) ([]model.Department, error) {
	var departments []model.Department
	if err := tx.Where("id IN ?", ids).Find(&departments).Error; err != nil {
		return nil, err
	}
	if len(departments) != len(ids) {
		return nil, NewNotFoundError("One or more departments not found")
	}
	return departments, nil
}

func (s *GrantService) attachRole(tx *gorm.DB, user *model.User, name model.RoleName) error {
	var role model.Role
	if err := tx.Where("name = ?", name).First(&role).Error; err != nil {
		return fmt.Errorf("role %s is not seeded: %w", name, err)
	}
	return tx.Model(user).Association("Roles").Append(&role)
}

func translateFirstErr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError("%s", msg)
	}
	return err
}
