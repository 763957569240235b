package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/niley1nov/LMS/internal/config"
	"github.com/niley1nov/LMS/internal/dto"
	"github.com/niley1nov/LMS/internal/models"
	"github.com/niley1nov/LMS/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CourseService owns course visibility and mutation rules and the uniqueness
// of (user, course) enrollment pairs. Uniqueness itself is enforced by the
// database constraints; this layer only translates the violations.
type CourseService struct {
	db      *gorm.DB
	courses *store.Store[models.Course]
	modules *store.Store[models.Module]
	units   *store.Store[models.Unit]
	users   *store.Store[models.User]
	admins  adminList
}

func NewCourseService(db *gorm.DB, cfg *config.Config) *CourseService {
	return &CourseService{
		db:      db,
		courses: store.New[models.Course](db),
		modules: store.New[models.Module](db),
		units:   store.New[models.Unit](db),
		users:   store.New[models.User](db),
		admins:  newAdminList(cfg.AdminEmails),
	}
}

// byOrder sorts preloaded modules/units by their position column.
func byOrder(tx *gorm.DB) *gorm.DB {
	return tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}})
}

// CreateCourse creates the course row and the creator's teacher enrollment in
// one transaction; both succeed or neither does.
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest, creator *models.User) (*models.Course, error) {
	course := models.Course{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		enrollment := models.Enrollment{
			UserID:   creator.ID,
			CourseID: course.ID,
			Role:     models.RoleTeacher,
		}
		return tx.Create(&enrollment).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	return s.getWithDetails(ctx, course.ID)
}

// GetCourseForUser fetches a course with ordered modules/units and all
// enrollments. Existence is checked before permission: a missing course is
// NotFound even for callers who could never see it.
func (s *CourseService) GetCourseForUser(ctx context.Context, courseID uuid.UUID, user *models.User) (*models.Course, error) {
	course, err := s.getWithDetails(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if s.admins.contains(user.Email) {
		return course, nil
	}
	for _, enrollment := range course.Enrollments {
		if enrollment.UserID == user.ID {
			return course, nil
		}
	}
	return nil, ErrForbidden
}

func (s *CourseService) getWithDetails(ctx context.Context, courseID uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := s.db.WithContext(ctx).
		Preload("Enrollments.User").
		Preload("Modules", byOrder).
		Preload("Modules.Units", byOrder).
		First(&course, "id = ?", courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch course: %w", err)
	}
	return &course, nil
}

// ListCoursesForUser returns the courses the user is enrolled in, ordered by
// name. Each entry carries only the caller's own role.
func (s *CourseService) ListCoursesForUser(ctx context.Context, user *models.User, offset, limit int) ([]dto.CourseForUser, error) {
	var enrollments []models.Enrollment
	err := s.db.WithContext(ctx).
		Joins("Course").
		Where("user_courses.user_id = ?", user.ID).
		Order("\"Course\".name").
		Offset(offset).
		Limit(limit).
		Find(&enrollments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	result := make([]dto.CourseForUser, 0, len(enrollments))
	for _, enrollment := range enrollments {
		if enrollment.Course == nil {
			continue
		}
		var moduleList []models.Module
		err := s.db.WithContext(ctx).
			Scopes(byOrder).
			Preload("Units", byOrder).
			Where("course_id = ?", enrollment.CourseID).
			Find(&moduleList).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load modules: %w", err)
		}
		result = append(result, dto.CourseForUser{
			ID:          enrollment.Course.ID,
			Name:        enrollment.Course.Name,
			Description: enrollment.Course.Description,
			Role:        enrollment.Role,
			Modules:     moduleList,
		})
	}
	return result, nil
}

// Enroll adds a user to a course. Both sides are checked for existence
// first; the duplicate-pair case is decided by the composite primary key, so
// concurrent attempts for the same pair race safely in the database and
// exactly one wins.
func (s *CourseService) Enroll(ctx context.Context, req *dto.EnrollRequest, actor *models.User) (*models.Enrollment, error) {
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.users.Get(ctx, req.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.courses.Get(ctx, req.CourseID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	enrollment := models.Enrollment{
		UserID:   req.UserID,
		CourseID: req.CourseID,
		Role:     req.Role,
	}
	if err := s.db.WithContext(ctx).Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to enroll user: %w", err)
	}
	return &enrollment, nil
}

// CreateModule adds a module to a course. The actor must teach the course;
// a duplicate position within the course surfaces as ErrOrderInUse, not a
// generic failure.
func (s *CourseService) CreateModule(ctx context.Context, courseID uuid.UUID, req *dto.CreateModuleRequest, actor *models.User) (*models.Module, error) {
	if err := s.requireCourseRole(ctx, courseID, actor, models.RoleTeacher); err != nil {
		return nil, err
	}

	module := models.Module{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.modules.Create(ctx, &module); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrOrderInUse
		}
		return nil, fmt.Errorf("failed to create module: %w", err)
	}
	return &module, nil
}

// ListModules returns the course's modules in position order. Any enrollment
// in the course grants access.
func (s *CourseService) ListModules(ctx context.Context, courseID uuid.UUID, actor *models.User) ([]models.Module, error) {
	if err := s.requireCourseRole(ctx, courseID, actor, ""); err != nil {
		return nil, err
	}

	var moduleList []models.Module
	err := s.db.WithContext(ctx).
		Preload("Units", byOrder).
		Where("course_id = ?", courseID).
		Scopes(byOrder).
		Find(&moduleList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	return moduleList, nil
}

// CreateUnit adds a unit to a module, with the same order-uniqueness contract
// as CreateModule scoped to the module.
func (s *CourseService) CreateUnit(ctx context.Context, moduleID uint, req *dto.CreateUnitRequest, actor *models.User) (*models.Unit, error) {
	module, err := s.modules.Get(ctx, moduleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, err
	}
	if err := s.requireCourseRole(ctx, module.CourseID, actor, models.RoleTeacher); err != nil {
		return nil, err
	}

	unit := models.Unit{
		ModuleID: moduleID,
		Title:    req.Title,
		Type:     req.Type,
		Content:  req.Content,
		Order:    req.Order,
	}
	if err := s.units.Create(ctx, &unit); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrOrderInUse
		}
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return &unit, nil
}

// ListUnits returns the module's units in position order.
func (s *CourseService) ListUnits(ctx context.Context, moduleID uint, actor *models.User) ([]models.Unit, error) {
	module, err := s.modules.Get(ctx, moduleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, err
	}
	if err := s.requireCourseRole(ctx, module.CourseID, actor, ""); err != nil {
		return nil, err
	}

	var unitList []models.Unit
	err = s.db.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Scopes(byOrder).
		Find(&unitList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	return unitList, nil
}

// requireCourseRole verifies the course exists, then that the actor holds an
// enrollment in it (with the given role when one is named) or the global
// elevated role. Existence beats permission: a missing course is NotFound.
func (s *CourseService) requireCourseRole(ctx context.Context, courseID uuid.UUID, actor *models.User, role models.CourseRole) error {
	if _, err := s.courses.Get(ctx, courseID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	if s.admins.contains(actor.Email) {
		return nil
	}

	var enrollment models.Enrollment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", actor.ID, courseID).
		First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return fmt.Errorf("failed to check enrollment: %w", err)
	}
	if role != "" && enrollment.Role != role {
		return ErrForbidden
	}
	return nil
}
