package services

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/models"
	"github.com/AvaneeshKarthiks/FinWise/internal/repositories"
	"github.com/AvaneeshKarthiks/FinWise/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCourseService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) CourseService {
	return &courseService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *courseService) Create(ctx context.Context, req *CreateCourseRequest) (*models.Course, error) {
	rating, err := s.validator.GetBusinessValidator().ValidateCourseCreate(req)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:        req.Title,
		Description:  req.Description,
		Rating:       rating,
		ThumbnailURL: req.ThumbnailURL,
		VideoURL:     req.VideoURL,
		Content:      req.Content,
	}
	if err := s.repo.Course().Create(ctx, nil, course); err != nil {
		return nil, mapRepoError("create course", err, nil, nil)
	}

	s.logger.Info("Course created", "course_id", course.ID)
	return course, nil
}

func (s *courseService) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapRepoError("get course", err, ErrCourseNotFound, nil)
	}
	return course, nil
}

func (s *courseService) List(ctx context.Context, page, size int) (*CourseListResponse, error) {
	filters, page, size := pageFilters(page, size)
	courses, total, err := s.repo.Course().List(ctx, nil, filters)
	if err != nil {
		return nil, mapRepoError("list courses", err, nil, nil)
	}
	if courses == nil {
		courses = []*models.Course{}
	}
	return &CourseListResponse{Courses: courses, Total: total, Page: page, Size: size}, nil
}

// Update validates every field before touching the row, so an out of
// range rating leaves the course unchanged.
func (s *courseService) Update(ctx context.Context, id uint, req UpdateRequest) error {
	updates, err := validator.CourseUpdateFields.Apply(req)
	if err != nil {
		return err
	}
	if err := s.repo.Course().Update(ctx, nil, id, updates); err != nil {
		return mapRepoError("update course", err, ErrCourseNotFound, nil)
	}

	s.logger.Info("Course updated", "course_id", id, "fields", len(updates))
	return nil
}

func (s *courseService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Course().Delete(ctx, nil, id); err != nil {
		return mapRepoError("delete course", err, ErrCourseNotFound, nil)
	}

	s.logger.Info("Course deleted", "course_id", id)
	return nil
}
