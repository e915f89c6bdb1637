package services

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/models"
	"github.com/AvaneeshKarthiks/FinWise/internal/repositories"
	"github.com/AvaneeshKarthiks/FinWise/internal/validator"
)

type quizService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuizService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) QuizService {
	return &quizService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *quizService) Create(ctx context.Context, req *CreateQuizRequest) (*models.Quiz, error) {
	data, err := s.validator.GetBusinessValidator().ValidateQuizCreate(req)
	if err != nil {
		return nil, err
	}

	quiz := &models.Quiz{Title: req.Title, Data: data}
	if err := s.repo.Quiz().Create(ctx, nil, quiz); err != nil {
		return nil, mapRepoError("create quiz", err, nil, nil)
	}

	s.logger.Info("Quiz created", "quiz_id", quiz.ID)
	return quiz, nil
}

func (s *quizService) GetByID(ctx context.Context, id uint) (*QuizResponse, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapRepoError("get quiz", err, ErrQuizNotFound, nil)
	}
	return toQuizResponse(quiz), nil
}

func (s *quizService) List(ctx context.Context, page, size int) (*QuizListResponse, error) {
	filters, page, size := pageFilters(page, size)
	quizzes, total, err := s.repo.Quiz().List(ctx, nil, filters)
	if err != nil {
		return nil, mapRepoError("list quizzes", err, nil, nil)
	}

	items := make([]*QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		items = append(items, toQuizResponse(quiz))
	}
	return &QuizListResponse{Quizzes: items, Total: total, Page: page, Size: size}, nil
}

func (s *quizService) Update(ctx context.Context, id uint, req UpdateRequest) error {
	updates, err := validator.QuizUpdateFields.Apply(req)
	if err != nil {
		return err
	}
	if err := s.repo.Quiz().Update(ctx, nil, id, updates); err != nil {
		return mapRepoError("update quiz", err, ErrQuizNotFound, nil)
	}

	s.logger.Info("Quiz updated", "quiz_id", id, "fields", len(updates))
	return nil
}

func (s *quizService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Quiz().Delete(ctx, nil, id); err != nil {
		return mapRepoError("delete quiz", err, ErrQuizNotFound, nil)
	}

	s.logger.Info("Quiz deleted", "quiz_id", id)
	return nil
}

func toQuizResponse(quiz *models.Quiz) *QuizResponse {
	return &QuizResponse{
		ID:        quiz.ID,
		Title:     quiz.Title,
		Data:      quiz.DecodedData(),
		CreatedAt: quiz.CreatedAt,
	}
}
