package services

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/models"
	"github.com/AvaneeshKarthiks/FinWise/internal/repositories"
	"github.com/AvaneeshKarthiks/FinWise/internal/validator"
)

type blogService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewBlogService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) BlogService {
	return &blogService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *blogService) Create(ctx context.Context, req *CreateBlogRequest) (*models.Blog, error) {
	if err := s.validator.GetBusinessValidator().ValidateBlogCreate(req); err != nil {
		return nil, err
	}

	blog := &models.Blog{
		Title:        req.Title,
		Slug:         req.Slug,
		Content:      req.Content,
		ImageURL:     req.ImageURL,
		ImageAlt:     req.ImageAlt,
		ImageCaption: req.ImageCaption,
		AuthorID:     req.AuthorID,
	}
	if err := s.repo.Blog().Create(ctx, nil, blog); err != nil {
		return nil, mapRepoError("create blog", err, nil, ErrSlugTaken)
	}

	s.logger.Info("Blog created", "blog_id", blog.ID, "slug", blog.Slug)
	return blog, nil
}

func (s *blogService) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	blog, err := s.repo.Blog().GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapRepoError("get blog", err, ErrBlogNotFound, nil)
	}
	return blog, nil
}

func (s *blogService) List(ctx context.Context, page, size int) (*BlogListResponse, error) {
	filters, page, size := pageFilters(page, size)
	blogs, total, err := s.repo.Blog().List(ctx, nil, filters)
	if err != nil {
		return nil, mapRepoError("list blogs", err, nil, nil)
	}
	if blogs == nil {
		blogs = []*models.Blog{}
	}
	return &BlogListResponse{Blogs: blogs, Total: total, Page: page, Size: size}, nil
}

func (s *blogService) Update(ctx context.Context, id uint, req UpdateRequest) error {
	updates, err := validator.BlogUpdateFields.Apply(req)
	if err != nil {
		return err
	}
	if err := s.repo.Blog().Update(ctx, nil, id, updates); err != nil {
		return mapRepoError("update blog", err, ErrBlogNotFound, ErrSlugTaken)
	}

	s.logger.Info("Blog updated", "blog_id", id, "fields", len(updates))
	return nil
}

func (s *blogService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Blog().Delete(ctx, nil, id); err != nil {
		return mapRepoError("delete blog", err, ErrBlogNotFound, nil)
	}

	s.logger.Info("Blog deleted", "blog_id", id)
	return nil
}
