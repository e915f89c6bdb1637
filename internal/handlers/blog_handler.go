package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AvaneeshKarthiks/FinWise/internal/services"
	"github.com/AvaneeshKarthiks/FinWise/internal/utils"
)

type BlogHandler struct {
	BaseHandler
	blogService services.BlogService
}

func NewBlogHandler(blogService services.BlogService, logger utils.Logger) *BlogHandler {
	return &BlogHandler{
		BaseHandler: NewBaseHandler(logger),
		blogService: blogService,
	}
}

// CreateBlog creates a blog post
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req services.CreateBlogRequest
	if !h.bindJSON(c, &req) {
		return
	}

	blog, err := h.blogService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "blog created", "blog_id": blog.ID})
}

// GetBlog retrieves a blog post by ID
func (h *BlogHandler) GetBlog(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	blog, err := h.blogService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, blog)
}

// ListBlogs lists blog posts, newest first
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 10)

	resp, err := h.blogService.List(c.Request.Context(), page, size)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateBlog applies a partial update; serves both PUT and PATCH
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Updating blog", "blog_id", id, "fields", len(req))

	if err := h.blogService.Update(c.Request.Context(), id, req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "blog updated", "blog_id": id})
}

// DeleteBlog deletes a blog post
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.blogService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "blog deleted", "blog_id": id})
}
