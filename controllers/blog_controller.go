package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quillapi/quill/middleware"
	"github.com/quillapi/quill/models"
	"github.com/quillapi/quill/utils"
)

const blogListCachePrefix = "cache:blogs:list:"

// BlogController manages CRUD operations for blogs.
type BlogController struct {
	db *gorm.DB
}

// NewBlogController creates a new BlogController instance.
func NewBlogController(db *gorm.DB) *BlogController {
	return &BlogController{db: db}
}

// CreateBlog allows authenticated users to create new blogs in draft state.
func (b *BlogController) CreateBlog(ctx *gin.Context) {
	var req struct {
		Title       string   `json:"title" binding:"required,min=1"`
		Description string   `json:"description"`
		Body        string   `json:"body" binding:"required"`
		Tags        []string `json:"tags"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, "title cannot be empty")
		return
	}
	body := utils.Sanitize(req.Body)
	if strings.TrimSpace(body) == "" {
		utils.Error(ctx, http.StatusBadRequest, "body cannot be empty")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	blog := models.Blog{
		AuthorID:    userID,
		Title:       title,
		Description: utils.Sanitize(strings.TrimSpace(req.Description)),
		Body:        body,
		State:       models.StateDraft,
		ReadingTime: models.ReadingTime(body),
		Tags:        utils.NormalizeTags(req.Tags),
	}

	if err := b.db.Create(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusBadRequest, "Blog title already exists")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to create blog")
		return
	}

	utils.InvalidateByPrefix(blogListCachePrefix)

	// Resolve the author for the response; creation already succeeded
	_ = b.db.Preload("Author").First(&blog, blog.ID).Error

	utils.Created(ctx, "Blog created successfully", gin.H{"blog": blog})
}

// ListBlogs returns a filtered, sorted, paginated view of published blogs
// including author information. Public, read-only.
func (b *BlogController) ListBlogs(ctx *gin.Context) {
	page, limit := parsePagination(ctx.Query("page"), ctx.Query("limit"))
	search := strings.TrimSpace(ctx.Query("search"))
	author := strings.TrimSpace(ctx.Query("author"))
	orderBy := orderClause(ctx.Query("order_by"))

	// Cache listings only when no search term to avoid cache key explosion
	cacheKey := fmt.Sprintf("%sauthor=%s:order=%s:page=%d:limit=%d", blogListCachePrefix, author, orderBy, page, limit)
	if search == "" {
		if cached, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	query := b.db.Preload("Author").Where("state = ?", models.StatePublished).Order(orderBy)
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(tags) LIKE ?", pattern, pattern)
	}
	if author != "" {
		query = query.Where("author_id = ?", author)
	}

	var blogs []models.Blog
	var total int64
	if err := query.Model(&models.Blog{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to count blogs")
		return
	}
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&blogs).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to list blogs")
		return
	}

	payload := gin.H{
		"blogs":      blogs,
		"pagination": paginationMeta(total, page, limit),
	}
	if search == "" {
		utils.CacheSetJSON(cacheKey, utils.JSONResponse{Success: true, Data: payload}, 0)
	}
	utils.Success(ctx, "", payload)
}

// GetBlog returns a single published blog and counts the read. The
// increment is a single UPDATE guarded by state=published, so concurrent
// reads never lose counts and drafts stay invisible to the public.
func (b *BlogController) GetBlog(ctx *gin.Context) {
	blogID := ctx.Param("id")

	res := b.db.Model(&models.Blog{}).
		Where("id = ? AND state = ?", blogID, models.StatePublished).
		UpdateColumn("read_count", gorm.Expr("read_count + 1"))
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to load blog")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, "Blog not found")
		return
	}

	var blog models.Blog
	if err := b.db.Preload("Author").First(&blog, blogID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to load blog")
		return
	}

	utils.Success(ctx, "", gin.H{"blog": blog})
}

// ListMyBlogs returns blogs created by the authenticated user, any state.
func (b *BlogController) ListMyBlogs(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}
	page, limit := parsePagination(ctx.Query("page"), ctx.Query("limit"))
	state := strings.TrimSpace(ctx.Query("state"))

	query := b.db.Where("author_id = ?", userID).Order("created_at DESC")
	if state != "" {
		query = query.Where("state = ?", state)
	}

	var blogs []models.Blog
	var total int64
	if err := query.Model(&models.Blog{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to count blogs")
		return
	}
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&blogs).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to list blogs")
		return
	}

	utils.Success(ctx, "", gin.H{
		"blogs":      blogs,
		"pagination": paginationMeta(total, page, limit),
	})
}

// UpdateBlog applies a partial update to a blog owned by the requester.
// Missing and unknown posts look identical to non-owners.
func (b *BlogController) UpdateBlog(ctx *gin.Context) {
	var req struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Body        *string   `json:"body"`
		Tags        *[]string `json:"tags"`
		State       *string   `json:"state"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	// Single (id, author) predicate: existence is never revealed to non-owners
	var blog models.Blog
	blogID := ctx.Param("id")
	if err := b.db.Where("id = ? AND author_id = ?", blogID, userID).First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Blog not found or unauthorized")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to load blog")
		return
	}

	if req.Title != nil {
		title := utils.Sanitize(strings.TrimSpace(*req.Title))
		if title == "" {
			utils.Error(ctx, http.StatusBadRequest, "title cannot be empty")
			return
		}
		blog.Title = title
	}
	if req.Description != nil {
		blog.Description = utils.Sanitize(strings.TrimSpace(*req.Description))
	}
	if req.Tags != nil {
		blog.Tags = utils.NormalizeTags(*req.Tags)
	}
	if req.State != nil {
		if !models.ValidState(*req.State) {
			utils.Error(ctx, http.StatusBadRequest, "state must be draft or published")
			return
		}
		blog.State = *req.State
	}
	if req.Body != nil {
		body := utils.Sanitize(*req.Body)
		if strings.TrimSpace(body) == "" {
			utils.Error(ctx, http.StatusBadRequest, "body cannot be empty")
			return
		}
		if body != blog.Body {
			blog.Body = body
			blog.ReadingTime = models.ReadingTime(body)
		}
	}

	if err := b.db.Save(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusBadRequest, "Blog title already exists")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to update blog")
		return
	}

	utils.InvalidateByPrefix(blogListCachePrefix)

	utils.Success(ctx, "Blog updated successfully", gin.H{"blog": blog})
}

// DeleteBlog deletes a blog owned by the requester.
func (b *BlogController) DeleteBlog(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	res := b.db.Where("id = ? AND author_id = ?", ctx.Param("id"), userID).Delete(&models.Blog{})
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to delete blog")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, "Blog not found or unauthorized")
		return
	}

	utils.InvalidateByPrefix(blogListCachePrefix)

	utils.Success(ctx, "Blog deleted successfully", nil)
}

// orderClause maps the order_by query value onto a whitelisted ORDER BY
// clause, descending only. Unknown values fall back to newest first.
func orderClause(orderBy string) string {
	switch orderBy {
	case "read_count":
		return "read_count DESC"
	case "reading_time":
		return "reading_time DESC"
	default:
		return "created_at DESC"
	}
}

func paginationMeta(total int64, page, limit int) gin.H {
	return gin.H{
		"total": total,
		"page":  page,
		"pages": int((total + int64(limit) - 1) / int64(limit)),
		"limit": limit,
	}
}

func parsePagination(pageStr, limitStr string) (int, int) {
	page := 1
	limit := 20
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	return page, limit
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}
