package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quillapi/quill/models"
	"github.com/quillapi/quill/utils"
)

// StatsController exposes aggregate platform statistics.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate statistics for the platform.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var publishedCount int64
	var totalReads int64
	var viewsToday int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		// Fallback to 0 instead of failing the whole endpoint
		userCount = 0
	}

	if err := s.db.Model(&models.Blog{}).
		Where("state = ?", models.StatePublished).
		Count(&publishedCount).Error; err != nil {
		publishedCount = 0
	}

	if err := s.db.Model(&models.Blog{}).
		Select("COALESCE(SUM(read_count),0)").
		Scan(&totalReads).Error; err != nil {
		totalReads = 0
	}

	// Use string date equality to avoid timezone/type mismatches with DATE column
	today := time.Now().In(time.Local).Format("2006-01-02")
	if err := s.db.Model(&models.PageView{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(count),0)").
		Scan(&viewsToday).Error; err != nil {
		viewsToday = 0
	}

	utils.Success(ctx, "", gin.H{
		"user_count":      userCount,
		"published_count": publishedCount,
		"total_reads":     totalReads,
		"views_today":     viewsToday,
	})
}
