package models

import (
	"math"
	"strings"
	"time"
)

// Blog lifecycle states. A blog starts as a draft and becomes publicly
// visible only once its owner publishes it.
const (
	StateDraft     = "draft"
	StatePublished = "published"
)

// wordsPerMinute is the reading speed used to derive reading_time.
const wordsPerMinute = 200

// TagList is a set of free-form tags stored as a JSON array column.
type TagList []string

// Blog represents a blog post created by a user.
type Blog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `gorm:"index;not null" json:"author_id"`
	Title       string    `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Description string    `gorm:"size:1024" json:"description"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	State       string    `gorm:"size:16;not null;default:'draft';index" json:"state"`
	ReadCount   int64     `gorm:"not null;default:0" json:"read_count"`
	ReadingTime int       `gorm:"not null;default:0" json:"reading_time"`
	Tags        TagList   `gorm:"type:text;serializer:json" json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Author      User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
}

// ValidState reports whether s is a known blog lifecycle state.
func ValidState(s string) bool {
	return s == StateDraft || s == StatePublished
}

// ReadingTime estimates reading time in whole minutes for a blog body,
// rounding up at 200 words per minute. Called explicitly on create and
// whenever the body changes; there is no persistence hook behind it.
func ReadingTime(body string) int {
	words := len(strings.Fields(body))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / float64(wordsPerMinute)))
}
