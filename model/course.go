package model

import (
	"math"
	"time"
)

// Course represents a single course listed in the catalog
type Course struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
	Title      string    `gorm:"type:text;not null" json:"title" validate:"required"`
	Subtitle   *string   `gorm:"type:text" json:"subtitle"`
	Author     string    `gorm:"type:varchar(100);not null" json:"author" validate:"required,max=100"`
	Category   string    `gorm:"type:varchar(50);not null;index:idx_category" json:"category" validate:"required,max=50"`
	Rating     float64   `gorm:"type:numeric(6,2);not null;default:0.0" json:"rating"`
	ThumbURL   string    `gorm:"column:thumb_url;type:text;not null" json:"thumbUrl" validate:"required,url"`
	Price      float64   `gorm:"type:numeric(6,2);not null" json:"price" validate:"required,min=1,lte=9999.99"`
	IsFeatured bool      `gorm:"column:is_featured;not null;default:false" json:"isFeatured"`
}

// TableName pins the table name regardless of naming strategy
func (Course) TableName() string {
	return "courses"
}

// Equal reports whether both values denote the same persisted course.
// Unsaved courses (ID 0) are only equal to themselves.
func (c *Course) Equal(other *Course) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	return c.ID != 0 && c.ID == other.ID
}

// IsNew reports whether the course has not been assigned an ID yet
func (c *Course) IsNew() bool {
	return c.ID == 0
}

// RoundDecimals rounds rating and price to the column scale (2 fractional digits)
func (c *Course) RoundDecimals() {
	c.Rating = roundScale2(c.Rating)
	c.Price = roundScale2(c.Price)
}

func roundScale2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CategoryDTO is the projection returned by the distinct categories listing
type CategoryDTO struct {
	Category string `json:"category"`
}

// CourseSlice is a bounded window of courses plus a flag telling whether
// more results exist past it. There is no total count.
type CourseSlice struct {
	Content []Course `json:"content"`
	Page    int      `json:"page"`
	Size    int      `json:"size"`
	HasNext bool     `json:"hasNext"`
}

// CatalogStats summarizes the catalog for periodic reporting
type CatalogStats struct {
	TotalCourses    int64
	FeaturedCourses int64
	Categories      int64
}
