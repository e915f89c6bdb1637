package models

const (
	MinCourseRating = 0.0
	MaxCourseRating = 5.0
)

type Course struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Title        string   `json:"title" gorm:"not null;size:255"`
	Description  *string  `json:"description" gorm:"type:text"`
	Rating       *float64 `json:"rating"`
	ThumbnailURL *string  `json:"thumbnail_url" gorm:"size:1024"`
	VideoURL     *string  `json:"video_url" gorm:"size:1024"`
	Content      *string  `json:"content" gorm:"type:text"`
}

func (Course) TableName() string {
	return "courses"
}

// RatingInRange reports whether r lies in the inclusive course rating range.
func RatingInRange(r float64) bool {
	return r >= MinCourseRating && r <= MaxCourseRating
}
