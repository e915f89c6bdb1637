package models

type Blog struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Title        string  `json:"title" gorm:"not null;size:255"`
	Slug         string  `json:"slug" gorm:"uniqueIndex;not null;size:255"`
	Content      *string `json:"content" gorm:"type:text"`
	ImageURL     *string `json:"image_url" gorm:"size:1024"`
	ImageAlt     *string `json:"image_alt" gorm:"size:255"`
	ImageCaption *string `json:"image_caption" gorm:"size:512"`
	AuthorID     *uint   `json:"author_id" gorm:"index"`
}

func (Blog) TableName() string {
	return "blogs"
}
