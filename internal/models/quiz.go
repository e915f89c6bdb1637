package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Quiz keeps its question data as serialized JSON text. The content is
// owned by the client and never inspected beyond being valid JSON.
type Quiz struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Title     *string        `json:"title" gorm:"size:255"`
	Data      datatypes.JSON `json:"-" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// DecodedData returns the stored data as a JSON-encodable value: the parsed
// document when it is valid JSON, the raw text when it is not, and nil when
// nothing is stored.
func (q *Quiz) DecodedData() interface{} {
	if len(q.Data) == 0 {
		return nil
	}
	if json.Valid(q.Data) {
		return json.RawMessage(q.Data)
	}
	return string(q.Data)
}
