package validator

import "encoding/json"

// BlogCreateRequest is the body of POST /blog/.
type BlogCreateRequest struct {
	Title        string  `json:"title" validate:"required"`
	Slug         string  `json:"slug" validate:"required"`
	Content      *string `json:"content"`
	ImageURL     *string `json:"image_url"`
	ImageAlt     *string `json:"image_alt"`
	ImageCaption *string `json:"image_caption"`
	AuthorID     *uint   `json:"author_id"`
}

// CourseCreateRequest is the body of POST /course/. Rating is kept raw so
// numeric strings are accepted the same way as on update.
type CourseCreateRequest struct {
	Title        string          `json:"title" validate:"required"`
	Description  *string         `json:"description"`
	Rating       json.RawMessage `json:"rating"`
	ThumbnailURL *string         `json:"thumbnail_url"`
	VideoURL     *string         `json:"video_url"`
	Content      *string         `json:"content"`
}

// QuizCreateRequest is the body of POST /quiz/.
type QuizCreateRequest struct {
	Title *string         `json:"title"`
	Data  json.RawMessage `json:"data"`
}

type EmployeeLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type VolunteerRegisterRequest struct {
	Email          string  `json:"email" validate:"required"`
	Password       string  `json:"password" validate:"required"`
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	InitialComment *string `json:"initial_comment"`
}

type VolunteerLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ApprovalDecisionRequest is the body of POST /volunteer/approve. Action is
// matched case-insensitively against "approve" and "reject".
type ApprovalDecisionRequest struct {
	VolunteerID uint    `json:"volunteer_id" validate:"required"`
	AdminID     uint    `json:"admin_id" validate:"required"`
	Action      string  `json:"action" validate:"required"`
	Comment     *string `json:"comment"`
}

// UpdatePayload is a partial-update body keyed by field name. Presence of a
// key, including with a null value, is what selects the field.
type UpdatePayload map[string]json.RawMessage
