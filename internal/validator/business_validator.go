package validator

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"

	"github.com/AvaneeshKarthiks/FinWise/internal/models"
)

// Request-level messages returned to clients verbatim.
const (
	MsgBlogRequired        = "title and slug are required"
	MsgTitleRequired       = "title is required"
	MsgRatingNotNumber     = "rating must be a number between 0 and 5"
	MsgRatingOutOfRange    = "rating must be between 0 and 5"
	MsgQuizDataInvalidJSON = "data must be valid JSON"
	MsgQuizDataKind        = "data must be an object, array or JSON string"
	MsgNoUpdatableFields   = "no updatable fields provided"
	MsgEmployeeCredentials = "email and password required"
	MsgVolunteerCreds      = "email and password are required"
	MsgDecisionRequired    = "volunteer_id, admin_id and action('approve'|'reject') required"
)

// BusinessValidator collapses field-level failures into the single
// messages each endpoint reports, and owns the partial-update tables.
type BusinessValidator struct {
	validate *validator.Validate
}

func (bv *BusinessValidator) structErrors(s interface{}) ValidationErrors {
	if err := bv.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (bv *BusinessValidator) ValidateBlogCreate(req *BlogCreateRequest) error {
	if errs := bv.structErrors(req); hasField(errs, "title", "slug") {
		return ValidationErrors{{Field: "title,slug", Message: MsgBlogRequired, Rule: "required"}}
	}
	return nil
}

// ValidateCourseCreate checks the title and returns the decoded rating,
// nil when absent or null.
func (bv *BusinessValidator) ValidateCourseCreate(req *CourseCreateRequest) (*float64, error) {
	if errs := bv.structErrors(req); hasField(errs, "title") {
		return nil, ValidationErrors{{Field: "title", Message: MsgTitleRequired, Rule: "required"}}
	}
	if isNull(req.Rating) {
		return nil, nil
	}
	rating, err := ParseRating(req.Rating)
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ValidateQuizCreate returns the normalized data document, nil when absent.
func (bv *BusinessValidator) ValidateQuizCreate(req *QuizCreateRequest) (datatypes.JSON, error) {
	return NormalizeQuizData(req.Data)
}

func (bv *BusinessValidator) ValidateEmployeeLogin(req *EmployeeLoginRequest) error {
	if errs := bv.structErrors(req); len(errs) > 0 {
		return ValidationErrors{{Field: "email,password", Message: MsgEmployeeCredentials, Rule: "required"}}
	}
	return nil
}

func (bv *BusinessValidator) ValidateVolunteerRegister(req *VolunteerRegisterRequest) error {
	if errs := bv.structErrors(req); hasField(errs, "email", "password") {
		return ValidationErrors{{Field: "email,password", Message: MsgVolunteerCreds, Rule: "required"}}
	}
	return nil
}

func (bv *BusinessValidator) ValidateVolunteerLogin(req *VolunteerLoginRequest) error {
	if errs := bv.structErrors(req); len(errs) > 0 {
		return ValidationErrors{{Field: "email,password", Message: MsgVolunteerCreds, Rule: "required"}}
	}
	return nil
}

// ValidateDecision returns the parsed action.
func (bv *BusinessValidator) ValidateDecision(req *ApprovalDecisionRequest) (models.ApprovalAction, error) {
	fail := ValidationErrors{{Field: "volunteer_id,admin_id,action", Message: MsgDecisionRequired, Rule: "required"}}
	if errs := bv.structErrors(req); len(errs) > 0 {
		return "", fail
	}
	action := models.ApprovalAction(strings.ToLower(strings.TrimSpace(req.Action)))
	if action != models.ActionApprove && action != models.ActionReject {
		return "", fail
	}
	return action, nil
}

// ParseRating accepts a JSON number or a numeric string in [0, 5].
func ParseRating(raw json.RawMessage) (float64, error) {
	notNumber := ValidationErrors{{Field: "rating", Message: MsgRatingNotNumber, Rule: "number"}}

	var value float64
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		parsed, perr := num.Float64()
		if perr != nil {
			return 0, notNumber
		}
		value = parsed
	} else {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, notNumber
		}
		parsed, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if perr != nil {
			return 0, notNumber
		}
		value = parsed
	}

	if !models.RatingInRange(value) {
		return 0, ValidationErrors{{Field: "rating", Message: MsgRatingOutOfRange, Value: value, Rule: "range"}}
	}
	return value, nil
}

// NormalizeQuizData turns a client supplied data value into the stored
// document. Objects and arrays are stored compacted; a string must itself
// hold valid JSON and is stored as given. Absent or null yields nil.
func NormalizeQuizData(raw json.RawMessage) (datatypes.JSON, error) {
	if isNull(raw) {
		return nil, nil
	}
	trimmed := bytes.TrimSpace(raw)

	switch trimmed[0] {
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return nil, ValidationErrors{{Field: "data", Message: MsgQuizDataInvalidJSON, Rule: "json"}}
		}
		return datatypes.JSON(buf.Bytes()), nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, ValidationErrors{{Field: "data", Message: MsgQuizDataInvalidJSON, Rule: "json"}}
		}
		if !json.Valid([]byte(s)) {
			return nil, ValidationErrors{{Field: "data", Message: MsgQuizDataInvalidJSON, Rule: "json"}}
		}
		return datatypes.JSON(s), nil
	}
	return nil, ValidationErrors{{Field: "data", Message: MsgQuizDataKind, Rule: "kind"}}
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
