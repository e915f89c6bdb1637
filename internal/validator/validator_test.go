package validator

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AvaneeshKarthiks/FinWise/internal/models"
)

func strPtr(s string) *string { return &s }

func messageOf(t *testing.T, err error) string {
	t.Helper()
	var ve ValidationErrors
	require.True(t, errors.As(err, &ve), "expected ValidationErrors, got %T", err)
	return ve.Error()
}

func TestValidateBlogCreate(t *testing.T) {
	bv := New().GetBusinessValidator()

	tests := []struct {
		name    string
		req     BlogCreateRequest
		wantErr bool
	}{
		{"complete", BlogCreateRequest{Title: "A", Slug: "a"}, false},
		{"missing slug", BlogCreateRequest{Title: "A"}, true},
		{"missing title", BlogCreateRequest{Slug: "a"}, true},
		{"empty", BlogCreateRequest{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bv.ValidateBlogCreate(&tt.req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, MsgBlogRequired, messageOf(t, err))
		})
	}
}

func TestValidateCourseCreate(t *testing.T) {
	bv := New().GetBusinessValidator()

	rating, err := bv.ValidateCourseCreate(&CourseCreateRequest{Title: "Budgeting", Rating: json.RawMessage(`4.5`)})
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Equal(t, 4.5, *rating)

	rating, err = bv.ValidateCourseCreate(&CourseCreateRequest{Title: "Budgeting", Rating: json.RawMessage(`null`)})
	require.NoError(t, err)
	assert.Nil(t, rating)

	rating, err = bv.ValidateCourseCreate(&CourseCreateRequest{Title: "Budgeting"})
	require.NoError(t, err)
	assert.Nil(t, rating)

	_, err = bv.ValidateCourseCreate(&CourseCreateRequest{Rating: json.RawMessage(`3`)})
	assert.Equal(t, MsgTitleRequired, messageOf(t, err))

	_, err = bv.ValidateCourseCreate(&CourseCreateRequest{Title: "x", Rating: json.RawMessage(`7`)})
	assert.Equal(t, MsgRatingOutOfRange, messageOf(t, err))
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantMsg string
	}{
		{raw: `0`, want: 0},
		{raw: `5`, want: 5},
		{raw: `"3.5"`, want: 3.5},
		{raw: `" 2 "`, want: 2},
		{raw: `5.01`, wantMsg: MsgRatingOutOfRange},
		{raw: `-1`, wantMsg: MsgRatingOutOfRange},
		{raw: `"abc"`, wantMsg: MsgRatingNotNumber},
		{raw: `true`, wantMsg: MsgRatingNotNumber},
		{raw: `[1]`, wantMsg: MsgRatingNotNumber},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseRating(json.RawMessage(tt.raw))
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, messageOf(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeQuizData(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantNil bool
		wantMsg string
	}{
		{name: "absent", raw: ``, wantNil: true},
		{name: "null", raw: `null`, wantNil: true},
		{name: "object compacted", raw: `{ "q": [1, 2] }`, want: `{"q":[1,2]}`},
		{name: "array", raw: `[{"a":1}]`, want: `[{"a":1}]`},
		{name: "json string", raw: `"{\"a\": 1}"`, want: `{"a": 1}`},
		{name: "non json string", raw: `"hello"`, wantMsg: MsgQuizDataInvalidJSON},
		{name: "number", raw: `42`, wantMsg: MsgQuizDataKind},
		{name: "bool", raw: `false`, wantMsg: MsgQuizDataKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeQuizData(json.RawMessage(tt.raw))
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, messageOf(t, err))
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestValidateDecision(t *testing.T) {
	bv := New().GetBusinessValidator()

	action, err := bv.ValidateDecision(&ApprovalDecisionRequest{VolunteerID: 1, AdminID: 2, Action: "Approve"})
	require.NoError(t, err)
	assert.Equal(t, models.ActionApprove, action)

	action, err = bv.ValidateDecision(&ApprovalDecisionRequest{VolunteerID: 1, AdminID: 2, Action: "reject"})
	require.NoError(t, err)
	assert.Equal(t, models.ActionReject, action)

	for _, req := range []ApprovalDecisionRequest{
		{VolunteerID: 1, AdminID: 2, Action: "bogus"},
		{AdminID: 2, Action: "approve"},
		{VolunteerID: 1, Action: "approve"},
		{VolunteerID: 1, AdminID: 2},
	} {
		_, err := bv.ValidateDecision(&req)
		assert.Equal(t, MsgDecisionRequired, messageOf(t, err))
	}
}

func TestCredentialRequests(t *testing.T) {
	bv := New().GetBusinessValidator()

	assert.NoError(t, bv.ValidateEmployeeLogin(&EmployeeLoginRequest{Email: "a@b.c", Password: "x"}))
	assert.Equal(t, MsgEmployeeCredentials, messageOf(t, bv.ValidateEmployeeLogin(&EmployeeLoginRequest{Email: "a@b.c"})))

	assert.NoError(t, bv.ValidateVolunteerRegister(&VolunteerRegisterRequest{Email: "a@b.c", Password: "x", Name: strPtr("A")}))
	assert.Equal(t, MsgVolunteerCreds, messageOf(t, bv.ValidateVolunteerRegister(&VolunteerRegisterRequest{Password: "x"})))
	assert.Equal(t, MsgVolunteerCreds, messageOf(t, bv.ValidateVolunteerLogin(&VolunteerLoginRequest{})))
}

func TestUpdateTableApply(t *testing.T) {
	t.Run("ignores unknown keys", func(t *testing.T) {
		_, err := BlogUpdateFields.Apply(UpdatePayload{"views": json.RawMessage(`3`)})
		assert.Equal(t, MsgNoUpdatableFields, messageOf(t, err))
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := QuizUpdateFields.Apply(UpdatePayload{})
		assert.Equal(t, MsgNoUpdatableFields, messageOf(t, err))
	})

	t.Run("blog nullable fields", func(t *testing.T) {
		updates, err := BlogUpdateFields.Apply(UpdatePayload{
			"title":     json.RawMessage(`"New"`),
			"content":   json.RawMessage(`null`),
			"author_id": json.RawMessage(`7`),
			"bogus":     json.RawMessage(`1`),
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"title": "New", "content": nil, "author_id": uint(7)}, updates)
	})

	t.Run("blog title cannot be null", func(t *testing.T) {
		_, err := BlogUpdateFields.Apply(UpdatePayload{"title": json.RawMessage(`null`)})
		assert.Equal(t, "title must be a string", messageOf(t, err))
	})

	t.Run("course rating null rejected", func(t *testing.T) {
		_, err := CourseUpdateFields.Apply(UpdatePayload{"rating": json.RawMessage(`null`)})
		assert.Equal(t, MsgRatingNotNumber, messageOf(t, err))
	})

	t.Run("course rating out of range", func(t *testing.T) {
		_, err := CourseUpdateFields.Apply(UpdatePayload{"title": json.RawMessage(`"x"`), "rating": json.RawMessage(`9`)})
		assert.Equal(t, MsgRatingOutOfRange, messageOf(t, err))
	})

	t.Run("course rating string", func(t *testing.T) {
		updates, err := CourseUpdateFields.Apply(UpdatePayload{"rating": json.RawMessage(`"4"`)})
		require.NoError(t, err)
		assert.Equal(t, 4.0, updates["rating"])
	})

	t.Run("quiz data null clears", func(t *testing.T) {
		updates, err := QuizUpdateFields.Apply(UpdatePayload{"data": json.RawMessage(`null`)})
		require.NoError(t, err)
		v, ok := updates["data"]
		assert.True(t, ok)
		assert.Nil(t, v)
	})
}

func TestToValidationErrors(t *testing.T) {
	v := New()
	errs := v.Validate(&EmployeeLoginRequest{})
	require.Len(t, errs, 2)
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "email is required", errs[0].Message)
	assert.Equal(t, "required", errs[0].Rule)
	assert.Contains(t, errs.Error(), "and 1 more")

	assert.Nil(t, ToValidationErrors(nil))
}
