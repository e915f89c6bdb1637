package validator

import "encoding/json"

// FieldDecoder turns one raw payload value into a column value.
type FieldDecoder func(raw json.RawMessage) (interface{}, error)

// UpdateField maps an accepted payload key to its column.
type UpdateField struct {
	Key    string
	Column string
	Decode FieldDecoder
}

// UpdateTable is the fixed set of fields an entity accepts on update.
// Keys not listed are ignored.
type UpdateTable []UpdateField

var (
	BlogUpdateFields = UpdateTable{
		{Key: "title", Column: "title", Decode: requiredString("title")},
		{Key: "slug", Column: "slug", Decode: requiredString("slug")},
		{Key: "content", Column: "content", Decode: nullableString("content")},
		{Key: "image_url", Column: "image_url", Decode: nullableString("image_url")},
		{Key: "image_alt", Column: "image_alt", Decode: nullableString("image_alt")},
		{Key: "image_caption", Column: "image_caption", Decode: nullableString("image_caption")},
		{Key: "author_id", Column: "author_id", Decode: nullableUint("author_id")},
	}

	CourseUpdateFields = UpdateTable{
		{Key: "title", Column: "title", Decode: requiredString("title")},
		{Key: "description", Column: "description", Decode: nullableString("description")},
		{Key: "rating", Column: "rating", Decode: decodeRating},
		{Key: "thumbnail_url", Column: "thumbnail_url", Decode: nullableString("thumbnail_url")},
		{Key: "video_url", Column: "video_url", Decode: nullableString("video_url")},
		{Key: "content", Column: "content", Decode: nullableString("content")},
	}

	QuizUpdateFields = UpdateTable{
		{Key: "title", Column: "title", Decode: nullableString("title")},
		{Key: "data", Column: "data", Decode: decodeQuizData},
	}
)

// Apply decodes the recognised keys of payload in table order and returns
// the column assignments. The first invalid value aborts with its error;
// a payload with no recognised keys is rejected.
func (t UpdateTable) Apply(payload UpdatePayload) (map[string]interface{}, error) {
	updates := make(map[string]interface{})
	for _, f := range t {
		raw, ok := payload[f.Key]
		if !ok {
			continue
		}
		value, err := f.Decode(raw)
		if err != nil {
			return nil, err
		}
		updates[f.Column] = value
	}
	if len(updates) == 0 {
		return nil, ValidationErrors{{Message: MsgNoUpdatableFields, Rule: "required"}}
	}
	return updates, nil
}

func requiredString(field string) FieldDecoder {
	return func(raw json.RawMessage) (interface{}, error) {
		var s *string
		if err := json.Unmarshal(raw, &s); err != nil || s == nil {
			return nil, ValidationErrors{{Field: field, Message: field + " must be a string", Rule: "string"}}
		}
		return *s, nil
	}
}

func nullableString(field string) FieldDecoder {
	return func(raw json.RawMessage) (interface{}, error) {
		if isNull(raw) {
			return nil, nil
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, ValidationErrors{{Field: field, Message: field + " must be a string or null", Rule: "string"}}
		}
		return s, nil
	}
}

func nullableUint(field string) FieldDecoder {
	return func(raw json.RawMessage) (interface{}, error) {
		if isNull(raw) {
			return nil, nil
		}
		var n uint
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, ValidationErrors{{Field: field, Message: field + " must be a non-negative integer or null", Rule: "integer"}}
		}
		return n, nil
	}
}

func decodeRating(raw json.RawMessage) (interface{}, error) {
	if isNull(raw) {
		return nil, ValidationErrors{{Field: "rating", Message: MsgRatingNotNumber, Rule: "number"}}
	}
	return ParseRating(raw)
}

func decodeQuizData(raw json.RawMessage) (interface{}, error) {
	data, err := NormalizeQuizData(raw)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return data, nil
}
