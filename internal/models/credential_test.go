package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCredential(t *testing.T) {
	digest := SHA256Hex("abc123")

	tests := []struct {
		name   string
		stored string
		scheme PasswordScheme
		want   PasswordScheme
	}{
		{name: "untagged plaintext", stored: "abc123", want: SchemePlain},
		{name: "untagged digest", stored: digest, want: SchemeSHA256},
		{name: "uppercase digest is not a digest", stored: "6CA13D52CA70C883E0F0BB101E425A89E8624DE51DB2D2392593AF6A84118090", want: SchemePlain},
		{name: "explicit plain wins over format", stored: digest, scheme: SchemePlain, want: SchemePlain},
		{name: "explicit sha256", stored: digest, scheme: SchemeSHA256, want: SchemeSHA256},
		{name: "unknown tag falls back to inference", stored: "abc123", scheme: "bcrypt", want: SchemePlain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCredential(tt.stored, tt.scheme).Scheme)
		})
	}
}

func TestCredentialVerifyAcceptsBothSchemes(t *testing.T) {
	plain := ParseCredential("abc123", "")
	hashed := ParseCredential(SHA256Hex("abc123"), "")

	assert.True(t, plain.Verify("abc123"))
	assert.True(t, hashed.Verify("abc123"))
	assert.False(t, plain.Verify("abc124"))
	assert.False(t, hashed.Verify("abc124"))
	assert.False(t, hashed.Verify(SHA256Hex("abc123")), "a digest is not accepted as the password")
}

func TestCredentialHashed(t *testing.T) {
	c := ParseCredential("abc123", "").Hashed()
	assert.Equal(t, SchemeSHA256, c.Scheme)
	assert.Equal(t, SHA256Hex("abc123"), c.Secret)
	assert.True(t, c.Verify("abc123"))

	again := c.Hashed()
	assert.Equal(t, c, again)
}

func TestSHA256Hex(t *testing.T) {
	assert.Equal(t, "6ca13d52ca70c883e0f0bb101e425a89e8624de51db2d2392593af6a84118090", SHA256Hex("abc123"))
}

func TestQuizDecodedData(t *testing.T) {
	q := &Quiz{}
	assert.Nil(t, q.DecodedData())

	q.Data = []byte(`{"q":[1,2]}`)
	out, err := json.Marshal(q.DecodedData())
	assert.NoError(t, err)
	assert.JSONEq(t, `{"q":[1,2]}`, string(out))

	q.Data = []byte("not json")
	assert.Equal(t, "not json", q.DecodedData())
}

func TestApprovalActionStatus(t *testing.T) {
	assert.Equal(t, ApprovalApproved, ActionApprove.Status())
	assert.Equal(t, ApprovalRejected, ActionReject.Status())
}

func TestEmployeeVerifyPassword(t *testing.T) {
	tests := []struct {
		name     string
		employee Employee
		password string
		want     bool
	}{
		{"untagged plain", Employee{Password: "hunter2"}, "hunter2", true},
		{"untagged hashed", Employee{Password: SHA256Hex("hunter2")}, "hunter2", true},
		{"untagged digest typed literally", Employee{Password: SHA256Hex("hunter2")}, SHA256Hex("hunter2"), true},
		{"untagged wrong", Employee{Password: "hunter2"}, "hunter3", false},
		{"tagged plain ignores digest", Employee{Password: "hunter2", PasswordScheme: SchemePlain}, "hunter2", true},
		{"tagged sha256", Employee{Password: SHA256Hex("pw"), PasswordScheme: SchemeSHA256}, "pw", true},
		{"tagged sha256 rejects literal digest", Employee{Password: SHA256Hex("pw"), PasswordScheme: SchemeSHA256}, SHA256Hex("pw"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.employee.VerifyPassword(tt.password))
		})
	}
}
