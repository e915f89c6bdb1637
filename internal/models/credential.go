package models

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

type PasswordScheme string

const (
	SchemePlain  PasswordScheme = "plain"
	SchemeSHA256 PasswordScheme = "sha256"
)

// Credential is a stored secret tagged with the scheme it was written in.
type Credential struct {
	Scheme PasswordScheme
	Secret string
}

// ParseCredential tags a stored secret. Rows written before the scheme column
// existed carry an empty tag; for those a 64 character hex string is taken to
// be a SHA-256 digest and anything else plaintext.
func ParseCredential(stored string, scheme PasswordScheme) Credential {
	switch scheme {
	case SchemePlain, SchemeSHA256:
		return Credential{Scheme: scheme, Secret: stored}
	}
	if isSHA256Hex(stored) {
		return Credential{Scheme: SchemeSHA256, Secret: stored}
	}
	return Credential{Scheme: SchemePlain, Secret: stored}
}

// Verify reports whether password matches the credential.
func (c Credential) Verify(password string) bool {
	var candidate string
	switch c.Scheme {
	case SchemeSHA256:
		candidate = SHA256Hex(password)
	case SchemePlain:
		candidate = password
	default:
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(c.Secret)) == 1
}

// Hashed returns the credential rewritten in the SHA-256 scheme. It only
// works for plaintext credentials; hashed ones are returned unchanged.
func (c Credential) Hashed() Credential {
	if c.Scheme != SchemePlain {
		return c
	}
	return Credential{Scheme: SchemeSHA256, Secret: SHA256Hex(c.Secret)}
}

// SHA256Hex returns the lowercase hex SHA-256 digest of s.
func SHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func isSHA256Hex(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
