package security

import (
	"bitwise74/review-api/internal/model"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// codeBytes is how much of the MAC is kept for the code handed to users
const codeBytes = 16

// CodeGenerator derives confirmation codes from a user's persisted state.
// Codes are never stored: a code stays valid exactly as long as the state it
// was derived from is unchanged.
type CodeGenerator struct {
	key []byte
}

func NewCodeGenerator(secret string) (*CodeGenerator, error) {
	key, err := DeriveKey(secret, "confirmation-code")
	if err != nil {
		return nil, err
	}

	return &CodeGenerator{key: key}, nil
}

// Make returns the confirmation code for the current state of u
func (g *CodeGenerator) Make(u *model.User) string {
	return hex.EncodeToString(g.mac(u))
}

// Check reports whether code matches the current state of u
func (g *CodeGenerator) Check(u *model.User, code string) bool {
	got, err := hex.DecodeString(code)
	if err != nil || len(got) != codeBytes {
		return false
	}

	return hmac.Equal(got, g.mac(u))
}

func (g *CodeGenerator) mac(u *model.User) []byte {
	m := hmac.New(sha256.New, g.key)

	// NUL separated so that no two distinct states share an encoding
	for _, part := range []string{
		strconv.FormatUint(uint64(u.ID), 10),
		u.Username,
		u.Email,
		string(u.Role),
		strconv.FormatInt(u.LastLoginAt, 10),
	} {
		m.Write([]byte(part))
		m.Write([]byte{0})
	}

	return m.Sum(nil)[:codeBytes]
}
