// Package testutil provides fixtures shared by the package tests
package testutil

import (
	"bitwise74/review-api/db"
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/pkg/security"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const Secret = "test-secret-key-12345678901234567890123456789012"

// NewDB returns a migrated in-memory sqlite database private to t
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	d, err := db.Connect(sqlite.Open(":memory:"), logger.Silent)
	require.NoError(t, err)

	sqlDB, err := d.DB()
	require.NoError(t, err)
	// Every new connection would get its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(d))
	return d
}

// Mail is a Mailer that records every message and can be told to fail
type Mail struct {
	mu   sync.Mutex
	Sent []SentMail
	Err  error
}

type SentMail struct {
	To       string
	Username string
	Code     string
}

var ErrMailDown = errors.New("smtp: connection refused")

func (m *Mail) SendConfirmationCode(to, username, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.Sent = append(m.Sent, SentMail{To: to, Username: username, Code: code})
	return nil
}

// Last returns the most recent message, failing the test if nothing was sent
func (m *Mail) Last(t *testing.T) SentMail {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	require.NotEmpty(t, m.Sent, "no mail was sent")
	return m.Sent[len(m.Sent)-1]
}

// NewDeps wires a full dependency set around a fresh database and a recording mailer.
// The clock is pinned to mid-2024 so year validation is deterministic.
func NewDeps(t *testing.T) (*internal.Deps, *Mail) {
	t.Helper()

	codes, err := security.NewCodeGenerator(Secret)
	require.NoError(t, err)

	tokens, err := security.NewTokenIssuer(Secret, time.Hour)
	require.NoError(t, err)

	mail := &Mail{}
	return &internal.Deps{
		DB:     NewDB(t),
		Codes:  codes,
		Tokens: tokens,
		Mailer: mail,
		Now:    func() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC) },
	}, mail
}

// CreateUser inserts a user with the given role and returns it
func CreateUser(t *testing.T, d *gorm.DB, username string, role model.Role) *model.User {
	t.Helper()

	u := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, d.Create(u).Error)
	return u
}

// Token mints an access token for u
func Token(t *testing.T, deps *internal.Deps, u *model.User) string {
	t.Helper()

	s, err := deps.Tokens.Issue(u)
	require.NoError(t, err)
	return s
}
