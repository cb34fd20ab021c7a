package internal

import (
	"bitwise74/review-api/internal/listcache"
	"bitwise74/review-api/internal/service"
	"bitwise74/review-api/pkg/security"
	"time"

	"gorm.io/gorm"
)

type Deps struct {
	DB     *gorm.DB
	Codes  *security.CodeGenerator
	Tokens *security.TokenIssuer
	Mailer service.Mailer
	// Cached catalog lists, nil disables caching
	Lists *listcache.Cache
	// Clock used for release year checks and login timestamps
	Now func() time.Time
}
