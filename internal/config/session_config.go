package config

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/rs/zerolog/log"
)

type SessionConfig interface {
	GetSessionSecret() []byte
	GetSessionMaxAge() time.Duration
}

// Session holds the process-wide cookie-signing secret. The secret is fixed
// for the lifetime of the process: supply SESSION_SECRET to keep issued
// cookies valid across restarts, otherwise a random secret is generated and
// every previously issued cookie becomes invalid on the next start.
type Session struct {
	secret []byte
}

var _ SessionConfig = Session{}

func NewSession() Session {
	if secret := GetEnv("SESSION_SECRET", ""); secret != "" {
		return Session{secret: []byte(secret)}
	}

	b := make([]byte, 32)
	rand.Read(b)
	log.Warn().Msg("SESSION_SECRET not set, generated a random secret; access cookies will not survive a restart")
	return Session{secret: []byte(base64.RawURLEncoding.EncodeToString(b))}
}

func (s Session) GetSessionSecret() []byte {
	return s.secret
}

func (Session) GetSessionMaxAge() time.Duration {
	return 90 * 24 * time.Hour
}
