package session

import "time"

// Config holds session lifecycle configuration.
type Config struct {
	// CookieName is the name of the cookie carrying the session id.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session_id"`

	// TTL is the fixed window after a session's last recorded use in which
	// it is still considered valid. Default is two weeks.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"336h"`

	// SecureCookies enables the Secure flag on the session cookie.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:    "session_id",
		TTL:           14 * 24 * time.Hour,
		SecureCookies: false,
	}
}
