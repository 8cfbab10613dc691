package tokenstore

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieOptions controls how session cookies are written
type CookieOptions struct {
	Path     string
	Domain   string
	MaxAge   time.Duration
	Secure   bool
	SameSite http.SameSite
}

// DefaultCookieOptions keeps sessions for 7 days
func DefaultCookieOptions() CookieOptions {
	return CookieOptions{
		Path:     "/",
		MaxAge:   7 * 24 * time.Hour,
		SameSite: http.SameSiteLaxMode,
	}
}

// CookieStorage is the browser's cookie jar as seen from one request.
// Values written during the request are visible to later reads in the same request.
type CookieStorage struct {
	c       *gin.Context
	opts    CookieOptions
	pending map[string]*string
}

// NewCookieStorage binds storage to a request. A nil context behaves as an
// empty, read-only store.
func NewCookieStorage(c *gin.Context, opts CookieOptions) *CookieStorage {
	if opts.Path == "" {
		opts.Path = "/"
	}
	return &CookieStorage{c: c, opts: opts, pending: make(map[string]*string)}
}

func (s *CookieStorage) Get(key string) (string, bool) {
	if v, ok := s.pending[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	if s.c == nil || s.c.Request == nil {
		return "", false
	}
	value, err := s.c.Cookie(key)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

func (s *CookieStorage) Set(key, value string) error {
	s.pending[key] = &value
	if s.c == nil {
		return nil
	}
	s.c.SetSameSite(s.opts.SameSite)
	s.c.SetCookie(key, value, int(s.opts.MaxAge.Seconds()), s.opts.Path, s.opts.Domain, s.opts.Secure, true)
	return nil
}

func (s *CookieStorage) Remove(key string) error {
	s.pending[key] = nil
	if s.c == nil {
		return nil
	}
	s.c.SetSameSite(s.opts.SameSite)
	s.c.SetCookie(key, "", -1, s.opts.Path, s.opts.Domain, s.opts.Secure, true)
	return nil
}
