package server

import (
	"crypto/rand"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/learnhub-dev/learnhub/internal/apiclient"
	"github.com/learnhub-dev/learnhub/internal/session"
	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

const (
	sessionKey   = "session"
	requestIDKey = "request_id"
)

// routeAccess is the static public/protected split. Keys are gin route patterns.
var routeAccess = session.Classification{
	"/dashboard":               session.Protected(tokenstore.RoleUser),
	"/courses/:id/enroll":      session.Protected(tokenstore.RoleUser),
	"/workshops/:id/register":  session.Protected(tokenstore.RoleUser),
	"/hackathons/:id/register": session.Protected(tokenstore.RoleUser),
	"/checkout/":               session.Protected(tokenstore.RoleUser),
	"/admin":                   session.Protected(tokenstore.RoleAdmin),
	"/admin/":                  session.Protected(tokenstore.RoleAdmin),
	"/admin/login":             session.Public,
	"/admin/logout":            session.Public,
}

// redirectNavigator remembers the first navigation requested during a request
type redirectNavigator struct {
	target string
}

func (n *redirectNavigator) Navigate(target string) {
	if n.target == "" {
		n.target = target
	}
}

// requestSession is everything a handler needs to act on behalf of the visitor
type requestSession struct {
	tokens *tokenstore.TokenStore
	nav    *redirectNavigator
	api    *apiclient.Client
	user   *session.UserSession
	gate   *session.Gate
}

func getRequestSession(c *gin.Context) *requestSession {
	if v, ok := c.Get(sessionKey); ok {
		if rs, ok := v.(*requestSession); ok {
			return rs
		}
	}
	return nil
}

// sessionMiddleware binds the token store, client and gate to the request's cookies
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokens := tokenstore.New(tokenstore.NewCookieStorage(c, s.cookieOpts))
		nav := &redirectNavigator{}
		api := s.api.WithSession(tokens, nav)

		c.Set(sessionKey, &requestSession{
			tokens: tokens,
			nav:    nav,
			api:    api,
			user:   session.NewUserSession(tokens, api, s.logger),
			gate:   session.NewGate(tokens, nav),
		})
		c.Next()
	}
}

// gateMiddleware enforces the route classification before any handler runs
func (s *Server) gateMiddleware(routes session.Classification) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, protected := routes.Lookup(c.FullPath()).Role()
		if !protected {
			c.Next()
			return
		}

		rs := getRequestSession(c)
		if !rs.gate.EnsureAuthenticated(role) {
			s.logger.Debug().Str("path", c.Request.URL.Path).Str("role", role.String()).Msg("No session, redirecting to login")
			s.redirectToLogin(c, rs.nav.target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// redirectToLogin sends the visitor to target, remembering where they were going.
// JSON clients get a 401 with the redirect target instead.
func (s *Server) redirectToLogin(c *gin.Context, target string) {
	if wantsJSON(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "redirect": target})
		return
	}
	if c.Request.Method == http.MethodGet {
		target += "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
	}
	c.Redirect(http.StatusSeeOther, target)
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json") ||
		strings.HasPrefix(c.ContentType(), "application/json")
}

// safeNext only allows local absolute paths as post-login destinations
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return fallback
	}
	return next
}

// requestIDMiddleware assigns a ULID per request and forwards it to the backend
func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(apiclient.RequestIDHeader)
		if id == "" {
			id = ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(apiclient.RequestIDHeader, id)
		c.Request = c.Request.WithContext(apiclient.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := s.logger.Info()
		if status >= 500 {
			event = s.logger.Error()
		} else if status >= 400 {
			event = s.logger.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("HTTP request")
	}
}

// recoveryMiddleware keeps a panicking view from taking the page down
func (s *Server) recoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error().
					Interface("panic", r).
					Str("request_id", c.GetString(requestIDKey)).
					Msg("Recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
		}()
		c.Next()
	}
}

func respondWithError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
	c.Abort()
}

// handleAPIError turns client errors into view state. Nothing escapes as a panic.
func (s *Server) handleAPIError(c *gin.Context, err error) {
	rs := getRequestSession(c)

	switch {
	case apiclient.IsUnauthorized(err):
		target := tokenstore.UserLoginPath
		if rs != nil && rs.nav.target != "" {
			target = rs.nav.target
		}
		s.redirectToLogin(c, target)
		c.Abort()
	case errors.Is(err, apiclient.ErrInvalidRequest):
		respondWithError(c, http.StatusUnprocessableEntity, err.Error())
	case apiclient.IsNetwork(err):
		s.logger.Warn().Err(err).Msg("Backend unavailable")
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
			"error": "We couldn't reach the server. Please try again.",
			"retry": true,
		})
	default:
		if status := apiclient.StatusOf(err); status != 0 {
			respondWithError(c, status, err.Error())
			return
		}
		s.logger.Error().Err(err).Msg("Unexpected backend error")
		respondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
