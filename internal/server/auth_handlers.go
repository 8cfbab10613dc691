package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/learnhub-dev/learnhub/internal/apiclient"
	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

// LoginForm represents a login submission (form-encoded or JSON)
type LoginForm struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
	Next     string `form:"next" json:"next"`
}

// SignupForm represents a signup submission
type SignupForm struct {
	Name     string `form:"name" json:"name" validate:"required,min=2,max=100"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Phone    string `form:"phone" json:"phone" validate:"omitempty,e164"`
	Password string `form:"password" json:"password" validate:"required,min=8"`
	Next     string `form:"next" json:"next"`
}

func (s *Server) loginPage(c *gin.Context) {
	s.authPage(c, tokenstore.RoleUser, "/dashboard", gin.H{"page": "login", "signup": "/signup"})
}

func (s *Server) signupPage(c *gin.Context) {
	s.authPage(c, tokenstore.RoleUser, "/dashboard", gin.H{"page": "signup", "login": "/login"})
}

func (s *Server) adminLoginPage(c *gin.Context) {
	s.authPage(c, tokenstore.RoleAdmin, "/admin", gin.H{"page": "admin-login"})
}

// authPage skips the form when the visitor already holds a session for role
func (s *Server) authPage(c *gin.Context, role tokenstore.Role, home string, view gin.H) {
	rs := getRequestSession(c)
	next := safeNext(c.Query("next"), home)
	if _, ok := rs.tokens.Get(role); ok {
		c.Redirect(http.StatusSeeOther, next)
		return
	}
	view["next"] = next
	c.JSON(http.StatusOK, view)
}

func (s *Server) login(c *gin.Context) {
	var form LoginForm
	if !s.bindForm(c, &form) {
		return
	}

	rs := getRequestSession(c)
	// A 401 here means bad credentials, not an expired session
	api := rs.api.WithSession(rs.tokens, apiclient.NavigatorFunc(func(string) {}))

	resp, err := api.Login(c.Request.Context(), apiclient.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		s.credentialError(c, err)
		return
	}

	s.startSession(c, tokenstore.RoleUser, resp, safeNext(form.Next, "/dashboard"))
}

func (s *Server) signup(c *gin.Context) {
	var form SignupForm
	if !s.bindForm(c, &form) {
		return
	}

	rs := getRequestSession(c)
	resp, err := rs.api.Signup(c.Request.Context(), apiclient.SignupRequest{
		Name:     form.Name,
		Email:    form.Email,
		Phone:    form.Phone,
		Password: form.Password,
	})
	if err != nil {
		s.credentialError(c, err)
		return
	}

	if resp.User == nil {
		resp.User = &apiclient.User{Name: form.Name, Email: form.Email}
	}
	s.startSession(c, tokenstore.RoleUser, resp, safeNext(form.Next, "/dashboard"))
}

func (s *Server) adminLogin(c *gin.Context) {
	var form LoginForm
	if !s.bindForm(c, &form) {
		return
	}

	rs := getRequestSession(c)
	api := rs.api.WithSession(rs.tokens, apiclient.NavigatorFunc(func(string) {}))

	resp, err := api.AdminLogin(c.Request.Context(), apiclient.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		s.credentialError(c, err)
		return
	}

	s.startSession(c, tokenstore.RoleAdmin, resp, safeNext(form.Next, "/admin"))
}

func (s *Server) logout(c *gin.Context) {
	s.endSession(c, tokenstore.RoleUser, "/")
}

func (s *Server) adminLogout(c *gin.Context) {
	s.endSession(c, tokenstore.RoleAdmin, tokenstore.AdminLoginPath)
}

func (s *Server) startSession(c *gin.Context, role tokenstore.Role, resp *apiclient.AuthResponse, next string) {
	rs := getRequestSession(c)
	if err := rs.tokens.Set(role, resp.Token); err != nil {
		s.logger.Error().Err(err).Str("role", role.String()).Msg("Failed to store session token")
		respondWithError(c, http.StatusInternalServerError, "Failed to start session")
		return
	}
	if role == tokenstore.RoleUser && resp.User != nil {
		_ = rs.tokens.SetDisplayName(resp.User.Name)
	}

	s.logger.Info().Str("role", role.String()).Msg("Session started")

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"redirect": next, "user": resp.User})
		return
	}
	c.Redirect(http.StatusSeeOther, next)
}

func (s *Server) endSession(c *gin.Context, role tokenstore.Role, next string) {
	rs := getRequestSession(c)
	if err := rs.tokens.Clear(role); err != nil {
		s.logger.Warn().Err(err).Str("role", role.String()).Msg("Failed to clear session token")
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"redirect": next})
		return
	}
	c.Redirect(http.StatusSeeOther, next)
}

// credentialError presents login/signup failures inline
func (s *Server) credentialError(c *gin.Context, err error) {
	switch {
	case apiclient.IsUnauthorized(err):
		respondWithError(c, http.StatusUnauthorized, "Invalid email or password")
	case apiclient.IsNetwork(err):
		s.handleAPIError(c, err)
	default:
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) {
			respondWithError(c, apiErr.Status, apiErr.Message)
			return
		}
		s.handleAPIError(c, err)
	}
}

// bindForm binds and validates form input. It writes a 400 and returns false on failure.
func (s *Server) bindForm(c *gin.Context, form any) bool {
	if err := c.ShouldBind(form); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid form submission")
		return false
	}
	if err := s.validator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "Please correct the highlighted fields", "fields": fields})
			return false
		}
		respondWithError(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
