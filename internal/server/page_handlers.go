package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnhub-dev/learnhub/internal/apiclient"
	"github.com/learnhub-dev/learnhub/internal/catalog"
	"github.com/learnhub-dev/learnhub/internal/session"
	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

const featuredCourses = 3

// viewer describes who is looking at a page. Display only.
func (s *Server) viewer(c *gin.Context) gin.H {
	rs := getRequestSession(c)
	_, loggedIn := rs.tokens.Get(tokenstore.RoleUser)
	name := session.FallbackDisplayName
	if cached, ok := rs.tokens.DisplayName(); ok && loggedIn {
		name = cached
	}
	return gin.H{"loggedIn": loggedIn, "name": name}
}

func (s *Server) home(c *gin.Context) {
	rs := getRequestSession(c)
	view := gin.H{"page": "home", "viewer": s.viewer(c)}

	courses, err := rs.api.ListCourses(c.Request.Context())
	if err != nil {
		// The landing page renders without the featured strip
		s.logger.Warn().Err(err).Msg("Failed to load featured courses")
		view["featured"] = []apiclient.Course{}
		c.JSON(http.StatusOK, view)
		return
	}
	if len(courses) > featuredCourses {
		courses = courses[:featuredCourses]
	}
	view["featured"] = courses
	c.JSON(http.StatusOK, view)
}

func (s *Server) listCourses(c *gin.Context) {
	var filter catalog.CourseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid filter")
		return
	}

	rs := getRequestSession(c)
	courses, err := rs.api.ListCourses(c.Request.Context())
	if err != nil {
		s.handleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":       "courses",
		"viewer":     s.viewer(c),
		"filter":     filter,
		"categories": catalog.Categories(courses),
		"courses":    catalog.FilterCourses(courses, filter),
	})
}

func (s *Server) getCourse(c *gin.Context) {
	rs := getRequestSession(c)
	course, err := rs.api.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "course", "viewer": s.viewer(c), "course": course})
}

func (s *Server) listWorkshops(c *gin.Context) {
	rs := getRequestSession(c)
	workshops, err := rs.api.ListWorkshops(c.Request.Context())
	if err != nil {
		s.handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "workshops", "viewer": s.viewer(c), "workshops": workshops})
}

func (s *Server) listHackathons(c *gin.Context) {
	rs := getRequestSession(c)
	hackathons, err := rs.api.ListHackathons(c.Request.Context())
	if err != nil {
		s.handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "hackathons", "viewer": s.viewer(c), "hackathons": hackathons})
}

// ContactForm represents the contact form
type ContactForm struct {
	Name    string `form:"name" json:"name" validate:"required"`
	Email   string `form:"email" json:"email" validate:"required,email"`
	Subject string `form:"subject" json:"subject" validate:"max=200"`
	Message string `form:"message" json:"message" validate:"required,max=5000"`
}

func (s *Server) contact(c *gin.Context) {
	var form ContactForm
	if !s.bindForm(c, &form) {
		return
	}

	rs := getRequestSession(c)
	err := rs.api.SendContact(c.Request.Context(), apiclient.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	})
	if err != nil {
		s.handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Thanks! We'll get back to you soon."})
}

// dashboard shows the profile and registrations. A failed registrations fetch
// degrades to an inline error with a retry hint instead of failing the page.
func (s *Server) dashboard(c *gin.Context) {
	rs := getRequestSession(c)
	ctx := c.Request.Context()

	user, ok := rs.user.CurrentUser(ctx)
	if rs.nav.target != "" {
		s.redirectToLogin(c, rs.nav.target)
		return
	}
	if !ok {
		user = &apiclient.User{Name: rs.user.CachedDisplayName()}
	}

	view := gin.H{"page": "dashboard", "user": user}

	regs, err := rs.api.MyRegistrations(ctx)
	switch {
	case err == nil:
		view["registrations"] = regs
	case apiclient.IsUnauthorized(err):
		s.handleAPIError(c, err)
		return
	default:
		view["registrations"] = []apiclient.Registration{}
		view["registrationsError"] = err.Error()
		view["retry"] = true
	}

	c.JSON(http.StatusOK, view)
}
