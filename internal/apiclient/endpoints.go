package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

var validate = validator.New()

// checkRequest rejects payloads that fail their validate tags before any request is made
func checkRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// Signup creates an end-user account. The caller stores the returned token.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var resp AuthResponse
	if err := c.Request(ctx, tokenstore.RoleUser, "/auth/signup", RequestOptions{Method: http.MethodPost, Body: req}, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("signup response did not include a token")
	}
	return &resp, nil
}

// Login authenticates an end user
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var resp AuthResponse
	if err := c.Request(ctx, tokenstore.RoleUser, "/auth/login", RequestOptions{Method: http.MethodPost, Body: req}, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login response did not include a token")
	}
	return &resp, nil
}

// AdminLogin authenticates an administrator
func (c *Client) AdminLogin(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var resp AuthResponse
	if err := c.Request(ctx, tokenstore.RoleAdmin, "/auth/admin-login", RequestOptions{Method: http.MethodPost, Body: req}, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("admin login response did not include a token")
	}
	return &resp, nil
}

// Profile returns the current user's profile
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.Request(ctx, tokenstore.RoleUser, "/user/profile", RequestOptions{Method: http.MethodGet}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListCourses returns the public course catalog
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := c.Request(ctx, tokenstore.RoleUser, "/courses", RequestOptions{}, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// GetCourse returns a single course
func (c *Client) GetCourse(ctx context.Context, id string) (*Course, error) {
	var course Course
	if err := c.Request(ctx, tokenstore.RoleUser, "/courses/"+url.PathEscape(id), RequestOptions{}, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) ListWorkshops(ctx context.Context) ([]Workshop, error) {
	var workshops []Workshop
	if err := c.Request(ctx, tokenstore.RoleUser, "/workshops", RequestOptions{}, &workshops); err != nil {
		return nil, err
	}
	return workshops, nil
}

func (c *Client) ListHackathons(ctx context.Context) ([]Hackathon, error) {
	var hackathons []Hackathon
	if err := c.Request(ctx, tokenstore.RoleUser, "/hackathons", RequestOptions{}, &hackathons); err != nil {
		return nil, err
	}
	return hackathons, nil
}

// EnrollCourse enrolls the current user in a course
func (c *Client) EnrollCourse(ctx context.Context, courseID string) error {
	return c.Request(ctx, tokenstore.RoleUser, "/courses/"+url.PathEscape(courseID)+"/enroll", RequestOptions{Method: http.MethodPost}, nil)
}

// RegisterWorkshop registers the current user for a workshop
func (c *Client) RegisterWorkshop(ctx context.Context, workshopID string) error {
	return c.Request(ctx, tokenstore.RoleUser, "/workshops/"+url.PathEscape(workshopID)+"/register", RequestOptions{Method: http.MethodPost}, nil)
}

// RegisterHackathon registers the current user for a hackathon
func (c *Client) RegisterHackathon(ctx context.Context, hackathonID string) error {
	return c.Request(ctx, tokenstore.RoleUser, "/hackathons/"+url.PathEscape(hackathonID)+"/register", RequestOptions{Method: http.MethodPost}, nil)
}

// MyRegistrations lists the current user's enrollments and registrations
func (c *Client) MyRegistrations(ctx context.Context) ([]Registration, error) {
	var regs []Registration
	if err := c.Request(ctx, tokenstore.RoleUser, "/user/registrations", RequestOptions{}, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// CreateOrder opens a payment order. Settlement is verified by the backend.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var order Order
	if err := c.Request(ctx, tokenstore.RoleUser, "/payments/create-order", RequestOptions{Method: http.MethodPost, Body: req}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifyPayment forwards the gateway's signed callback for verification
func (c *Client) VerifyPayment(ctx context.Context, req PaymentVerification) (*PaymentResult, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var result PaymentResult
	if err := c.Request(ctx, tokenstore.RoleUser, "/payments/verify", RequestOptions{Method: http.MethodPost, Body: req}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendContact relays a contact form message
func (c *Client) SendContact(ctx context.Context, msg ContactMessage) error {
	if err := checkRequest(msg); err != nil {
		return err
	}
	return c.Request(ctx, tokenstore.RoleUser, "/contact", RequestOptions{Method: http.MethodPost, Body: msg}, nil)
}

// AdminList returns every record of a managed collection
func (c *Client) AdminList(ctx context.Context, kind CatalogKind) ([]Document, error) {
	var docs []Document
	if err := c.Request(ctx, tokenstore.RoleAdmin, "/"+string(kind), RequestOptions{}, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// AdminCreate creates a record and returns it as stored
func (c *Client) AdminCreate(ctx context.Context, kind CatalogKind, doc Document) (Document, error) {
	var created Document
	if err := c.Request(ctx, tokenstore.RoleAdmin, "/"+string(kind), RequestOptions{Method: http.MethodPost, Body: doc}, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// AdminUpdate replaces a record
func (c *Client) AdminUpdate(ctx context.Context, kind CatalogKind, id string, doc Document) (Document, error) {
	var updated Document
	path := "/" + string(kind) + "/" + url.PathEscape(id)
	if err := c.Request(ctx, tokenstore.RoleAdmin, path, RequestOptions{Method: http.MethodPut, Body: doc}, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// AdminDelete removes a record
func (c *Client) AdminDelete(ctx context.Context, kind CatalogKind, id string) error {
	path := "/" + string(kind) + "/" + url.PathEscape(id)
	return c.Request(ctx, tokenstore.RoleAdmin, path, RequestOptions{Method: http.MethodDelete}, nil)
}
