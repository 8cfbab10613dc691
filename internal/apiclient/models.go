package apiclient

import "encoding/json"

// User is the profile returned by the backend
type User struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,e164"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by signup and login endpoints
type AuthResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// Course represents a catalog course
type Course struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Level       string   `json:"level,omitempty"`
	Price       float64  `json:"price,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Instructor  string   `json:"instructor,omitempty"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Workshop represents a scheduled workshop
type Workshop struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date,omitempty"`
	Location    string  `json:"location,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Seats       int     `json:"seats,omitempty"`
}

// Hackathon represents a hackathon event
type Hackathon struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Prize       string `json:"prize,omitempty"`
	TeamSize    int    `json:"teamSize,omitempty"`
}

// Registration is one enrollment or event registration of the current user
type Registration struct {
	ID        string `json:"_id"`
	Kind      string `json:"type"`
	ItemID    string `json:"itemId"`
	Title     string `json:"title"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// OrderRequest asks the backend to open a payment order for a catalog item
type OrderRequest struct {
	Kind   string `json:"type" validate:"required,oneof=course workshop hackathon"`
	ItemID string `json:"itemId" validate:"required"`
}

// Order is the gateway order created by the backend for the checkout widget
type Order struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key,omitempty"`
}

// PaymentVerification is the gateway callback forwarded to the backend
type PaymentVerification struct {
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// PaymentResult is the backend's verdict on a payment
type PaymentResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ContactMessage is relayed to the backend's email endpoint
type ContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject,omitempty" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// CatalogKind names an admin-managed collection
type CatalogKind string

const (
	KindCourses    CatalogKind = "courses"
	KindWorkshops  CatalogKind = "workshops"
	KindHackathons CatalogKind = "hackathons"
)

// Valid reports whether k is a managed collection
func (k CatalogKind) Valid() bool {
	switch k {
	case KindCourses, KindWorkshops, KindHackathons:
		return true
	}
	return false
}

// Document is an untyped catalog record used by the admin CRUD surface
type Document = json.RawMessage
