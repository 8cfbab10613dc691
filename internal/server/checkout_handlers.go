package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnhub-dev/learnhub/internal/apiclient"
)

func (s *Server) enrollCourse(c *gin.Context) {
	rs := getRequestSession(c)
	if err := rs.api.EnrollCourse(c.Request.Context(), c.Param("id")); err != nil {
		s.handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Enrolled successfully"})
}

func (s *Server) registerWorkshop(c *gin.Context) {
	rs := getRequestSession(c)
	if err := rs.api.RegisterWorkshop(c.Request.Context(), c.Param("id")); err != nil {
		s.handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registered successfully"})
}

func (s *Server) registerHackathon(c *gin.Context) {
	rs := getRequestSession(c)
	if err := rs.api.RegisterHackathon(c.Request.Context(), c.Param("id")); err != nil {
		s.handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registered successfully"})
}

// OrderForm selects the item being purchased
type OrderForm struct {
	Kind   string `form:"type" json:"type" validate:"required,oneof=course workshop hackathon"`
	ItemID string `form:"itemId" json:"itemId" validate:"required"`
}

// createOrder returns what the gateway's checkout widget needs to open
func (s *Server) createOrder(c *gin.Context) {
	var form OrderForm
	if !s.bindForm(c, &form) {
		return
	}

	rs := getRequestSession(c)
	order, err := rs.api.CreateOrder(c.Request.Context(), apiclient.OrderRequest{Kind: form.Kind, ItemID: form.ItemID})
	if err != nil {
		s.handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// VerifyForm is the gateway's success callback payload
type VerifyForm struct {
	OrderID   string `form:"orderId" json:"orderId" validate:"required"`
	PaymentID string `form:"paymentId" json:"paymentId" validate:"required"`
	Signature string `form:"signature" json:"signature" validate:"required"`
}

// verifyPayment defers settlement correctness to the backend
func (s *Server) verifyPayment(c *gin.Context) {
	var form VerifyForm
	if !s.bindForm(c, &form) {
		return
	}

	rs := getRequestSession(c)
	result, err := rs.api.VerifyPayment(c.Request.Context(), apiclient.PaymentVerification{
		OrderID:   form.OrderID,
		PaymentID: form.PaymentID,
		Signature: form.Signature,
	})
	if err != nil {
		s.handleAPIError(c, err)
		return
	}
	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "Payment could not be verified"
		}
		respondWithError(c, http.StatusPaymentRequired, msg)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment successful", "redirect": "/dashboard"})
}
