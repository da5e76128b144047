package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda-storefront/internal/service/session"
)

func currentSessionHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := sessions.Current()
		if current == nil {
			c.JSON(http.StatusOK, gin.H{"session": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": current})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func loginHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		s, err := sessions.SignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": s})
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func registerHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		s, err := sessions.SignUp(c.Request.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"session": s})
	}
}

type googleLoginRequest struct {
	IDToken string `json:"idToken"`
}

func googleLoginHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req googleLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		s, err := sessions.SignInWithGoogle(c.Request.Context(), req.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": s})
	}
}

type phoneLoginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

func phoneLoginHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req phoneLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if err := sessions.StartPhoneSignIn(c.Request.Context(), req.PhoneNumber); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "code sent"})
	}
}

type phoneConfirmRequest struct {
	Code string `json:"code"`
}

func phoneConfirmHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req phoneConfirmRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		s, err := sessions.ConfirmPhoneSignIn(c.Request.Context(), req.Code)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": s})
	}
}

func logoutHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions.SignOut(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"status": "signed out"})
	}
}
