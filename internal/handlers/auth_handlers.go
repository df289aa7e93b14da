package handlers

import (
	"errors"
	"net/http"

	"payroll_backend/internal/middleware"
	"payroll_backend/internal/services"
	"payroll_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// currentOwnerID pulls the authenticated user id out of the gin context.
func currentOwnerID(c *gin.Context) (string, bool) {
	raw, exists := c.Get(middleware.ContextUserID)
	if !exists {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing user ID in context"))
		return "", false
	}
	ownerID, ok := raw.(string)
	if !ok || ownerID == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User ID format incorrect.", "Invalid user ID in context"))
		return "", false
	}
	return ownerID, true
}

// respondAuthError maps the credential error taxonomy onto distinct API
// errors. Every entry gets its own code and message; nothing is retried.
func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeInvalidCredential, "Incorrect email or password.", err.Error()))
	case errors.Is(err, services.ErrEmailExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeEmailAlreadyInUse, "This email is already in use.", err.Error()))
	case errors.Is(err, services.ErrWeakPassword):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeWeakPassword, "Password must be at least 6 characters.", err.Error()))
	case errors.Is(err, services.ErrOperationNotAllowed):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeOperationNotAllowed, "This sign-in method is not enabled.", err.Error()))
	case errors.Is(err, services.ErrInvalidEmail):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Please provide a valid email address.", err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Sign-in failed. Please try again.", "Internal error"))
	}
}

// Register handles account creation with email and password.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Register: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	authResp, err := h.authService.Register(req)
	if err != nil {
		utils.LogError(err, "Register: Error from authService.Register")
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusCreated, authResp)
}

// Login handles email/password sign-in.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Login: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	authResp, err := h.authService.Login(req)
	if err != nil {
		utils.LogError(err, "Login: Error from authService.Login")
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// GuestLogin creates an anonymous session with its own private dataset.
func (h *AuthHandler) GuestLogin(c *gin.Context) {
	authResp, err := h.authService.GuestLogin()
	if err != nil {
		utils.LogError(err, "GuestLogin: Error from authService.GuestLogin")
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusCreated, authResp)
}

// GetCurrentUser retrieves the profile of the currently authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	ownerID, ok := currentOwnerID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUserProfile(ownerID)
	if err != nil {
		utils.LogError(err, "GetCurrentUser: Error from authService.GetUserProfile for user "+ownerID)
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "User profile not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve user profile.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout acknowledges sign-out. Tokens are stateless; the client discards
// its copy and the session returns to unauthenticated.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully. Please discard your token."})
}
