package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-admin/middleware"
	"hotel-admin/services"
	"hotel-admin/utils"
)

type registerPayload struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	UserSvc services.InterfaceUserService
	JWTSvc  services.InterfaceJWTService
	Tokens  services.TokenStore
	Logger  *zap.Logger
}

func NewAuthController(userSvc services.InterfaceUserService, jwtSvc services.InterfaceJWTService, tokens services.TokenStore, logger *zap.Logger) *AuthController {
	return &AuthController{UserSvc: userSvc, JWTSvc: jwtSvc, Tokens: tokens, Logger: logger}
}

// Register POST /register
func (ac *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Username, a valid email and a password of at least 6 characters are required")
		return
	}
	username := strings.TrimSpace(payload.Username)
	if username == "" {
		utils.JSONError(c, http.StatusBadRequest, "Username is required")
		return
	}

	user, err := ac.UserSvc.Register(c.Request.Context(), services.RegisterInput{
		Username: username,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respondError(c, ac.Logger, err, "")
		return
	}

	ac.Logger.Info("user registered", zap.Uint("user_id", user.ID))
	utils.JSONMessage(c, http.StatusCreated, "User registered successfully", "user", user)
}

// Login POST /login
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := ac.UserSvc.Authenticate(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(c, ac.Logger, err, "")
		return
	}

	token, _, err := ac.JWTSvc.GenerateToken(user.ID)
	if err != nil {
		respondError(c, ac.Logger, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": user.Username,
	})
}

// Logout POST /logout revokes the presented token until it would have expired.
func (ac *AuthController) Logout(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		utils.JSONError(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	if ttl := claims.Remaining(time.Now()); ttl > 0 && claims.ID != "" {
		if err := ac.Tokens.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
			respondError(c, ac.Logger, err, "")
			return
		}
	}
	utils.JSONMessage(c, http.StatusOK, "Logged out successfully", "", nil)
}

// Me GET /me
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.UserSvc.GetByID(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, ac.Logger, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}
