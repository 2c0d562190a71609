package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quillapi/quill/middleware"
	"github.com/quillapi/quill/models"
	"github.com/quillapi/quill/utils"
)

// AuthController handles signup, signin, and session related endpoints.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// Signup registers a new account with bcrypt hashing and issues a token.
func (a *AuthController) Signup(ctx *gin.Context) {
	type request struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=6"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := a.db.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusBadRequest, "Email already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: hash,
	}

	if err := a.db.Create(&user).Error; err != nil {
		// The unique index closes the pre-check race
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusBadRequest, "Email already exists")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to create user")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, utils.TokenTTL())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to generate token")
		return
	}

	utils.Created(ctx, "User registered successfully", gin.H{
		"user":  sanitizeUserResponse(user),
		"token": token,
	})
}

// Signin verifies user credentials and issues a JWT.
func (a *AuthController) Signin(ctx *gin.Context) {
	type request struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, utils.TokenTTL())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to generate token")
		return
	}

	utils.Success(ctx, "Login successful", gin.H{
		"user":  sanitizeUserResponse(user),
		"token": token,
	})
}

// Me returns the authenticated user's profile.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to load user")
		return
	}

	utils.Success(ctx, "", gin.H{"user": sanitizeUserResponse(user)})
}

// Signout revokes the presented token until its natural expiration.
func (a *AuthController) Signout(ctx *gin.Context) {
	value, exists := ctx.Get(middleware.ContextClaimsKey)
	if !exists {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}
	claims, ok := value.(*utils.Claims)
	if !ok || claims.ExpiresAt == nil {
		utils.Error(ctx, http.StatusUnauthorized, "invalid token claims")
		return
	}

	utils.BlacklistToken(claims.ID, claims.ExpiresAt.Time)
	utils.Success(ctx, "Signed out successfully", nil)
}

// sanitizeUserResponse exposes only public identity fields, never the hash.
func sanitizeUserResponse(user models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	}
}
