package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/app/services"
	"github.com/rct/connect/internal/middleware"
	"github.com/rct/connect/internal/pkg/validation"
)

// AuthController handles registration and login
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

var registerMessages = validation.Messages{
	"Email.required":    "L'email est requis",
	"Email.email":       "Email invalide",
	"Password.required": "Le mot de passe est requis",
	"Password.min":      "Le mot de passe doit contenir au moins 8 caractères",
	"Name.required":     "Le nom est requis",
	"Name.min":          "Le nom doit contenir au moins 2 caractères",
}

var loginMessages = validation.Messages{
	"Email.required":    "L'email est requis",
	"Email.email":       "Email invalide",
	"Password.required": "Le mot de passe est requis",
}

// Register creates a member account and logs it in.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, registerMessages)))
		return
	}

	resp, err := c.authService.Register(&req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// Login verifies credentials and returns a token.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, loginMessages)))
		return
	}

	resp, err := c.authService.Login(&req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Me returns the authenticated user's profile.
func (c *AuthController) Me(ctx *gin.Context) {
	resp, err := c.authService.GetCurrentUser(middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
