package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodfast-user-service/internal/usecase/user"
	"foodfast-user-service/pkg/utils"
)

type AuthHandler struct {
	service *user.Service
}

func NewAuthHandler(service *user.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/register-restaurant", h.RegisterRestaurant)
	}
}

// Register creates a customer account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	sanitizeIdentity(&req.Email, &req.FullName, req.Phone)

	authResponse, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", authResponse)
}

// RegisterRestaurant creates a restaurant account pending approval.
func (h *AuthHandler) RegisterRestaurant(c *gin.Context) {
	var req user.RegisterRestaurantRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	sanitizeIdentity(&req.Email, &req.RestaurantName, req.Phone)
	req.RestaurantAddress = utils.SanitizeString(req.RestaurantAddress)

	response, err := h.service.RegisterRestaurant(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, response.Message, response)
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	authResponse, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", authResponse)
}

func sanitizeIdentity(email, name *string, phone *string) {
	*email = utils.SanitizeEmail(*email)
	*name = utils.SanitizeString(*name)
	if phone != nil {
		*phone = utils.SanitizePhone(*phone)
	}
}
