package handlers

import (
	"net/http"
	"strconv"

	"github.com/Pratik-911/skillswap/models"
	userService "github.com/Pratik-911/skillswap/services/user"
	"github.com/Pratik-911/skillswap/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes registration, authentication and profile endpoints.
type UserHandler struct {
	Service userService.UserService
}

// NewUserHandler creates a UserHandler backed by the given service.
func NewUserHandler(svc userService.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

type registerRequest struct {
	Name          string   `json:"name" binding:"required,min=2"`
	Email         string   `json:"email" binding:"required,email"`
	Password      string   `json:"password" binding:"required,min=6"`
	Bio           string   `json:"bio" binding:"omitempty,max=500"`
	Location      string   `json:"location"`
	SkillsToTeach []string `json:"skillsToTeach"`
	SkillsToLearn []string `json:"skillsToLearn"`
}

// RegisterHandler handles POST /api/users/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.RegisterUser(c.Request.Context(), models.User{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Bio:           req.Bio,
		Location:      req.Location,
		SkillsToTeach: req.SkillsToTeach,
		SkillsToLearn: req.SkillsToLearn,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler handles POST /api/users/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Login failures are reported uniformly to avoid leaking which part
		// of the credentials was wrong.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfileHandler handles GET /api/users/profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	usr, err := h.Service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": usr})
}

// UpdateProfileHandler handles PUT /api/users/profile.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req userService.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	usr, err := h.Service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": usr})
}

// SearchHandler handles GET /api/users/search.
func (h *UserHandler) SearchHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	skill := c.Query("skill")
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	result, err := h.Service.SearchBySkill(c.Request.Context(), userID, skill, page, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RevokeTokenHandler handles DELETE /api/users/revoke.
func (h *UserHandler) RevokeTokenHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.Service.RevokeToken(c.Request.Context(), userID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token revoked"})
}
