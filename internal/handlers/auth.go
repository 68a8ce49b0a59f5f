package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"hospital-care-server/internal/config"
	"hospital-care-server/internal/models"
	"hospital-care-server/internal/service"
	"hospital-care-server/internal/utils"
)

// AuthHandler handles the public endpoints: registration, login and
// username availability.
type AuthHandler struct {
	Accounts *service.AccountService
	Cfg      *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *service.AccountService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Accounts: accounts, Cfg: cfg}
}

// CheckUsername reports whether a username is still available.
func (h *AuthHandler) CheckUsername(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		utils.BadRequest(c, "username query parameter is required")
		return
	}
	available, err := h.Accounts.IsUsernameAvailable(username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	message := "Username is available."
	if !available {
		message = "Username is already taken. Please choose a different username."
	}
	utils.Success(c, message, gin.H{"username": username, "isAvailable": available})
}

// RegisterPatientRequest represents the request body for patient
// self-registration.
type RegisterPatientRequest struct {
	Username       string     `json:"username" binding:"required,min=3"`
	Password       string     `json:"password" binding:"required,min=8"`
	FullName       string     `json:"fullName" binding:"required"`
	Email          string     `json:"email" binding:"required,email"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Gender         string     `json:"gender"`
	ContactNumber  string     `json:"contactNumber"`
	Address        string     `json:"address"`
	MedicalHistory string     `json:"medicalHistory"`
}

// RegisterPatient handles patient self-registration.
func (h *AuthHandler) RegisterPatient(c *gin.Context) {
	var req RegisterPatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, err := h.Accounts.RegisterPatient(service.PatientRegistration{
		Username:       req.Username,
		Password:       req.Password,
		FullName:       req.FullName,
		Email:          req.Email,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		ContactNumber:  req.ContactNumber,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Created(c, "Patient registered successfully", patient)
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken string               `json:"accessToken"`
	User        models.UserSanitized `json:"user"`
}

// Login handles user login for every role.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.Accounts.Authenticate(req.Username, req.Password)
	if err != nil {
		// Do not reveal whether the username or the password was wrong.
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	token, err := utils.GenerateToken(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Success(c, "Login successful", LoginResponse{
		AccessToken: token,
		User:        user.Sanitize(),
	})
}
