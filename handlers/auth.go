package handlers

import (
	"net/http"
	"time"

	accountRepo "harmony/database/repository/account"
	"harmony/models"
	"harmony/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves church account registration and login.
type AuthHandler struct {
	Accounts accountRepo.AccountRepository
}

func NewAuthHandler(accounts accountRepo.AccountRepository) *AuthHandler {
	return &AuthHandler{Accounts: accounts}
}

const tokenLifetime = 24 * time.Hour

// RegisterChurch handles POST /api/auth/register.
func (h *AuthHandler) RegisterChurch(c *gin.Context) {
	var input struct {
		ChurchName string `json:"churchName" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if existing, _ := h.Accounts.GetByEmail(c.Request.Context(), input.Email); existing != nil {
		utils.JSONError(c, http.StatusConflict, "registration failed", "an account with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "registration failed", err.Error())
		return
	}

	account := &models.Account{
		ID:           uuid.New().String(),
		ChurchName:   input.ChurchName,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := h.Accounts.Create(c.Request.Context(), account); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "registration failed", err.Error())
		return
	}

	token, err := utils.GenerateToken(account.ID, account.Email, tokenLifetime)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"account": account, "token": token})
}

// LoginChurch handles POST /api/auth/login.
func (h *AuthHandler) LoginChurch(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	account, err := h.Accounts.GetByEmail(c.Request.Context(), input.Email)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "login failed", "invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "login failed", "invalid email or password")
		return
	}

	token, err := utils.GenerateToken(account.ID, account.Email, tokenLifetime)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "login failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account, "token": token})
}
