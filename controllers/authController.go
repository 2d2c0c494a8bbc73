package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Kariqs/agent-orders-api/initializers"
	"github.com/Kariqs/agent-orders-api/models"
	"github.com/Kariqs/agent-orders-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgMissingCredentials    = "username and password are required"
	msgInvalidCredentials    = "invalid username or password"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgUserNotFound          = "user not found"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func generateJWT(user models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(initializers.Cfg.TokenTTL).Unix(),
	})
	return token.SignedString([]byte(initializers.Cfg.JWTSecret))
}

func findUserByUsername(username string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("username = ?", username).First(&user)
	return user, result.Error
}

// Login handles user authentication
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	username := strings.TrimSpace(loginData.Username)
	if username == "" || loginData.Password == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msgMissingCredentials)
		return
	}

	user, err := findUserByUsername(username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.S().Errorf("Login lookup failed: %v", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if err := utils.ComparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		zap.S().Errorf("JWT generation error: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString, "user": user})
}

// Me returns the user behind the bearer token.
func Me(ctx *gin.Context) {
	claims, _ := ctx.Get("user")
	mapClaims, _ := claims.(jwt.MapClaims)

	var user models.User
	if err := initializers.DB.First(&user, cast.ToUint(mapClaims["user_id"])).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusUnauthorized, msgUserNotFound)
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}
