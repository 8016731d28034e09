package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"staybooking/pkg/models"
)

const (
	userIDClaim = "user-id"
	emailClaim  = "email"
	expClaim    = "exp"

	userIDKey = "userID"

	tokenTTL = 24 * time.Hour
)

func register(c *gin.Context) {
	var req models.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if !strings.Contains(req.Email, "@") {
		c.String(http.StatusBadRequest, "Invalid email format")
		return
	}

	var existing models.AccountRecord
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		c.String(http.StatusBadRequest, "Email taken")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to hash password")
		return
	}
	account := models.AccountRecord{Email: req.Email, Name: req.Name, PasswordHash: hash}
	if err := db.Create(&account).Error; err != nil {
		c.String(http.StatusInternalServerError, "failed to create account")
		return
	}
	log.Printf("Registered account %d (%s)", account.ID, account.Email)

	respondWithToken(c, account)
}

func login(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}

	var account models.AccountRecord
	if err := db.Where("email = ?", strings.TrimSpace(req.Email)).First(&account).Error; err != nil {
		c.String(http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !verifyPassword(account.PasswordHash, req.Password) {
		c.String(http.StatusUnauthorized, "Invalid credentials")
		return
	}

	respondWithToken(c, account)
}

func respondWithToken(c *gin.Context, account models.AccountRecord) {
	token, err := createToken(account, tokenTTL)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to create token")
		return
	}
	c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: account.ToModel()})
}

// authRequired resolves the bearer token to a user id. Missing or invalid
// tokens get 403 so clients can tell them apart from a failed login.
func authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer"))
		if raw == "" {
			c.String(http.StatusForbidden, "Authentication required")
			c.Abort()
			return
		}
		userID, err := userIDFromToken(raw)
		if err != nil {
			log.Printf("Rejected bearer token: %v", err)
			c.String(http.StatusForbidden, "Authentication required")
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

func hashPassword(passwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passwd), bcrypt.DefaultCost)
	return string(hash), err
}

func verifyPassword(hash, passwd string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passwd)) == nil
}

func createToken(account models.AccountRecord, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		userIDClaim: account.ID,
		emailClaim:  account.Email,
		expClaim:    time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(signingKey)
}

func userIDFromToken(raw string) (int64, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return signingKey, nil
	})
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}
	id, ok := claims[userIDClaim].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid user id claim")
	}
	return int64(id), nil
}
