package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/arnavshah/sandwich-orders-api/pkg/database"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidKeyFormat = errors.New("invalid key format")
	ErrInvalidSignature = errors.New("invalid signature")
)

var jwtAlgorithm = jwt.SigningMethodHS256

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Authenticator signs admin tokens and family API keys
type Authenticator struct {
	jwtSecret    []byte
	masterSecret []byte
	bcryptCost   int
	tokenTTL     time.Duration
}

// New creates an Authenticator from the JWT and API master secrets
func New(jwtSecret, masterSecret string) *Authenticator {
	return &Authenticator{
		jwtSecret:    []byte(jwtSecret),
		masterSecret: []byte(masterSecret),
		bcryptCost:   14,
		tokenTTL:     24 * time.Hour,
	}
}

// WithBcryptCost lowers hashing cost, for tests
func (a *Authenticator) WithBcryptCost(cost int) *Authenticator {
	a.bcryptCost = cost
	return a
}

// HashPassword hashes a password using bcrypt
func (a *Authenticator) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateToken creates a new JWT token for an admin
func (a *Authenticator) CreateToken(username string) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(a.jwtSecret)
}

// VerifyToken verifies a JWT token
func (a *Authenticator) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwtAlgorithm {
			return nil, ErrInvalidToken
		}
		return a.jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// EnsureAdminExists creates the first admin when the master_users table is empty
func (a *Authenticator) EnsureAdminExists(db *gorm.DB, username, password string) (bool, error) {
	var count int64
	if err := db.Model(&database.MasterUser{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := a.HashPassword(password)
	if err != nil {
		return false, err
	}

	user := database.MasterUser{
		Username:     username,
		PasswordHash: hash,
	}
	if err := db.Create(&user).Error; err != nil {
		return false, err
	}
	return true, nil
}

// GenerateHMACKey creates a signed API key for an account using HMAC-SHA256
func (a *Authenticator) GenerateHMACKey(accountID string) string {
	return accountID + "." + a.sign(accountID)
}

// VerifyHMACKey validates an HMAC-signed API key and returns its account ID
func (a *Authenticator) VerifyHMACKey(key string) (string, error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 || parts[0] == "" {
		return "", ErrInvalidKeyFormat
	}

	accountID := parts[0]
	// constant-time comparison
	if !hmac.Equal([]byte(parts[1]), []byte(a.sign(accountID))) {
		return "", ErrInvalidSignature
	}

	return accountID, nil
}

func (a *Authenticator) sign(accountID string) string {
	h := hmac.New(sha256.New, a.masterSecret)
	h.Write([]byte(accountID))
	return hex.EncodeToString(h.Sum(nil))
}

// KeyPreview masks all but the edges of a key
func KeyPreview(key string) string {
	if len(key) > 8 {
		return key[:3] + "..." + key[len(key)-4:]
	}
	return "****"
}
