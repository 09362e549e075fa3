package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// RoleAdmin is required for schema administration routes
const RoleAdmin = "admin"

// Context keys set by Authentication
const (
	SubjectKey = "subject"
	RolesKey   = "roles"
)

// Claims represents JWT claims
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret     string
	TokenDuration time.Duration
	Issuer        string
}

// AuthService issues and validates bearer tokens
type AuthService struct {
	config AuthConfig
}

// NewAuthService creates a new authentication service. It returns nil when
// no secret is configured, which leaves protected routes open.
func NewAuthService(config AuthConfig) *AuthService {
	if config.JWTSecret == "" {
		return nil
	}
	if config.TokenDuration == 0 {
		config.TokenDuration = time.Hour
	}
	if config.Issuer == "" {
		config.Issuer = "serverless-crud-api"
	}
	return &AuthService{config: config}
}

// GenerateToken signs a token for subject with the given roles
func (a *AuthService) GenerateToken(subject string, roles []string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.config.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    a.config.Issuer,
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken validates a JWT token and returns the claims
func (a *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(a.config.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.config.Issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Authentication validates the bearer token and requires one of roles when
// any are given. A nil service disables the check.
func Authentication(logger *logrus.Logger, authService *AuthService, roles ...string) gin.HandlerFunc {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return func(c *gin.Context) {
		if authService == nil {
			c.Next()
			return
		}

		tokenString, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || tokenString == "" {
			abortWith(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"error": err.Error(),
				"path":  c.Request.URL.Path,
			}).Warn("Token validation failed")
			abortWith(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		if len(roles) > 0 && !slices.ContainsFunc(claims.Roles, func(r string) bool {
			return slices.Contains(roles, r)
		}) {
			logger.WithFields(logrus.Fields{
				"subject":        claims.Subject,
				"required_roles": roles,
				"path":           c.Request.URL.Path,
			}).Warn("Authorization failed - insufficient permissions")
			abortWith(c, http.StatusForbidden, "Insufficient permissions")
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Set(RolesKey, claims.Roles)
		c.Next()
	}
}

func abortWith(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
		"error":   true,
	})
}
