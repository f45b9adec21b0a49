package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/simonkvalheim/reducer-bank/internal/model"
)

const (
	// Issuer is set on every token this service signs
	Issuer = "reducer-bank"
	// OperatorSubject identifies the single operator of the account widget
	OperatorSubject = "operator"
)

// Config holds authentication configuration
type Config struct {
	JWTSecret         []byte        // Secret key for signing tokens
	AccessTokenExpiry time.Duration // How long access tokens are valid
}

// DefaultConfig returns sensible defaults
func DefaultConfig(jwtSecret string) Config {
	return Config{
		JWTSecret:         []byte(jwtSecret),
		AccessTokenExpiry: 15 * time.Minute,
	}
}

// Claims represents the JWT payload
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

// Token is an issued access token
type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
}

// Service handles authentication operations
type Service struct {
	config       Config
	passwordHash []byte
	now          func() time.Time
}

// NewService creates a new auth service for the given operator password.
// Only the bcrypt hash of the password is kept.
func NewService(config Config, operatorPassword string) (*Service, error) {
	if operatorPassword == "" {
		return nil, model.ErrAuthDisabled
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(operatorPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash operator password: %w", err)
	}

	return &Service{
		config:       config,
		passwordHash: hash,
		now:          time.Now,
	}, nil
}

// Login checks the operator password and returns an access token
func (s *Service) Login(ctx context.Context, password string) (*Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.generateToken()
}

// ValidateToken parses and validates a JWT token
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.config.JWTSecret, nil
	}, jwt.WithIssuer(Issuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.TokenType != "access" {
		return nil, errors.New("invalid token type")
	}

	return claims, nil
}

// generateToken creates a signed access token for the operator
func (s *Service) generateToken() (*Token, error) {
	now := s.now()
	expiry := now.Add(s.config.AccessTokenExpiry)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   OperatorSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			Issuer:    Issuer,
		},
		TokenType: "access",
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.config.JWTSecret)
	if err != nil {
		return nil, err
	}

	return &Token{
		AccessToken: signed,
		ExpiresAt:   expiry,
		TokenType:   "Bearer",
	}, nil
}
