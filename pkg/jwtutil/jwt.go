package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"fleet-service/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

// Claims represents the identity carried by a signed token: who the user
// is, their role, and the company (tenant) they belong to. Admin users
// created outside any company carry no company_ref.
type Claims struct {
	UserID     uint   `json:"user_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	CompanyRef *uint  `json:"company_ref,omitempty"`
	jwt.RegisteredClaims
}

// JWTUtil issues and validates identity tokens
type JWTUtil struct {
	config *config.JWTConfig
}

// NewJWTUtil creates a new JWT utility with the given configuration
func NewJWTUtil(config *config.JWTConfig) *JWTUtil {
	return &JWTUtil{config: config}
}

// GenerateToken creates a signed token embedding the identity claims.
// Expiry is a fixed policy duration from issuance, never caller-supplied.
func (j *JWTUtil) GenerateToken(userID uint, name, role string, companyRef *uint) (string, error) {
	if j.config == nil {
		return "", errors.New("JWT configuration not provided")
	}

	claims := Claims{
		UserID:     userID,
		Name:       name,
		Role:       role,
		CompanyRef: companyRef,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(j.config.ExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.config.SigningKey))
}

// ValidateToken validates and parses the token. Any structural, signature
// or expiry failure returns an error; there is no anonymous fallback.
func (j *JWTUtil) ValidateToken(tokenString string) (*Claims, error) {
	if j.config == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(j.config.SigningKey), nil
		},
	)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
