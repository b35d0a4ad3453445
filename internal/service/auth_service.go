package service

import (
	"errors"

	"fleet-service/internal/apperr"
	"fleet-service/internal/model"
	"fleet-service/pkg/jwtutil"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult is the claims surface returned to a caller on successful
// login, next to the issued token
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	User        LoginUser `json:"user"`
}

// LoginUser mirrors the identity claims embedded in the token
type LoginUser struct {
	Sub        uint   `json:"sub"`
	UserID     uint   `json:"userId"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	CompanyRef *uint  `json:"companyRef,omitempty"`
}

// UserFinder is the narrow view of the user component needed for login
type UserFinder interface {
	FindByLogin(login string) (*model.User, error)
}

// AuthService resolves credentials into identity tokens
type AuthService struct {
	users  UserFinder
	jwt    *jwtutil.JWTUtil
	logger *zap.Logger
}

// NewAuthService wires the auth component
func NewAuthService(users UserFinder, jwt *jwtutil.JWTUtil, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwt, logger: logger}
}

// Login verifies the credentials and issues a signed token carrying the
// identity claims. Wrong login and wrong password are indistinguishable to
// the caller.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	user, err := s.users.FindByLogin(username)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			s.logger.Error("Login for unknown user", zap.String("login", username))
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Error("Invalid password", zap.String("login", username))
		return nil, apperr.ErrInvalidCredentials
	}

	companyRef := user.CompanyRef
	token, err := s.jwt.GenerateToken(user.ID, user.Name, user.Role, &companyRef)
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, err
	}

	return &LoginResult{
		AccessToken: token,
		User: LoginUser{
			Sub:        user.ID,
			UserID:     user.ID,
			Name:       user.Name,
			Role:       user.Role,
			CompanyRef: &companyRef,
		},
	}, nil
}
