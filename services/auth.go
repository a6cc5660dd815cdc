package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/perlasplay/bingo-backend/models"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenTTL = 24 * time.Hour

// AuthService issues and verifies the bearer tokens used by both the
// REST API and the websocket endpoints.
type AuthService struct {
	db     *gorm.DB
	secret []byte
}

func NewAuthService(db *gorm.DB, secret string) *AuthService {
	return &AuthService{db: db, secret: []byte(secret)}
}

// Register creates a player account with a bcrypt-hashed password.
func (s *AuthService) Register(name, phone, password string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("phone = ?", phone).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("phone %s already registered", phone)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         models.RolePlayer,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Login checks the password and returns a signed token.
func (s *AuthService) Login(phone, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.IssueToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// IssueToken signs a bearer token carrying the user id and role.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  float64(user.ID),
		"role": string(user.Role),
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// UserFromToken verifies a token and loads its user.
func (s *AuthService) UserFromToken(raw string) (*models.User, error) {
	userID, _, err := s.parseToken(raw)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *AuthService) parseToken(raw string) (uint, models.UserRole, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, "", ErrInvalidCredentials
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidCredentials
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", ErrInvalidCredentials
	}
	role, _ := claims["role"].(string)
	return uint(sub), models.UserRole(role), nil
}
