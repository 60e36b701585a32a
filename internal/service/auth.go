package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MakarovPetr2004/foodgram-project-react/internal/middleware"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/models"
)

const tokenTTL = 24 * time.Hour

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	redis     *redis.Client
}

// NewAuthService creates an AuthService. The Redis client is optional; when
// present it backs the logout token denylist.
func NewAuthService(db *gorm.DB, jwtSecret string, redisClient *redis.Client) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		redis:     redisClient,
	}
}

func (s *AuthService) Register(email, username, firstName, lastName, password string) (string, error) {
	var existing models.User
	err := s.db.Where("email = ? OR username = ?", email, username).First(&existing).Error
	if err == nil {
		return "", ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := models.User{
		Email:        email,
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hashedPassword),
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrUserExists
		}
		return "", err
	}

	return s.generateToken(user.ID)
}

func (s *AuthService) Login(email, password string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateToken(user.ID)
}

// Logout revokes the token until its natural expiry. Without a Redis client
// logout is a no-op on the server side.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Set(ctx, denylistKey(token), "1", tokenTTL).Err()
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) generateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	if s.redis != nil {
		revoked, err := s.redis.Exists(context.Background(), denylistKey(tokenString)).Result()
		if err == nil && revoked > 0 {
			return nil, errors.New("token revoked")
		}
	}

	return &middleware.TokenClaims{UserID: uint(userID)}, nil
}

func denylistKey(token string) string {
	return "auth:denylist:" + token
}
