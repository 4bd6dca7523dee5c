package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
)

// TokenManager выпускает и проверяет access токены. Учётные записи ведёт
// внешний провайдер, сервис только подписывает и читает клеймы.
type TokenManager struct {
	accessSecret []byte
	accessTTL    time.Duration
}

// NewTokenManager создаёт менеджер токенов.
func NewTokenManager(accessSecret string, accessTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret: []byte(accessSecret),
		accessTTL:    accessTTL,
	}
}

// GenerateAccess выпускает access токен для пользователя.
func (m *TokenManager) GenerateAccess(userID uuid.UUID, role valueobject.Role) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.accessSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccess извлекает пользователя и роль из access токена.
func (m *TokenManager) ParseAccess(token string) (valueobject.Caller, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return m.accessSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return valueobject.Caller{}, err
	}
	if !parsed.Valid {
		return valueobject.Caller{}, jwt.ErrTokenInvalidClaims
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return valueobject.Caller{}, jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return valueobject.Caller{}, jwt.ErrTokenInvalidClaims
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return valueobject.Caller{}, errors.Join(jwt.ErrTokenInvalidClaims, err)
	}

	role := valueobject.RoleUser
	if r, _ := claims["role"].(string); r == string(valueobject.RoleAdmin) {
		role = valueobject.RoleAdmin
	}

	return valueobject.Caller{ID: userID, Role: role}, nil
}
