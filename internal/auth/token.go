package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"schooladmin.com/internal/domain"
	"schooladmin.com/internal/model"
)

// Claims 令牌载荷：用户标识、用户名、角色，外加标准的签发/过期时间。
type Claims struct {
	jwt.RegisteredClaims
	UserID   uint       `json:"userId"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

// TokenService signs and verifies compact HS256 tokens.
// The secret is process-wide configuration; rotating it silently
// invalidates every outstanding token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue 为用户签发令牌
func (s *TokenService) Issue(user *model.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	return token.SignedString(s.secret)
}

// Verify 校验令牌并返回载荷。格式错误、签名不符、已过期一律返回
// domain.ErrInvalidToken，调用方无法区分失败原因。
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
