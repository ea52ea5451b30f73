package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the work factor the deployment config defaults to.
const DefaultBcryptCost = 12

// HashPassword 对明文密码做加盐单向哈希。cost 不合法时回退到默认值。
// 失败时只返回哈希库的错误，绝不记录明文。
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword 校验明文密码与哈希是否匹配。
func CheckPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
