package api

import (
	"regexp"
	"unicode"

	"schooladmin.com/internal/model"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// validateRegister 校验注册请求，返回逐字段错误。任何错误都意味着
// 后续流程不会访问存储。
func validateRegister(req *RegisterRequest) []FieldError {
	var errs []FieldError

	if len(req.Username) < 3 || len(req.Username) > 20 {
		errs = append(errs, FieldError{Field: "username", Message: "用户名长度必须在3-20个字符之间"})
	} else if !usernameRe.MatchString(req.Username) {
		errs = append(errs, FieldError{Field: "username", Message: "用户名只能包含字母、数字和下划线"})
	}

	if !emailRe.MatchString(req.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "请输入有效的邮箱地址"})
	}

	if len(req.Password) < 6 {
		errs = append(errs, FieldError{Field: "password", Message: "密码长度至少6个字符"})
	} else if !passwordComplexEnough(req.Password) {
		errs = append(errs, FieldError{Field: "password", Message: "密码必须包含大小写字母和数字"})
	}

	if req.Role != "" && !model.Role(req.Role).Valid() {
		errs = append(errs, FieldError{Field: "role", Message: "无效的用户角色"})
	}

	return errs
}

// passwordComplexEnough 要求同时包含小写字母、大写字母和数字
func passwordComplexEnough(password string) bool {
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

func validateLogin(req *LoginRequest) []FieldError {
	var errs []FieldError
	if req.Username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "用户名不能为空"})
	}
	if req.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "密码不能为空"})
	}
	return errs
}
