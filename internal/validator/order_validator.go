package validator

import (
	"regexp"
	"strings"
)

// FieldError はフォーム入力の問題1件。呼び出し側が全件まとめて表示できる形
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	// 簡易メール形式
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// 郵便番号は3桁か4桁
	zipPattern = regexp.MustCompile(`^[0-9]{3,4}$`)
)

type CustomerInput struct {
	Email         string
	FirstName     string
	LastName      string
	StreetAddress string
	ZipCode       string
	City          string
}

// ValidateCustomer は見つけた問題を全部返す（最初の1件で打ち切らない）
func ValidateCustomer(in CustomerInput) []FieldError {
	errs := []FieldError{}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if !emailPattern.MatchString(email) {
		errs = append(errs, FieldError{Field: "email", Message: "email is not valid"})
	}

	if strings.TrimSpace(in.FirstName) == "" {
		errs = append(errs, FieldError{Field: "first_name", Message: "first name is required"})
	}
	if strings.TrimSpace(in.LastName) == "" {
		errs = append(errs, FieldError{Field: "last_name", Message: "last name is required"})
	}
	if strings.TrimSpace(in.StreetAddress) == "" {
		errs = append(errs, FieldError{Field: "street_address", Message: "street address is required"})
	}

	zip := strings.TrimSpace(in.ZipCode)
	if zip == "" {
		errs = append(errs, FieldError{Field: "zip_code", Message: "zip code is required"})
	} else if !zipPattern.MatchString(zip) {
		errs = append(errs, FieldError{Field: "zip_code", Message: "zip code must be 3 or 4 digits"})
	}

	if strings.TrimSpace(in.City) == "" {
		errs = append(errs, FieldError{Field: "city", Message: "city is required"})
	}

	return errs
}
