package auth

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

// PasswordSpecialChars is the fixed set an acceptable password must draw at
// least one character from.
const PasswordSpecialChars = `!@#$%^&*(),.?":{}|<>`

var (
	passwordUpperRe   = regexp.MustCompile(`[A-Z]`)
	passwordLowerRe   = regexp.MustCompile(`[a-z]`)
	passwordDigitRe   = regexp.MustCompile(`[0-9]`)
	passwordSpecialRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// ValidatePasswordStrength checks a candidate password against the league
// policy: length in [8,100] and at least one uppercase letter, one lowercase
// letter, one digit, and one special character. The returned error names the
// first unmet rule.
func ValidatePasswordStrength(password string) error {
	err := validation.Validate(password,
		validation.Required.Error("password is required"),
		validation.RuneLength(8, 100).Error("password must be between 8 and 100 characters"),
		validation.Match(passwordUpperRe).Error("password must contain at least one uppercase letter"),
		validation.Match(passwordLowerRe).Error("password must contain at least one lowercase letter"),
		validation.Match(passwordDigitRe).Error("password must contain at least one digit"),
		validation.Match(passwordSpecialRe).Error("password must contain at least one special character ("+PasswordSpecialChars+")"),
	)
	if err != nil {
		return passwordPolicyError(err.Error())
	}
	return nil
}
