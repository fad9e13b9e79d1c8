package user

const (
	pwdMinLen = 8

	pwdPolicyText   = "must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, and one number"
	invalidRoleText = "must be either 'mentor' or 'student'"
)

// ValidatePassword applies the password policy:
// - minLen: 8
// - at least 1 ASCII uppercase letter
// - at least 1 ASCII lowercase letter
// - at least 1 decimal digit
// There is no maximum length and no character-set exclusions.
func ValidatePassword(pwd string) bool {
	if len(pwd) < pwdMinLen {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, char := range pwd {
		switch {
		case 'A' <= char && char <= 'Z':
			hasUpper = true
		case 'a' <= char && char <= 'z':
			hasLower = true
		case '0' <= char && char <= '9':
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
