package userservice

import (
	"regexp"

	"github.com/sushihentaime/folio/internal/common"
)

var (
	UsernameRX  = regexp.MustCompile("^[a-zA-Z0-9]+$")
	UppercaseRX = regexp.MustCompile("[A-Z]")
	LowercaseRX = regexp.MustCompile("[a-z]")
	NumberRX    = regexp.MustCompile("[0-9]")
	SymbolRX    = regexp.MustCompile(`[#?!@$%^&*_\\-]`)
	// tokens are 16 random bytes in unpadded base32
	TokenRX = regexp.MustCompile("^[A-Z2-7]{26}$")
)

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(v.CheckStringLength(username, 3, 25), "username", "must be between 3 and 25 characters long")
	v.Check(UsernameRX.MatchString(username), "username", "must only contain letters and numbers")
}

func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	strong := v.CheckStringLength(password, 8, 72) &&
		UppercaseRX.MatchString(password) &&
		LowercaseRX.MatchString(password) &&
		NumberRX.MatchString(password) &&
		SymbolRX.MatchString(password)
	v.Check(strong, "password", "must be between 8 and 72 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one symbol")
}

// validateLogin only checks presence; wrong credentials are reported as an
// authentication failure.
func validateLogin(v *common.Validator, username, password string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(password != "", "password", "must be provided")
}

func ValidateToken(v *common.Validator, token string) {
	v.Check(token != "", "token", "must be provided")
	v.Check(TokenRX.MatchString(token), "token", "invalid token")
}
