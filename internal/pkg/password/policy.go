package password

import (
	"errors"

	"github.com/dlclark/regexp2"
)

// At least 10 characters with one letter, one digit and one symbol.
const policyPattern = `^(?=.*[A-Za-z])(?=.*\d)(?=.*[^A-Za-z\d]).{10,}$`

var (
	ErrWeakPassword = errors.New("the password must be at least 10 characters and contain 1 letter, 1 number and 1 symbol")

	policy = regexp2.MustCompile(policyPattern, regexp2.None)
)

func CheckPolicy(password string) error {
	ok, err := policy.MatchString(password)
	if err != nil || !ok {
		return ErrWeakPassword
	}

	return nil
}
