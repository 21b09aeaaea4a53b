package validation

import (
	"regexp"
)

// Messages used by the phone and national code rules.
const (
	PhoneNumberMessage  = "Phone number is not valid."
	NationalCodeMessage = "National code is not valid."
)

var (
	phonePattern        = regexp.MustCompile(`^0\d{10}$`)
	nationalCodePattern = regexp.MustCompile(`^\d{10}$`)
)

// IsPhoneNumber reports whether s is an 11-digit number starting with 0.
func IsPhoneNumber(s string) bool {
	return phonePattern.MatchString(s)
}

// IsNationalCode reports whether s is a valid Iranian national code: ten
// digits whose last digit is the mod-11 check digit of the first nine.
func IsNationalCode(s string) bool {
	if !nationalCodePattern.MatchString(s) {
		return false
	}

	check := int(s[9] - '0')
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(s[i]-'0') * (10 - i)
	}
	remainder := sum % 11

	if remainder < 2 {
		return check == remainder
	}
	return check == 11-remainder
}
