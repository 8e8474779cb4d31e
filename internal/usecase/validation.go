package usecase

import (
	"regexp"
	"strings"
)

var zipCodePattern = regexp.MustCompile(`^\d{5}$`)

func isValidZipCode(zip string) bool {
	return zipCodePattern.MatchString(zip)
}

// ValidateZipCode accepts exactly five ASCII digits.
func ValidateZipCode(zip string) error {
	if !isValidZipCode(zip) {
		return &DomainError{Code: CodeValidation, Message: "Valid 5-digit ZIP code required"}
	}
	return nil
}

// requireZipCode only checks presence; the send endpoints do not validate
// the format.
func requireZipCode(zip string) error {
	if strings.TrimSpace(zip) == "" {
		return &DomainError{Code: CodeValidation, Message: "zip_code is required"}
	}
	return nil
}
