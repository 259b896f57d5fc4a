package utils

import (
	"encoding/base64"
	"regexp"
)

var (
	accountIDRegex   = regexp.MustCompile(`^[a-zA-Z0-9:_\-.]{1,128}$`)
	candidateIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-.]{1,64}$`)
	base64URLRegex   = regexp.MustCompile(`^[a-zA-Z0-9\-_]*={0,2}$`)
)

// IsValidAccountID checks the account id charset and length.
func IsValidAccountID(id string) bool {
	return accountIDRegex.MatchString(id)
}

// IsValidCandidateID checks an implementation version name.
func IsValidCandidateID(id string) bool {
	return candidateIDRegex.MatchString(id)
}

// IsBase64URLEncoded checks if the given string is a valid URL-safe Base64 string.
// Note: it does not check the actual content of the string.
func IsBase64URLEncoded(s string) bool {
	// Check if the string length is a multiple of 4.
	if len(s)%4 != 0 {
		return false
	}

	if !base64URLRegex.MatchString(s) {
		return false
	}

	_, err := base64.URLEncoding.DecodeString(s)
	return err == nil
}
