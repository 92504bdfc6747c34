package validation

import (
	"encoding/base64"

	validation "github.com/jellydator/validation"
)

// DecodeBase64 decodes s with the standard alphabet, falling back to the URL-safe one.
func DecodeBase64(s string) ([]byte, error) {
	if raw, err := base64.StdEncoding.DecodeString(s); err == nil {
		return raw, nil
	}
	return base64.URLEncoding.DecodeString(s)
}

// Base64 validates that a string is valid base64-encoded data.
// Both the standard and the URL-safe alphabets are accepted.
var Base64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if _, err := DecodeBase64(s); err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})
