// Package identity decodes the caller identity carried in the X-RH-IDENTITY header.
//
// The access gate treats the header as an opaque credential. Handlers that need
// to scope data to an organization decode it here.
package identity

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/ros/internal/errors"
	customValidation "github.com/allisson/ros/internal/validation"
)

// ErrInvalidIdentity means the header could not be decoded into a usable identity.
var ErrInvalidIdentity = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid identity")

// User describes a human caller.
type User struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	IsActive   bool   `json:"is_active"`
	IsOrgAdmin bool   `json:"is_org_admin"`
	IsInternal bool   `json:"is_internal"`
	Locale     string `json:"locale"`
}

// Internal holds platform-populated attributes.
type Internal struct {
	OrgID string `json:"org_id"`
}

// Identity is the decoded caller.
type Identity struct {
	AccountNumber string   `json:"account_number"`
	OrgID         string   `json:"org_id"`
	Type          string   `json:"type"`
	User          *User    `json:"user,omitempty"`
	Internal      Internal `json:"internal"`
}

// envelope is the JSON document encoded in the header.
type envelope struct {
	Identity *Identity `json:"identity"`
}

// Organization returns the org id, falling back to the internal one.
func (i *Identity) Organization() string {
	if i.OrgID != "" {
		return i.OrgID
	}
	return i.Internal.OrgID
}

// Validate checks that the identity can scope queries.
func (i *Identity) Validate() error {
	org := i.Organization()
	return validation.Errors{
		"org_id": validation.Validate(org, validation.Required, customValidation.NotBlank),
	}.Filter()
}

// Decode parses a base64 encoded identity document.
func Decode(header string) (*Identity, error) {
	raw, err := customValidation.DecodeBase64(strings.TrimSpace(header))
	if err != nil {
		return nil, apperrors.Wrap(ErrInvalidIdentity, "malformed base64")
	}

	var doc envelope
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperrors.Wrap(ErrInvalidIdentity, "malformed json")
	}
	if doc.Identity == nil {
		return nil, apperrors.Wrap(ErrInvalidIdentity, "missing identity object")
	}
	if err := doc.Identity.Validate(); err != nil {
		return nil, apperrors.Wrap(ErrInvalidIdentity, err.Error())
	}

	return doc.Identity, nil
}

// Encode is the inverse of Decode. Used by tooling and tests.
func Encode(identity *Identity) (string, error) {
	raw, err := json.Marshal(envelope{Identity: identity})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
