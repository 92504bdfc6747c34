// Package http wires the access gate into gin routes.
package http

import (
	"context"
	"net/http"

	rbacDomain "github.com/allisson/ros/internal/rbac/domain"
)

// credentialKey is a context key type for storing the caller credential.
type credentialKey struct{}

// decisionKey is a context key type for storing the gate decision.
type decisionKey struct{}

// ExtractCredential returns the identity header value of a request.
// Header names are matched case-insensitively. An empty value counts as absent.
func ExtractCredential(header http.Header) (rbacDomain.Credential, bool) {
	value := header.Get(rbacDomain.IdentityHeader)
	if value == "" {
		return "", false
	}
	return rbacDomain.Credential(value), true
}

// WithCredential stores the caller credential in the context.
func WithCredential(ctx context.Context, credential rbacDomain.Credential) context.Context {
	return context.WithValue(ctx, credentialKey{}, credential)
}

// GetCredential retrieves the caller credential stored by RequirePermissions.
// Returns ("", false) when the request was not gated or carried no identity.
func GetCredential(ctx context.Context) (rbacDomain.Credential, bool) {
	credential, ok := ctx.Value(credentialKey{}).(rbacDomain.Credential)
	return credential, ok && credential != ""
}

// WithDecision stores the gate decision in the context.
func WithDecision(ctx context.Context, decision rbacDomain.Decision) context.Context {
	return context.WithValue(ctx, decisionKey{}, decision)
}

// GetDecision retrieves the gate decision that let the request through.
func GetDecision(ctx context.Context) (rbacDomain.Decision, bool) {
	decision, ok := ctx.Value(decisionKey{}).(rbacDomain.Decision)
	return decision, ok
}
