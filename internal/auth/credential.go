// Package auth handles admin login and the cookie-based bearer credential.
package auth

import "context"

// Credential is the opaque bearer token for one admin session. Remote clients
// take it as an explicit parameter so the authorization dependency is visible
// at every call site; it is immutable for the lifetime of a request.
type Credential string

// Header returns the value for an Authorization header.
func (c Credential) Header() string {
	return "Bearer " + string(c)
}

type contextKey string

const credentialKey contextKey = "credential"

// WithCredential returns a context carrying the session credential.
func WithCredential(ctx context.Context, cred Credential) context.Context {
	return context.WithValue(ctx, credentialKey, cred)
}

// CredentialFrom extracts the session credential from a context.
func CredentialFrom(ctx context.Context) (Credential, bool) {
	cred, ok := ctx.Value(credentialKey).(Credential)
	return cred, ok && cred != ""
}
