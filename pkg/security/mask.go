// Package security provides helpers for keeping user credentials out of logs.
package security

import (
	"regexp"
)

// scopeCredentialRegex matches the credential half of "service=credential"
// pairs inside a scope string or URL path.
var scopeCredentialRegex = regexp.MustCompile(`=([^|/?&]+)`)

// Mask creates a masked version of a secret for logging (shows only first/last few chars)
func Mask(secret string) string {
	if len(secret) == 0 {
		return "[empty]"
	}

	if len(secret) <= 8 {
		return "[***]"
	}

	return secret[:3] + "..." + secret[len(secret)-3:]
}

// MaskScope masks every credential in a scope string or a URL that embeds one.
func MaskScope(s string) string {
	return scopeCredentialRegex.ReplaceAllStringFunc(s, func(m string) string {
		return "=" + Mask(m[1:])
	})
}
