package auth

import "strings"

// BearerScheme is the only Authorization scheme the gate accepts.
const BearerScheme = "Bearer"

// ExtractBearer returns the credential carried by an Authorization header
// value. present is false only when the header is absent (empty). A header in
// any shape other than "Bearer <credential>" yields an empty credential so the
// codec rejects it as malformed.
func ExtractBearer(header string) (credential string, present bool) {
	if header == "" {
		return "", false
	}
	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, BearerScheme) {
		return "", true
	}
	return rest, true
}

// BearerValue formats a token the way clients send it back.
func BearerValue(token string) string {
	return BearerScheme + " " + token
}
