// Package captcha verifies human-presence challenge tokens against an
// external provider.
package captcha

import "context"

// Verifier checks a challenge token issued by a captcha provider.
type Verifier interface {
	// Verify returns true only when the provider confirms the token.
	// Any transport or decoding failure is returned as an error and must
	// be treated as a denial by callers.
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}
