package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultSiteVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// ErrSecretKeyRequired is returned when the provider secret key is missing.
var ErrSecretKeyRequired = errors.New("captcha: secret key is required")

// RecaptchaConfig configures the Google reCAPTCHA v2 verifier.
type RecaptchaConfig struct {
	// SecretKey is the server-side key shared with the provider.
	SecretKey string

	// SiteVerifyURL overrides the provider endpoint, mainly for tests.
	SiteVerifyURL string

	// HTTPClient overrides the client used to call the provider.
	HTTPClient *http.Client
}

// Recaptcha verifies tokens against Google reCAPTCHA v2 siteverify.
//
// A single verification attempt is made per call. The provider already
// treats tokens as single-use, so retrying a failed call can never turn
// a denial into a success.
type Recaptcha struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

// NewRecaptcha constructs a Recaptcha verifier.
func NewRecaptcha(cfg RecaptchaConfig) (*Recaptcha, error) {
	if cfg.SecretKey == "" {
		return nil, ErrSecretKeyRequired
	}

	verifyURL := cfg.SiteVerifyURL
	if verifyURL == "" {
		verifyURL = defaultSiteVerifyURL
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &Recaptcha{
		secretKey: cfg.SecretKey,
		verifyURL: verifyURL,
		client:    client,
	}, nil
}

type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify calls the provider once and returns its success verdict.
func (c *Recaptcha) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	form := url.Values{}
	form.Set("secret", c.secretKey)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("captcha: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha: call provider: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha: provider returned status %d", resp.StatusCode)
	}

	var body siteVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("captcha: decode response: %w", err)
	}

	return body.Success, nil
}
