package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecaptchaRequiresSecret(t *testing.T) {
	_, err := NewRecaptcha(RecaptchaConfig{})
	assert.ErrorIs(t, err, ErrSecretKeyRequired)
}

func TestRecaptchaVerifySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "secret-key", r.PostForm.Get("secret"))
		assert.Equal(t, "tok", r.PostForm.Get("response"))
		assert.Equal(t, "203.0.113.9", r.PostForm.Get("remoteip"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c, err := NewRecaptcha(RecaptchaConfig{SecretKey: "secret-key", SiteVerifyURL: srv.URL})
	require.NoError(t, err)

	ok, err := c.Verify(context.Background(), "tok", "203.0.113.9")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRecaptchaVerifyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
	defer srv.Close()

	c, err := NewRecaptcha(RecaptchaConfig{SecretKey: "secret-key", SiteVerifyURL: srv.URL})
	require.NoError(t, err)

	ok, err := c.Verify(context.Background(), "tok", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecaptchaVerifyProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := NewRecaptcha(RecaptchaConfig{SecretKey: "secret-key", SiteVerifyURL: srv.URL})
	require.NoError(t, err)

	ok, err := c.Verify(context.Background(), "tok", "")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRecaptchaVerifyBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c, err := NewRecaptcha(RecaptchaConfig{SecretKey: "secret-key", SiteVerifyURL: srv.URL})
	require.NoError(t, err)

	ok, err := c.Verify(context.Background(), "tok", "")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRecaptchaVerifyUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c, err := NewRecaptcha(RecaptchaConfig{SecretKey: "secret-key", SiteVerifyURL: srv.URL})
	require.NoError(t, err)

	ok, err := c.Verify(context.Background(), "tok", "")
	assert.Error(t, err)
	assert.False(t, ok)
}
