package router

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONRequest(body string) *Request {
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return &Request{Request: req}
}

func TestDecodeBody(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	require.NoError(t, newJSONRequest(`{"name":"shield"}`).DecodeBody(&dst))
	assert.Equal(t, "shield", dst.Name)
}

func TestDecodeBodyRejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	err := newJSONRequest(`{"name":"shield","extra":1}`).DecodeBody(&dst)
	assert.Error(t, err)
}

func TestDecodeBodyRejectsTrailingData(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	err := newJSONRequest(`{"name":"shield"}{"name":"again"}`).DecodeBody(&dst)
	assert.Error(t, err)
}

func TestDecodeBodyRejectsMalformed(t *testing.T) {
	var dst struct{}

	assert.Error(t, newJSONRequest(`{`).DecodeBody(&dst))
}

func TestGetQuery(t *testing.T) {
	req := httptest.NewRequest("GET", "/?q=%20hello%20", nil)
	r := &Request{Request: req}

	assert.Equal(t, "hello", r.GetQuery("q"))
	assert.Empty(t, r.GetQuery("missing"))
}
