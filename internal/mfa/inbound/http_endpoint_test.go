package inbound

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/goshield/internal/mfa/entity"
	"github.com/shandysiswandi/goshield/internal/mfa/usecase"
	"github.com/shandysiswandi/goshield/internal/pkg/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUC struct {
	captchaIn   *usecase.CaptchaVerifyInput
	enrollIn    *usecase.EnrollInput
	confirmIn   *usecase.EnrollConfirmInput
	challengeIn *usecase.ChallengeInput
	verifyIn    *usecase.ChallengeVerifyInput

	statusOut    *usecase.StatusOutput
	enrollOut    *usecase.EnrollOutput
	challengeOut *usecase.ChallengeOutput
	err          error
}

func (f *fakeUC) CaptchaVerify(_ context.Context, in usecase.CaptchaVerifyInput) error {
	f.captchaIn = &in

	return f.err
}

func (f *fakeUC) Status(context.Context) (*usecase.StatusOutput, error) {
	return f.statusOut, f.err
}

func (f *fakeUC) Enroll(_ context.Context, in usecase.EnrollInput) (*usecase.EnrollOutput, error) {
	f.enrollIn = &in

	return f.enrollOut, f.err
}

func (f *fakeUC) EnrollConfirm(_ context.Context, in usecase.EnrollConfirmInput) error {
	f.confirmIn = &in

	return f.err
}

func (f *fakeUC) Challenge(_ context.Context, in usecase.ChallengeInput) (*usecase.ChallengeOutput, error) {
	f.challengeIn = &in

	return f.challengeOut, f.err
}

func (f *fakeUC) ChallengeVerify(_ context.Context, in usecase.ChallengeVerifyInput) error {
	f.verifyIn = &in

	return f.err
}

func jsonRequest(method, target, body string) *router.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return &router.Request{Request: req}
}

func TestCaptchaVerifyEndpoint(t *testing.T) {
	uc := &fakeUC{}
	end := &HTTPEndpoint{uc: uc}

	req := jsonRequest("POST", "/api/v1/mfa/captcha/verify", `{"token":"tok"}`)
	req.RemoteAddr = "203.0.113.9:52100"

	resp, err := end.CaptchaVerify(req)
	require.NoError(t, err)
	assert.Equal(t, CaptchaVerifyResponse{}, resp)

	require.NotNil(t, uc.captchaIn)
	assert.Equal(t, "tok", uc.captchaIn.Token)
	assert.Equal(t, "203.0.113.9:52100", uc.captchaIn.RemoteIP)
}

func TestCaptchaVerifyEndpointBadBody(t *testing.T) {
	end := &HTTPEndpoint{uc: &fakeUC{}}

	_, err := end.CaptchaVerify(jsonRequest("POST", "/api/v1/mfa/captcha/verify", `{"token":`))
	assert.Error(t, err)
}

func TestStatusEndpoint(t *testing.T) {
	updated := time.Unix(1700000000, 0)
	uc := &fakeUC{statusOut: &usecase.StatusOutput{
		Methods: []usecase.MethodStatus{
			{Method: entity.MethodTOTP, State: usecase.MethodStatePending},
			{Method: entity.MethodEmail, State: usecase.MethodStateActive, Destination: "a@b.co"},
		},
		UpdatedAt: updated,
	}}
	end := &HTTPEndpoint{uc: uc}

	resp, err := end.Status(&router.Request{Request: httptest.NewRequest("GET", "/api/v1/mfa/status", nil)})
	require.NoError(t, err)

	out, ok := resp.(StatusResponse)
	require.True(t, ok)
	assert.Equal(t, updated, out.UpdatedAt)
	require.Len(t, out.Methods, 2)
	assert.Equal(t, "totp", out.Methods[0].Method)
	assert.Equal(t, "pending_verification", out.Methods[0].State)
	assert.Equal(t, "a@b.co", out.Methods[1].Destination)
}

func TestEnrollEndpoint(t *testing.T) {
	uc := &fakeUC{enrollOut: &usecase.EnrollOutput{
		Method: entity.MethodTOTP,
		Secret: "SECRET",
		URI:    "otpauth://totp/GoShield:a@b.co",
	}}
	end := &HTTPEndpoint{uc: uc}

	resp, err := end.Enroll(jsonRequest("POST", "/api/v1/mfa/enroll", `{"method":"totp"}`))
	require.NoError(t, err)

	require.NotNil(t, uc.enrollIn)
	assert.Equal(t, entity.MethodTOTP, uc.enrollIn.Method)

	out, ok := resp.(EnrollResponse)
	require.True(t, ok)
	assert.Equal(t, "totp", out.Method)
	assert.Equal(t, "SECRET", out.Secret)
	assert.NotEmpty(t, out.URI)
}

func TestEnrollEndpointUnknownMethodPassedThrough(t *testing.T) {
	uc := &fakeUC{enrollOut: &usecase.EnrollOutput{}}
	end := &HTTPEndpoint{uc: uc}

	_, err := end.Enroll(jsonRequest("POST", "/api/v1/mfa/enroll", `{"method":"sms"}`))
	require.NoError(t, err)

	// method validation belongs to the usecase, the endpoint only maps
	require.NotNil(t, uc.enrollIn)
	assert.True(t, uc.enrollIn.Method.IsUnknown())
}

func TestEnrollConfirmEndpoint(t *testing.T) {
	uc := &fakeUC{}
	end := &HTTPEndpoint{uc: uc}

	resp, err := end.EnrollConfirm(jsonRequest("POST", "/api/v1/mfa/enroll/confirm", `{"method":"email","code":"456789"}`))
	require.NoError(t, err)
	assert.Equal(t, EnrollConfirmResponse{}, resp)

	require.NotNil(t, uc.confirmIn)
	assert.Equal(t, entity.MethodEmail, uc.confirmIn.Method)
	assert.Equal(t, "456789", uc.confirmIn.Code)
}

func TestChallengeEndpoint(t *testing.T) {
	uc := &fakeUC{challengeOut: &usecase.ChallengeOutput{
		Method:      entity.MethodPhone,
		Destination: "+6281234567890",
	}}
	end := &HTTPEndpoint{uc: uc}

	resp, err := end.Challenge(jsonRequest("POST", "/api/v1/mfa/challenge", `{"method":"phone"}`))
	require.NoError(t, err)

	out, ok := resp.(ChallengeResponse)
	require.True(t, ok)
	assert.Equal(t, "phone", out.Method)
	assert.Equal(t, "+6281234567890", out.Destination)
}

func TestChallengeVerifyEndpoint(t *testing.T) {
	uc := &fakeUC{}
	end := &HTTPEndpoint{uc: uc}

	resp, err := end.ChallengeVerify(jsonRequest("POST", "/api/v1/mfa/challenge/verify", `{"method":"phone","code":"456789"}`))
	require.NoError(t, err)
	assert.Equal(t, ChallengeVerifyResponse{}, resp)

	require.NotNil(t, uc.verifyIn)
	assert.Equal(t, entity.MethodPhone, uc.verifyIn.Method)
}
