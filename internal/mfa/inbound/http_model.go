package inbound

import "time"

type CaptchaVerifyRequest struct {
	Token string `json:"token"`
}

type CaptchaVerifyResponse struct{}

func (CaptchaVerifyResponse) Message() string {
	return "Captcha verified."
}

type MethodStatus struct {
	Method      string `json:"method"`
	State       string `json:"state"`
	Destination string `json:"destination,omitempty"`
}

type StatusResponse struct {
	Methods   []MethodStatus `json:"methods"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type EnrollRequest struct {
	Method string `json:"method"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

type EnrollResponse struct {
	Method      string `json:"method"`
	Secret      string `json:"secret,omitempty"`
	URI         string `json:"uri,omitempty"`
	Destination string `json:"destination,omitempty"`
}

func (EnrollResponse) Message() string {
	return "Enrollment started. Confirm the method to activate it."
}

type EnrollConfirmRequest struct {
	Method string `json:"method"`
	Code   string `json:"code"`
}

type EnrollConfirmResponse struct{}

func (EnrollConfirmResponse) Message() string {
	return "Method verified and enabled."
}

type ChallengeRequest struct {
	Method string `json:"method"`
}

type ChallengeResponse struct {
	Method      string `json:"method"`
	Destination string `json:"destination"`
}

func (ChallengeResponse) Message() string {
	return "A verification code has been sent."
}

type ChallengeVerifyRequest struct {
	Method string `json:"method"`
	Code   string `json:"code"`
}

type ChallengeVerifyResponse struct{}

func (ChallengeVerifyResponse) Message() string {
	return "Verification successful."
}
