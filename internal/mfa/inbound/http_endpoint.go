package inbound

import (
	"github.com/shandysiswandi/goshield/internal/mfa/entity"
	"github.com/shandysiswandi/goshield/internal/mfa/usecase"
	"github.com/shandysiswandi/goshield/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for multi-factor authentication workflows.
type HTTPEndpoint struct {
	uc uc
}

// CaptchaVerify validates a captcha challenge token.
// @Summary Verify captcha token
// @Description Checks a reCAPTCHA token with the provider and reports whether it proves a human.
// @Tags MFA, Captcha
// @Accept json
// @Produce json
// @Param request body CaptchaVerifyRequest true "Captcha payload"
// @Success 200 {object} router.successResponse{data=CaptchaVerifyResponse} "Captcha verified"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Captcha rejected"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/mfa/captcha/verify [post]
func (h *HTTPEndpoint) CaptchaVerify(r *router.Request) (any, error) {
	var req CaptchaVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err := h.uc.CaptchaVerify(r.Context(), usecase.CaptchaVerifyInput{
		Token:    req.Token,
		RemoteIP: r.RemoteAddr,
	})
	if err != nil {
		return nil, err
	}

	return CaptchaVerifyResponse{}, nil
}

// Status reports enrollment state per method for the caller.
// @Summary MFA status
// @Description Returns the enrollment state of every MFA method for the authenticated user.
// @Tags MFA
// @Produce json
// @Success 200 {object} router.successResponse{data=StatusResponse} "Enrollment view"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "MFA not configured"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/mfa/status [get]
func (h *HTTPEndpoint) Status(r *router.Request) (any, error) {
	resp, err := h.uc.Status(r.Context())
	if err != nil {
		return nil, err
	}

	methods := make([]MethodStatus, 0, len(resp.Methods))
	for _, m := range resp.Methods {
		methods = append(methods, MethodStatus{
			Method:      m.Method.String(),
			State:       m.State,
			Destination: m.Destination,
		})
	}

	return StatusResponse{
		Methods:   methods,
		UpdatedAt: resp.UpdatedAt,
	}, nil
}

// Enroll starts enrollment of an MFA method.
// @Summary Enroll MFA method
// @Description Stores (or replaces) a method and starts its verification. TOTP returns a provisioning URI; email/phone trigger a delivered code.
// @Tags MFA
// @Accept json
// @Produce json
// @Param request body EnrollRequest true "Enrollment payload"
// @Success 200 {object} router.successResponse{data=EnrollResponse} "Enrollment started"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Code issued too recently"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/mfa/enroll [post]
func (h *HTTPEndpoint) Enroll(r *router.Request) (any, error) {
	var req EnrollRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Enroll(r.Context(), usecase.EnrollInput{
		Method: entity.MethodFromString(req.Method),
		Email:  req.Email,
		Phone:  req.Phone,
	})
	if err != nil {
		return nil, err
	}

	return EnrollResponse{
		Method:      resp.Method.String(),
		Secret:      resp.Secret,
		URI:         resp.URI,
		Destination: resp.Destination,
	}, nil
}

// EnrollConfirm proves possession of a pending method.
// @Summary Confirm MFA enrollment
// @Description Verifies the enrollment code (or authenticator code) and activates the method.
// @Tags MFA
// @Accept json
// @Produce json
// @Param request body EnrollConfirmRequest true "Confirmation payload"
// @Success 200 {object} router.successResponse{data=EnrollConfirmResponse} "Method activated"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Verification failed"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/mfa/enroll/confirm [post]
func (h *HTTPEndpoint) EnrollConfirm(r *router.Request) (any, error) {
	var req EnrollConfirmRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err := h.uc.EnrollConfirm(r.Context(), usecase.EnrollConfirmInput{
		Method: entity.MethodFromString(req.Method),
		Code:   req.Code,
	})
	if err != nil {
		return nil, err
	}

	return EnrollConfirmResponse{}, nil
}

// Challenge issues a step-up code over a delivered method.
// @Summary Create MFA challenge
// @Description Issues a one-time code for an active email or phone method.
// @Tags MFA
// @Accept json
// @Produce json
// @Param request body ChallengeRequest true "Challenge payload"
// @Success 200 {object} router.successResponse{data=ChallengeResponse} "Code issued"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Verification failed"
// @Failure 429 {object} router.errorResponse "Code issued too recently"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/mfa/challenge [post]
func (h *HTTPEndpoint) Challenge(r *router.Request) (any, error) {
	var req ChallengeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Challenge(r.Context(), usecase.ChallengeInput{
		Method: entity.MethodFromString(req.Method),
	})
	if err != nil {
		return nil, err
	}

	return ChallengeResponse{
		Method:      resp.Method.String(),
		Destination: resp.Destination,
	}, nil
}

// ChallengeVerify checks a step-up code.
// @Summary Verify MFA challenge
// @Description Verifies a one-time or authenticator code against an active method.
// @Tags MFA
// @Accept json
// @Produce json
// @Param request body ChallengeVerifyRequest true "Verification payload"
// @Success 200 {object} router.successResponse{data=ChallengeVerifyResponse} "Verification successful"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Verification failed"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/mfa/challenge/verify [post]
func (h *HTTPEndpoint) ChallengeVerify(r *router.Request) (any, error) {
	var req ChallengeVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err := h.uc.ChallengeVerify(r.Context(), usecase.ChallengeVerifyInput{
		Method: entity.MethodFromString(req.Method),
		Code:   req.Code,
	})
	if err != nil {
		return nil, err
	}

	return ChallengeVerifyResponse{}, nil
}
