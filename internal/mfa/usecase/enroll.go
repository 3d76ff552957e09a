package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/goshield/internal/mfa/entity"
	"github.com/shandysiswandi/goshield/internal/pkg/goerror"
	"github.com/shandysiswandi/goshield/internal/pkg/mfacrypto"
)

type EnrollInput struct {
	Method entity.Method
	Email  string `validate:"omitempty,email"`
	Phone  string `validate:"omitempty,e164"`
}

type EnrollOutput struct {
	Method entity.Method

	// Secret and URI are set for authenticator enrollment only.
	Secret string
	URI    string

	// Destination is set for delivered-code enrollment only.
	Destination string
}

// Enroll stores (or replaces) a method for the caller and starts its
// verification. Re-enrolling an active method silently demotes it back
// to pending until the new value is confirmed.
func (s *Usecase) Enroll(ctx context.Context, in EnrollInput) (*EnrollOutput, error) {
	ctx, span := s.startSpan(ctx, "Enroll")
	defer span.End()

	if in.Method.IsUnknown() {
		return nil, goerror.NewBusiness("unsupported mfa method", goerror.CodeInvalidInput)
	}

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if in.Method == entity.MethodTOTP {
		return s.enrollTOTP(ctx, clm.UserID, clm.UserEmail)
	}

	return s.enrollDelivered(ctx, clm.UserID, in)
}

func (s *Usecase) enrollTOTP(ctx context.Context, userID int64, account string) (*EnrollOutput, error) {
	secret, uri, err := s.totp.Generate(account)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate totp secret", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	encrypted, err := s.encryptor.Encrypt([]byte(secret), mfacrypto.Scope{
		UserID:  userID,
		Purpose: mfacrypto.PurposeTOTPSecret,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encrypt totp secret", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.UpsertEnrollmentMethod(ctx, entity.UpsertMethod{
		UserID:     userID,
		Method:     entity.MethodTOTP,
		TOTPSecret: encrypted,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert totp enrollment", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &EnrollOutput{
		Method: entity.MethodTOTP,
		Secret: secret,
		URI:    uri,
	}, nil
}

func (s *Usecase) enrollDelivered(ctx context.Context, userID int64, in EnrollInput) (*EnrollOutput, error) {
	contact := in.Email
	if in.Method == entity.MethodPhone {
		contact = in.Phone
	}
	if contact == "" {
		return nil, goerror.NewBusiness("contact is required for this method", goerror.CodeInvalidInput)
	}

	purpose, ok := in.Method.EnrollPurpose()
	if !ok {
		return nil, goerror.NewBusiness("unsupported mfa method", goerror.CodeInvalidInput)
	}

	key := fmt.Sprintf("mfa:enroll:%d:%s", userID, in.Method.String())
	if err := s.throttleIssue(ctx, key); err != nil {
		return nil, err
	}

	if err := s.repoDB.UpsertEnrollmentMethod(ctx, entity.UpsertMethod{
		UserID:  userID,
		Method:  in.Method,
		Contact: contact,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert enrollment", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	code, err := s.otps.Create(ctx, purpose, userID)
	if err != nil {
		return nil, goerror.NewServer(err)
	}

	s.publishOTPIssued(ctx, OTPIssuedEvent{
		UserID:      userID,
		Method:      in.Method,
		Purpose:     purpose,
		Destination: contact,
		Code:        code,
	})

	return &EnrollOutput{
		Method:      in.Method,
		Destination: contact,
	}, nil
}
