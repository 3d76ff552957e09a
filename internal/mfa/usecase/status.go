package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/goshield/internal/mfa/entity"
	"github.com/shandysiswandi/goshield/internal/pkg/goerror"
)

const (
	MethodStateUnenrolled = "unenrolled"
	MethodStatePending    = "pending_verification"
	MethodStateActive     = "active"
)

type MethodStatus struct {
	Method      entity.Method
	State       string
	Destination string
}

type StatusOutput struct {
	Methods   []MethodStatus
	UpdatedAt time.Time
}

// Status reports the enrollment state of every method for the caller.
func (s *Usecase) Status(ctx context.Context) (*StatusOutput, error) {
	ctx, span := s.startSpan(ctx, "Status")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	enr, err := s.repoDB.GetEnrollment(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("mfa is not configured", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get enrollment", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	methods := []entity.Method{entity.MethodTOTP, entity.MethodEmail, entity.MethodPhone}

	return &StatusOutput{
		Methods: lo.Map(methods, func(m entity.Method, _ int) MethodStatus {
			return MethodStatus{
				Method:      m,
				State:       methodState(enr, m),
				Destination: enr.Destination(m),
			}
		}),
		UpdatedAt: enr.UpdatedAt,
	}, nil
}

func methodState(enr *entity.Enrollment, m entity.Method) string {
	if enr.MethodActive(m) {
		return MethodStateActive
	}

	enrolled := false
	switch m {
	case entity.MethodTOTP:
		enrolled = len(enr.TOTPSecret) > 0
	case entity.MethodEmail:
		enrolled = enr.Email != ""
	case entity.MethodPhone:
		enrolled = enr.Phone != ""
	}

	if enrolled {
		return MethodStatePending
	}
	return MethodStateUnenrolled
}
