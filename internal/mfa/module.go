package mfa

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/goshield/internal/mfa/inbound"
	"github.com/shandysiswandi/goshield/internal/mfa/otpstore"
	"github.com/shandysiswandi/goshield/internal/mfa/outbound/db"
	"github.com/shandysiswandi/goshield/internal/mfa/outbound/mq"
	"github.com/shandysiswandi/goshield/internal/mfa/usecase"
	"github.com/shandysiswandi/goshield/internal/pkg/captcha"
	"github.com/shandysiswandi/goshield/internal/pkg/clock"
	"github.com/shandysiswandi/goshield/internal/pkg/config"
	"github.com/shandysiswandi/goshield/internal/pkg/goroutine"
	"github.com/shandysiswandi/goshield/internal/pkg/idempotency"
	"github.com/shandysiswandi/goshield/internal/pkg/instrument"
	"github.com/shandysiswandi/goshield/internal/pkg/messaging"
	"github.com/shandysiswandi/goshield/internal/pkg/mfacrypto"
	"github.com/shandysiswandi/goshield/internal/pkg/otp"
	"github.com/shandysiswandi/goshield/internal/pkg/router"
	"github.com/shandysiswandi/goshield/internal/pkg/uid"
	"github.com/shandysiswandi/goshield/internal/pkg/validator"
)

type Dependency struct {
	DBConn        *pgxpool.Pool              `validate:"required"`
	Goroutine     *goroutine.Manager         `validate:"required"`
	Router        *router.Router             `validate:"required"`
	Idempotency   idempotency.Idempotency    `validate:"required"`
	Messaging     messaging.Messaging        `validate:"required"`
	Config        config.Config              `validate:"required"`
	Instrument    instrument.Instrumentation `validate:"required"`
	UID           uid.NumberID               `validate:"required"`
	Captcha       captcha.Verifier           `validate:"required"`
	Encryptor     mfacrypto.Encryptor        `validate:"required"`
	Clock         clock.Clocker              `validate:"required"`
	Totp          otp.OTP                    `validate:"required"`
	CodeGenerator otp.CodeGenerator          `validate:"required"`
	Validator     validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbMFA := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	otps := otpstore.New(otpstore.Dependency{
		Repo:       dbMFA,
		Generator:  dep.CodeGenerator,
		UID:        dep.UID,
		Instrument: dep.Instrument,
	})

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbMFA,
		RepoMessaging: repoMsg,
		OTPStore:      otps,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Captcha:       dep.Captcha,
		Encryptor:     dep.Encryptor,
		Totp:          dep.Totp,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
