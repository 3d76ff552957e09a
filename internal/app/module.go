package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/goshield/internal/mfa"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.mfa.enabled") {
		if err := mfa.New(mfa.Dependency{
			Config:        a.config,
			Instrument:    a.ins,
			UID:           a.uid,
			Captcha:       a.captcha,
			Encryptor:     a.encryptor,
			Clock:         a.clock,
			Validator:     a.validator,
			Router:        a.router,
			Totp:          a.totp,
			CodeGenerator: a.codeGen,
			DBConn:        a.dbConn,
			Idempotency:   a.idemp,
			Messaging:     a.messaging,
			Goroutine:     a.goroutine,
		}); err != nil {
			slog.Error("failed to init module mfa", "error", err)
			os.Exit(1)
		}
	}
}
