package usecase

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	libotp "github.com/pquerna/otp"
	"github.com/shandysiswandi/goshield/internal/mfa/entity"
	"github.com/shandysiswandi/goshield/internal/pkg/goerror"
	"github.com/shandysiswandi/goshield/internal/pkg/goroutine"
	"github.com/shandysiswandi/goshield/internal/pkg/idempotency"
	"github.com/shandysiswandi/goshield/internal/pkg/instrument"
	"github.com/shandysiswandi/goshield/internal/pkg/jwt"
	"github.com/shandysiswandi/goshield/internal/pkg/mfacrypto"
	"github.com/shandysiswandi/goshield/internal/pkg/otp"
	"github.com/shandysiswandi/goshield/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserID = int64(7)
	testEmail  = "user@example.com"
	testPhone  = "+6281234567890"
)

var testNow = time.Unix(1700000010, 0)

type verifiedCall struct {
	userID int64
	method entity.Method
}

type fakeDB struct {
	enr       *entity.Enrollment
	getErr    error
	upserts   []entity.UpsertMethod
	upsertErr error
	verified  []verifiedCall
	verifyErr error
}

func (f *fakeDB) GetEnrollment(_ context.Context, _ int64) (*entity.Enrollment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	return f.enr, nil
}

func (f *fakeDB) UpsertEnrollmentMethod(_ context.Context, in entity.UpsertMethod) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, in)

	return nil
}

func (f *fakeDB) MarkMethodVerified(_ context.Context, userID int64, method entity.Method) error {
	if f.verifyErr != nil {
		return f.verifyErr
	}
	f.verified = append(f.verified, verifiedCall{userID: userID, method: method})

	return nil
}

type fakeOTPStore struct {
	code        string
	createErr   error
	created     []entity.OTPPurpose
	valid       bool
	validateErr error
	validated   []entity.OTPPurpose
}

func (f *fakeOTPStore) Create(_ context.Context, purpose entity.OTPPurpose, _ int64) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, purpose)

	return f.code, nil
}

func (f *fakeOTPStore) Validate(_ context.Context, purpose entity.OTPPurpose, _ int64, _ string) (bool, error) {
	if f.validateErr != nil {
		return false, f.validateErr
	}
	f.validated = append(f.validated, purpose)

	return f.valid, nil
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []OTPIssuedEvent
	err    error
}

func (f *fakeMessaging) PublishOTPIssued(_ context.Context, msg OTPIssuedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, msg)

	return f.err
}

func (f *fakeMessaging) published() []OTPIssuedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]OTPIssuedEvent(nil), f.events...)
}

type fakeIdempotency struct {
	state idempotency.State
	err   error
	keys  []string
}

func (f *fakeIdempotency) Acquire(_ context.Context, key string, _ time.Duration) (idempotency.State, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return idempotency.StateError, f.err
	}
	if f.state == "" {
		return idempotency.StateNone, nil
	}

	return f.state, nil
}

func (f *fakeIdempotency) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) Exec(ctx context.Context, _ string, fn func(context.Context) error, _ ...idempotency.Option) error {
	return fn(ctx)
}

type fakeCaptcha struct {
	ok  bool
	err error
}

func (f *fakeCaptcha) Verify(context.Context, string, string) (bool, error) { return f.ok, f.err }

type fixedClock struct{ at time.Time }

func (f fixedClock) Now() time.Time { return f.at }

// stubConfig returns zero values for everything except the configured
// string and duration keys.
type stubConfig struct {
	strings map[string]string
	seconds map[string]time.Duration
}

func (stubConfig) Close() error { return nil }

func (c stubConfig) GetSecond(key string) time.Duration { return c.seconds[key] }

func (stubConfig) GetMinute(string) time.Duration { return 0 }

func (stubConfig) GetHour(string) time.Duration { return 0 }

func (stubConfig) GetDay(string) time.Duration { return 0 }

func (stubConfig) GetInt(string) int { return 0 }

func (stubConfig) GetInt32(string) int32 { return 0 }

func (stubConfig) GetInt64(string) int64 { return 0 }

func (stubConfig) GetUint(string) uint { return 0 }

func (stubConfig) GetUint16(string) uint16 { return 0 }

func (stubConfig) GetUint32(string) uint32 { return 0 }

func (stubConfig) GetUint64(string) uint64 { return 0 }

func (stubConfig) GetFloat32(string) float32 { return 0 }

func (stubConfig) GetFloat64(string) float64 { return 0 }

func (stubConfig) GetBool(string) bool { return false }

func (c stubConfig) GetString(key string) string { return c.strings[key] }

func (stubConfig) GetBinary(string) []byte { return nil }

func (stubConfig) GetArray(string) []string { return nil }

func (stubConfig) GetMap(string) map[string]string { return nil }

type fixture struct {
	db    *fakeDB
	otps  *fakeOTPStore
	mq    *fakeMessaging
	idemp *fakeIdempotency
	cap   *fakeCaptcha
	cfg   stubConfig
	enc   mfacrypto.Encryptor
	totp  otp.OTP
	g     *goroutine.Manager
	uc    *Usecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	fx := &fixture{
		db:    &fakeDB{},
		otps:  &fakeOTPStore{code: "456789"},
		mq:    &fakeMessaging{},
		idemp: &fakeIdempotency{},
		cap:   &fakeCaptcha{},
		cfg: stubConfig{
			strings: map[string]string{},
			seconds: map[string]time.Duration{},
		},
		enc:  mfacrypto.NewAESGCMEncryptor(mfacrypto.StaticKeyProvider{KeyBytes: bytes.Repeat([]byte{0x5a}, 32)}),
		totp: otp.NewTOTP("GoShield", 30, 1, libotp.DigitsSix),
		g:    goroutine.NewManager(4),
	}

	fx.uc = New(Dependency{
		RepoDB:        fx.db,
		RepoMessaging: fx.mq,
		OTPStore:      fx.otps,
		Idempotency:   fx.idemp,
		Validator:     v,
		Config:        fx.cfg,
		Captcha:       fx.cap,
		Encryptor:     fx.enc,
		Totp:          fx.totp,
		Clock:         fixedClock{at: testNow},
		Instrument:    instrument.NewNoop(),
		Goroutine:     fx.g,
	})

	return fx
}

func authCtx() context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: testUserID, UserEmail: testEmail})
}

// encryptSecret stores a TOTP secret the way enrollment would.
func (fx *fixture) encryptSecret(t *testing.T, secret string) []byte {
	t.Helper()

	ct, err := fx.enc.Encrypt([]byte(secret), mfacrypto.Scope{
		UserID:  testUserID,
		Purpose: mfacrypto.PurposeTOTPSecret,
	})
	require.NoError(t, err)

	return ct
}

func (fx *fixture) totpCode(t *testing.T, secret string) string {
	t.Helper()

	code, err := fx.totp.GenerateCode(secret, testNow)
	require.NoError(t, err)

	return code
}

func assertErrCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, code, ge.Code())
}

func assertVerificationFailed(t *testing.T, err error) {
	t.Helper()

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, goerror.CodeUnauthorized, ge.Code())
	assert.Equal(t, "verification failed", ge.Msg())
}
