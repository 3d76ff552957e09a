package event

const OTPIssuedDestination string = "mfa_otp_issued"

type OTPIssuedMessage struct {
	UserID      int64  `json:"user_id"`
	Method      string `json:"method"`
	Purpose     string `json:"purpose"`
	Destination string `json:"destination"`
	Code        string `json:"code"`
}
