package handler

import (
	"encoding/json"
	"net/http"

	"github.com/portfolio-backend/internal/application/otp"
	"github.com/portfolio-backend/internal/pkg/validate"
)

// OTPHandler handles the OTP send/verify endpoint.
type OTPHandler struct {
	svc otp.Service
}

func NewOTPHandler(svc otp.Service) *OTPHandler {
	return &OTPHandler{svc: svc}
}

type otpRequest struct {
	Email  string `json:"email" validate:"omitempty,email"`
	Phone  string `json:"phone" validate:"omitempty,e164"`
	Action string `json:"action"`
	OTP    string `json:"otp"`
	Token  string `json:"token"`
}

// Action dispatches on the "action" field of the JSON body: "send" issues and
// delivers a code, "verify" checks a submitted code against its token.
func (h *OTPHandler) Action(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch req.Action {
	case "send":
		recipient, channel := req.Email, otp.ChannelEmail
		if recipient == "" && req.Phone != "" {
			recipient, channel = req.Phone, otp.ChannelSMS
		}
		if recipient == "" {
			writeError(w, http.StatusBadRequest, "Email or phone required")
			return
		}
		token, err := h.svc.RequestOTP(r.Context(), recipient, channel)
		if err != nil {
			httpError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OTPEnvelope{
			Success: true,
			Token:   token,
			Message: "OTP sent successfully",
		})

	case "verify":
		if req.OTP == "" || req.Token == "" {
			writeError(w, http.StatusBadRequest, "OTP and token required")
			return
		}
		recipient := req.Email
		if recipient == "" {
			recipient = req.Phone
		}
		accessToken, err := h.svc.VerifyOTP(r.Context(), recipient, req.OTP, req.Token)
		if err != nil {
			httpError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OTPEnvelope{
			Success:     true,
			Message:     "OTP verified successfully",
			AccessToken: accessToken,
		})

	default:
		writeError(w, http.StatusBadRequest, "Invalid action")
	}
}

// Preflight answers CORS preflights with a bare 200 "ok". The CORS middleware
// has already attached the Access-Control-* headers by the time this runs.
func (h *OTPHandler) Preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
