package models

// AuthResult is the value every session-level auth operation resolves to.
// Operations never surface transport errors directly; callers branch on
// Success and render Message. RequiresVerification distinguishes the
// "account exists but email is unconfirmed" failure so the caller can offer
// a resend-verification affordance instead of a generic error.
type AuthResult struct {
	Success              bool   `json:"success"`
	Message              string `json:"message,omitempty"`
	RequiresVerification bool   `json:"requiresVerification,omitempty"`
	Email                string `json:"email,omitempty"`
}

// OK builds a success result with an optional server message.
func OK(message string) AuthResult {
	return AuthResult{Success: true, Message: message}
}

// Failed builds a plain failure result.
func Failed(message string) AuthResult {
	return AuthResult{Success: false, Message: message}
}
