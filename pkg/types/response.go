package types

// SuccessEnvelope wraps every successful payload under the "result" key.
type SuccessEnvelope struct {
	Result any `json:"result"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
