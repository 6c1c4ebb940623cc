package types

// SuccessEnvelope is the canonical `{"data": ...}` wrapper the shop API
// returns for authenticated resources. Earlier API iterations drifted
// between `data.user` and `data.data.user`; clients in this module decode
// the single-level form only.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
