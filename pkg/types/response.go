package types

// APIError is the uniform body of every failed request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// StatusBody is returned by the health probes.
type StatusBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
