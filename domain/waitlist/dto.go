package waitlist

// InvalidEmailMessage is the client-facing reason for every rejected email.
const InvalidEmailMessage = "Invalid email address"

// SubmitRequest accepts any JSON value for email so that absent, null and
// non-string values reach validation instead of failing the decode.
type SubmitRequest struct {
	Email any `json:"email"`
}

type SubmitResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
