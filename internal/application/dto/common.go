package dto

// Response is the envelope every endpoint returns; the shopie web client
// expects {success, message, data?} on success and an error code otherwise.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK builds a success envelope.
func OK(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope with a stable error code.
func Fail(code, message string) Response {
	return Response{Success: false, Message: message, Error: code}
}

// PageRequest pagination for listings.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage applies defaults when Limit/Offset are unset.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
