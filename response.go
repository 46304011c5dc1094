package iotskripsinew

// Response is the JSON envelope every API handler answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK builds a success envelope.
func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail builds an error envelope. The detail string is user-facing; internal
// errors stay in the logs.
func Fail(message, detail string) Response {
	return Response{Success: false, Message: message, Error: detail}
}
