package models

// Response is the uniform envelope returned by every API endpoint.
// Success responses carry Data; failures carry Message and, for
// validation failures, the full list of violations in Errors so a client
// can fix everything in one round trip.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Data    any      `json:"data,omitempty"`
}

// OK wraps data in a successful envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Fail builds a failure envelope with a human-readable message.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}

// FailValidation builds a failure envelope carrying every collected
// validation violation.
func FailValidation(message string, errs []string) Response {
	return Response{Success: false, Message: message, Errors: errs}
}

// RateLimitedResponse is the body of every 429 returned by the named
// rate limiters. RetryAfter is in seconds.
type RateLimitedResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	RetryAfter int64  `json:"retryAfter"`
}

// CreationCapResponse is the body of the 429 returned when a non-admin
// user exceeds the rolling prompt-creation cap.
type CreationCapResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Limit   int    `json:"limit"`
	Period  string `json:"period"`
	Current int    `json:"current"`
}

// ListMeta carries paging information alongside list payloads.
type ListMeta struct {
	Count  int `json:"count"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// PromptList is the data payload of the listing endpoints.
type PromptList struct {
	Prompts []Prompt `json:"prompts"`
	Meta    ListMeta `json:"meta"`
}
