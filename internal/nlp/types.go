package nlp

import "time"

// ResultType tags the payload shape of a QueryResult.
type ResultType string

const (
	ResultTicketList      ResultType = "ticket-list"
	ResultTicketDetails   ResultType = "ticket-details"
	ResultOperationResult ResultType = "operation-result"
	ResultStatistics      ResultType = "statistics"
	ResultHelp            ResultType = "help"
	ResultInformation     ResultType = "information"
	ResultError           ResultType = "error"
)

// ErrorType classifies a failed QueryResult for user-facing rendering.
type ErrorType string

const (
	ErrQueryNotUnderstood      ErrorType = "query-not-understood"
	ErrInsufficientPermissions ErrorType = "insufficient-permissions"
	ErrInvalidParameters       ErrorType = "invalid-parameters"
	ErrDataNotFound            ErrorType = "data-not-found"
	ErrOperationFailed         ErrorType = "operation-failed"
	ErrSystemError             ErrorType = "system-error"
)

// errorMessages maps each error type to its fixed user-facing sentence.
var errorMessages = map[ErrorType]string{
	ErrQueryNotUnderstood:      "I didn't understand that request. Try rephrasing it, or ask for help to see what I can do.",
	ErrInsufficientPermissions: "You don't have permission to perform that operation.",
	ErrInvalidParameters:       "Some of the details in your request are invalid. Please check them and try again.",
	ErrDataNotFound:            "I couldn't find anything matching your request.",
	ErrOperationFailed:         "The operation could not be completed. Please try again.",
	ErrSystemError:             "Something went wrong on our side. Please try again shortly.",
}

// QueryResult is the structured outcome of dispatching one query. Success
// mirrors whether the underlying read or mutation worked; Count carries the
// raw record count for list-shaped results.
type QueryResult struct {
	Type     ResultType     `json:"type"`
	Success  bool           `json:"success"`
	Message  string         `json:"message,omitempty"`
	Data     any            `json:"data,omitempty"`
	Count    int            `json:"count"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Errors   []string       `json:"errors,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
}

func errorResult(t ErrorType, detail string) *QueryResult {
	r := &QueryResult{
		Type:     ResultError,
		Metadata: map[string]any{"errorType": string(t)},
	}
	if detail != "" {
		r.Errors = []string{detail}
	}
	return r
}

// ValidationResult reports entity validation: blocking errors flip Valid,
// warnings are advisory only.
type ValidationResult struct {
	Valid    bool                `json:"valid"`
	Errors   []string            `json:"errors,omitempty"`
	Warnings []string            `json:"warnings,omitempty"`
	ByType   map[EntityType]bool `json:"by_type,omitempty"`
}

// NLPResponse is the terminal artifact returned to callers.
type NLPResponse struct {
	Message   string    `json:"message"`
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func failedResponse(message string) *NLPResponse {
	return &NLPResponse{Message: message, Success: false, Timestamp: time.Now().UTC()}
}
