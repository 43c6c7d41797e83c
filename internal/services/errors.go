package services

import "net/http"

type ErrorKind string

const (
	KindInvalidJSON  ErrorKind = "InvalidJSON"
	KindMissingCode  ErrorKind = "MissingCode"
	KindMissingQuery ErrorKind = "MissingQuery"
	KindAgentFailure ErrorKind = "AgentFailure"
)

const (
	MsgInvalidJSON  = "请求体必须是合法的 JSON"
	MsgMissingCode  = "请提供需要评审的 code 字段。"
	MsgMissingQuery = "请提供 messages、prompt 或 city 字段。"
)

// RequestError is a failure that maps onto a client-facing envelope. Err
// holds the underlying cause and is never sent to the caller.
type RequestError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *RequestError) Unwrap() error { return e.Err }

// Status returns the HTTP status for the error kind.
func (e *RequestError) Status() int {
	switch e.Kind {
	case KindInvalidJSON, KindMissingCode, KindMissingQuery:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func invalidJSON(err error) *RequestError {
	return &RequestError{Kind: KindInvalidJSON, Message: MsgInvalidJSON, Err: err}
}

func agentFailure(err error) *RequestError {
	return &RequestError{Kind: KindAgentFailure, Err: err}
}
