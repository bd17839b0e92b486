package constants

import (
	"net/http"
)

type CodedError struct {
	msg  string
	code int
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{msg: msg, code: code}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrIO               = NewCodedError("io error", http.StatusInternalServerError)
	ErrDecode           = NewCodedError("decode error", http.StatusInternalServerError)
	ErrSchema           = NewCodedError("schema error", http.StatusInternalServerError)
	ErrJoinAmbiguity    = NewCodedError("join ambiguity", http.StatusConflict)
	ErrEmptySelection   = NewCodedError("empty selection", http.StatusNotFound)
	ErrInvalidSelection = NewCodedError("invalid selection", http.StatusBadRequest)
	ErrBadRequest       = NewCodedError("bad request", http.StatusBadRequest)
	ErrDBNotFound       = NewCodedError("not found", http.StatusNotFound)
)
