package bmac

import (
	"errors"
	"fmt"
)

// Encoding errors.
var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrPayloadTooLong = errors.New("payload too long")
)

// Reply errors, one per ErrorKind.
var (
	ErrMissingAck  = errors.New("missing ACK")
	ErrSyntaxError = errors.New("syntax error")
	ErrMissingXon  = errors.New("missing XON")
	ErrProtocol    = errors.New("protocol error")
	ErrBadChecksum = errors.New("bad checksum")
)

// EncodingError reports a command that cannot be put on the wire.
type EncodingError struct {
	Err    error
	Detail string
}

func (e *EncodingError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies a rejected device reply.
type ErrorKind int

const (
	KindMissingAck ErrorKind = iota + 1
	KindSyntaxError
	KindMissingXon
	KindProtocol
	KindBadChecksum
)

var kindErrors = map[ErrorKind]error{
	KindMissingAck:  ErrMissingAck,
	KindSyntaxError: ErrSyntaxError,
	KindMissingXon:  ErrMissingXon,
	KindProtocol:    ErrProtocol,
	KindBadChecksum: ErrBadChecksum,
}

func (k ErrorKind) String() string {
	if err, ok := kindErrors[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("unknown error kind %d", int(k))
}

// ResponseError is returned by the classifier for every reply that is not a
// successful acknowledgement. Expected and Received are only set for
// KindBadChecksum.
type ResponseError struct {
	Kind     ErrorKind
	Detail   string
	Expected byte
	Received byte
	Raw      []byte
}

func (e *ResponseError) Error() string {
	switch {
	case e.Kind == KindBadChecksum:
		return fmt.Sprintf("bad checksum: expected %02X received %02X", e.Expected, e.Received)
	case e.Detail != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	}
	return e.Kind.String()
}

// Is matches the sentinel error of the kind, so errors.Is(err, ErrMissingXon)
// works on wrapped reply errors.
func (e *ResponseError) Is(target error) bool {
	return kindErrors[e.Kind] == target
}

// Retryable reports whether resending the same command may succeed. A syntax
// error needs a different command. Protocol errors usually mean noise on the
// line and the port buffers should be flushed before retrying.
func (e *ResponseError) Retryable() bool {
	return e.Kind != KindSyntaxError
}

// IsResponseError returns true if err wraps a *ResponseError.
func IsResponseError(err error) bool {
	var re *ResponseError
	return errors.As(err, &re)
}

func responseError(kind ErrorKind, raw []byte, format string, args ...interface{}) *ResponseError {
	e := &ResponseError{Kind: kind, Raw: raw}
	if format != "" {
		e.Detail = fmt.Sprintf(format, args...)
	}
	return e
}
