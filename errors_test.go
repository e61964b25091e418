package bmac

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseErrorMessages(t *testing.T) {
	tests := []struct {
		err  *ResponseError
		want string
	}{
		{err: &ResponseError{Kind: KindMissingAck}, want: "missing ACK"},
		{err: &ResponseError{Kind: KindSyntaxError}, want: "syntax error"},
		{err: &ResponseError{Kind: KindMissingXon}, want: "missing XON"},
		{err: &ResponseError{Kind: KindProtocol}, want: "protocol error"},
		{err: &ResponseError{Kind: KindProtocol, Detail: "reply too short"}, want: "protocol error: reply too short"},
		{err: &ResponseError{Kind: KindBadChecksum, Expected: 0x0A, Received: 0xF0}, want: "bad checksum: expected 0A received F0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestResponseErrorIs(t *testing.T) {
	err := fmt.Errorf("module 3: %w", &ResponseError{Kind: KindMissingXon})

	assert.True(t, errors.Is(err, ErrMissingXon))
	assert.False(t, errors.Is(err, ErrMissingAck))
	assert.True(t, IsResponseError(err))
	assert.False(t, IsResponseError(ErrMissingXon))
}

func TestResponseErrorRetryable(t *testing.T) {
	for kind, want := range map[ErrorKind]bool{
		KindMissingAck:  true,
		KindSyntaxError: false,
		KindMissingXon:  true,
		KindProtocol:    true,
		KindBadChecksum: true,
	} {
		assert.Equal(t, want, (&ResponseError{Kind: kind}).Retryable(), kind.String())
	}
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "bad checksum", KindBadChecksum.String())
	assert.Equal(t, "unknown error kind 42", ErrorKind(42).String())
}

func TestEncodingError(t *testing.T) {
	err := &EncodingError{Err: ErrPayloadTooLong, Detail: "body of 1200 bytes exceeds 999"}
	assert.Equal(t, "payload too long: body of 1200 bytes exceeds 999", err.Error())
	assert.ErrorIs(t, err, ErrPayloadTooLong)

	assert.Equal(t, "invalid address", (&EncodingError{Err: ErrInvalidAddress}).Error())
}
