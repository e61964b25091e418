package bmac

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// bmacPackager implements Packager interface.
type bmacPackager struct {
	// Uppercase converts payloads to upper case before framing.
	Uppercase bool
}

// Encode encodes a command in a BMAC frame:
//
//	STX           : 1 byte
//	Length        : 3 decimal digits, length of address+payload
//	Address       : 2 decimal digits
//	Payload       : n ASCII bytes
//	Checksum      : 2 upper case hex digits, sum of address+payload
//	ETX           : 1 byte
func (mb *bmacPackager) Encode(cmd *Command) (frame []byte, err error) {
	payload := cmd.Payload
	if mb.Uppercase {
		payload = strings.ToUpper(payload)
	}
	return Encode(cmd.Address, payload)
}

// Decode classifies a raw reply.
func (mb *bmacPackager) Decode(raw []byte) (resp *Response, err error) {
	return Classify(raw)
}

// Encode builds the frame for payload sent to the module at address.
// Valid addresses are MinAddress to MaxAddress.
func Encode(address int, payload string) ([]byte, error) {
	if address < MinAddress || address > MaxAddress {
		return nil, &EncodingError{
			Err:    ErrInvalidAddress,
			Detail: fmt.Sprintf("address %d is outside %d-%d", address, MinAddress, MaxAddress),
		}
	}
	for i := 0; i < len(payload); i++ {
		if c := payload[i]; c == 0 || c > 0x7F {
			return nil, &EncodingError{
				Err:    ErrInvalidPayload,
				Detail: fmt.Sprintf("non-ASCII byte 0x%02X at offset %d", c, i),
			}
		}
	}
	body := fmt.Sprintf("%0*d%s", addressDigits, address, payload)
	if len(body) > MaxBodySize {
		return nil, &EncodingError{
			Err:    ErrPayloadTooLong,
			Detail: fmt.Sprintf("body of %d bytes exceeds %d", len(body), MaxBodySize),
		}
	}

	frame := make([]byte, 0, 1+lengthDigits+len(body)+checksumDigits+1)
	frame = append(frame, STX)
	frame = append(frame, fmt.Sprintf("%0*d", lengthDigits, len(body))...)
	frame = append(frame, body...)
	frame = append(frame, fmt.Sprintf("%02X", Checksum([]byte(body)))...)
	frame = append(frame, ETX)
	return frame, nil
}

// Classify decodes a raw reply. Checks run in a fixed order and the first
// failing one wins: missing ACK, syntax error, missing XON, misplaced
// control bytes, then the content frame (length and checksum).
//
//	Content reply : ACK status STX len(3) content chk(2) ETX XON
//	No content    : ACK status XON
func Classify(raw []byte) (*Response, error) {
	if bytes.IndexByte(raw, ACK) < 0 {
		return nil, responseError(KindMissingAck, raw, "")
	}
	if bytes.IndexByte(raw, XOFFError) >= 0 {
		return nil, responseError(KindSyntaxError, raw, "")
	}
	if bytes.IndexByte(raw, XON) < 0 {
		return nil, responseError(KindMissingXon, raw, "")
	}

	n := len(raw)
	if raw[0] != ACK || raw[n-1] != XON {
		return nil, responseError(KindProtocol, raw, "reply must start with ACK and end with XON")
	}
	if n < 3 {
		return nil, responseError(KindProtocol, raw, "reply of %d bytes has no status byte", n)
	}

	resp := &Response{Status: raw[1]}
	etx := n - 2
	if raw[2] != STX || raw[etx] != ETX {
		resp.Kind = ResponseAck
		return resp, nil
	}
	if n < minContentReplySize {
		return nil, responseError(KindProtocol, raw, "content reply of %d bytes is shorter than %d", n, minContentReplySize)
	}

	length, err := parseDecimal(raw[3:contentOffset])
	if err != nil {
		return nil, responseError(KindProtocol, raw, "length field: %v", err)
	}
	sumAt := etx - checksumDigits
	received, err := strconv.ParseUint(string(raw[sumAt:etx]), 16, 8)
	if err != nil {
		return nil, responseError(KindProtocol, raw, "checksum field %q is not hex", raw[sumAt:etx])
	}
	if contentOffset+length != sumAt {
		return nil, responseError(KindProtocol, raw, "length field %d does not match content of %d bytes", length, sumAt-contentOffset)
	}

	content := raw[contentOffset:sumAt]
	if expected := Checksum(content); expected != byte(received) {
		e := responseError(KindBadChecksum, raw, "")
		e.Expected = expected
		e.Received = byte(received)
		return nil, e
	}

	resp.Kind = ResponseContent
	resp.Content = string(content)
	resp.Length = length
	return resp, nil
}

// parseDecimal parses a fixed-width field of ASCII decimal digits.
func parseDecimal(field []byte) (int, error) {
	v := 0
	for _, c := range field {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%q is not decimal", field)
		}
		v = v*10 + int(c-'0')
	}
	return v, nil
}
