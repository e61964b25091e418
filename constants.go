package bmac

import "time"

// Control bytes of the BMAC serial protocol.
const (
	STX       byte = 0x02
	ETX       byte = 0x03
	ACK       byte = 0x06
	XOFFError byte = 0x18
	XON       byte = 0x1A
)

const (
	// MinAddress and MaxAddress bound the module address. The device manual
	// documents 0-127 but the wire field holds two decimal digits.
	MinAddress = 0
	MaxAddress = 99

	// MaxBodySize is the largest address+payload the 3-digit length field can describe.
	MaxBodySize = 999

	addressDigits  = 2
	lengthDigits   = 3
	checksumDigits = 2

	// ACK status STX LLL CC ETX XON
	minContentReplySize = 10
	// offset of the first content byte in a content reply
	contentOffset = 6
)

// Serial defaults: 115200 8N1, 0.5s inter-byte timeout.
const (
	DefaultBaudRate = 115200
	DefaultAddress  = 0

	serialTimeout     = 500 * time.Millisecond
	serialIdleTimeout = 60 * time.Second

	responseMaxSize = 256
)
