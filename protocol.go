// Copyright 2014 Quoc-Viet Nguyen. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD license. See the LICENSE file for details.

package bmac

// Command is a textual device command addressed to one module.
// The payload is opaque ASCII; its keyword grammar belongs to the device.
type Command struct {
	Address int
	Payload string
}

// Packager specifies the framing layer.
type Packager interface {
	Encode(cmd *Command) (frame []byte, err error)
	Decode(raw []byte) (resp *Response, err error)
}

// Transporter specifies the transport layer. Send writes the whole frame and
// returns whatever the device answered within the read window.
type Transporter interface {
	Send(frame []byte) (raw []byte, err error)
}
