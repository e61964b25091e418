package bmac

import (
	"fmt"
)

// Client sends commands to one module and classifies its replies.
type Client struct {
	packager    Packager
	transporter Transporter
	address     int
}

// NewClient creates a new client for the module at address with given backend handler.
func NewClient(handler *ClientHandler, address int) (*Client, error) {
	if address < MinAddress || address > MaxAddress {
		return nil, &EncodingError{
			Err:    ErrInvalidAddress,
			Detail: fmt.Sprintf("address %d is outside %d-%d", address, MinAddress, MaxAddress),
		}
	}
	return &Client{
		packager:    handler,
		transporter: handler,
		address:     address,
	}, nil
}

func NewDefaultClient(handler *ClientHandler) *Client {
	c, _ := NewClient(handler, DefaultAddress)
	return c
}

// Address returns the module address commands are sent to.
func (c *Client) Address() int {
	return c.address
}

// Execute sends payload and waits for the reply. Device-level failures are
// returned as *ResponseError, transport failures are wrapped I/O errors.
// Execute never retries.
func (c *Client) Execute(payload string) (*Response, error) {
	return c.send(&Command{Address: c.address, Payload: payload})
}

func (c *Client) send(cmd *Command) (*Response, error) {
	frame, err := c.packager.Encode(cmd)
	if err != nil {
		return nil, err
	}
	raw, err := c.transporter.Send(frame)
	if err != nil {
		return nil, err
	}
	return c.packager.Decode(raw)
}
