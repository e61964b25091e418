// Copyright 2014 Quoc-Viet Nguyen. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD license. See the LICENSE file for details.

package bmac

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goburrow/serial"
	"go.uber.org/zap"
)

// ClientHandler implements Packager and Transporter interface.
type ClientHandler struct {
	bmacPackager
	bmacSerialTransporter
}

// NewClientHandler allocates and initializes a ClientHandler for the serial
// device at address with the default 115200 8N1 settings.
func NewClientHandler(address string) *ClientHandler {
	handler := &ClientHandler{}
	handler.Address = address
	handler.BaudRate = DefaultBaudRate
	handler.DataBits = 8
	handler.StopBits = 1
	handler.Parity = "N"
	handler.Timeout = serialTimeout
	handler.IdleTimeout = serialIdleTimeout
	return handler
}

// bmacSerialTransporter implements Transporter interface.
type bmacSerialTransporter struct {
	serialPort
}

// Send writes the frame and collects the reply. Reading stops when the reply
// ends with XON, the buffer is full or the port times out; a timeout is not an
// error, the classifier reports an empty or truncated reply.
func (mb *bmacSerialTransporter) Send(frame []byte) (raw []byte, err error) {
	mb.serialPort.mu.Lock()
	defer mb.serialPort.mu.Unlock()

	// Make sure port is connected
	if err = mb.serialPort.connect(); err != nil {
		return
	}
	// Start the timer to close when idle
	mb.serialPort.lastActivity = time.Now()
	mb.serialPort.startCloseTimer()

	mb.serialPort.flush()

	log := mb.serialPort.logger()
	log.Debug("serial: sending", zap.Int("bytes", len(frame)), zap.String("frame", fmt.Sprintf("% x", frame)))
	if _, err = mb.port.Write(frame); err != nil {
		mb.serialPort.close()
		return nil, fmt.Errorf("serial: write: %w", err)
	}
	time.Sleep(mb.calculateDelay(len(frame)))

	raw, err = readReply(mb.port, responseMaxSize)
	if err != nil {
		mb.serialPort.close()
		return nil, fmt.Errorf("serial: read: %w", err)
	}
	log.Debug("serial: received", zap.Int("bytes", len(raw)), zap.String("reply", fmt.Sprintf("% x", raw)))
	return raw, nil
}

// calculateDelay roughly calculates time needed to put chars on the line.
func (mb *bmacSerialTransporter) calculateDelay(chars int) time.Duration {
	var characterDelay, frameDelay int // us

	if mb.BaudRate <= 0 || mb.BaudRate > 19200 {
		characterDelay = 750
		frameDelay = 1750
	} else {
		characterDelay = 15000000 / mb.BaudRate
		frameDelay = 35000000 / mb.BaudRate
	}
	return time.Duration(characterDelay*chars+frameDelay) * time.Microsecond
}

// readReply reads from r until the data ends with XON, max bytes have been
// read or r times out.
func readReply(r io.Reader, max int) ([]byte, error) {
	buf := make([]byte, max)
	n := 0
	for n < max {
		m, err := r.Read(buf[n:])
		n += m
		if n > 0 && buf[n-1] == XON {
			break
		}
		if err != nil {
			if err == io.EOF || errors.Is(err, serial.ErrTimeout) {
				break
			}
			return nil, err
		}
		// go.bug.st ports return 0, nil on timeout
		if m == 0 {
			break
		}
	}
	return buf[:n], nil
}
