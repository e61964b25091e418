// Copyright 2014 Quoc-Viet Nguyen. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD license. See the LICENSE file for details.

package bmac

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/serial"
	bugst "go.bug.st/serial"
	"go.uber.org/zap"
)

// Serial backends.
const (
	BackendGoburrow = "goburrow"
	BackendBugst    = "bugst"
)

// opener opens the configured device.
type opener func(c *serial.Config) (io.ReadWriteCloser, error)

// flusher is implemented by ports able to discard pending bytes.
type flusher interface {
	ResetInputBuffer() error
	ResetOutputBuffer() error
}

// serialPort has configuration and I/O controller.
type serialPort struct {
	// Serial port configuration.
	serial.Config

	Backend     string
	Logger      *zap.Logger
	IdleTimeout time.Duration

	mu sync.Mutex
	// port is platform-dependent data structure for serial port.
	port         io.ReadWriteCloser
	open         opener
	lastActivity time.Time
	closeTimer   *time.Timer
}

func (mb *serialPort) Connect() (err error) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	return mb.connect()
}

// connect connects to the serial port if it is not connected. Caller must hold the mutex.
func (mb *serialPort) connect() error {
	if mb.port != nil {
		return nil
	}
	open := mb.open
	if open == nil {
		var err error
		if open, err = backendOpener(mb.Backend); err != nil {
			return err
		}
	}
	port, err := open(&mb.Config)
	if err != nil {
		return fmt.Errorf("serial: open %q: %w", mb.Address, err)
	}
	mb.logger().Debug("serial: port opened",
		zap.String("port", mb.Address),
		zap.Int("baudrate", mb.BaudRate),
		zap.String("backend", mb.Backend))
	mb.port = port
	return nil
}

func (mb *serialPort) Close() (err error) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	return mb.close()
}

// close closes the serial port if it is connected. Caller must hold the mutex.
func (mb *serialPort) close() (err error) {
	if mb.port != nil {
		err = mb.port.Close()
		mb.port = nil
	}
	return
}

// flush discards stale bytes left by a previous exchange, when the backend can.
func (mb *serialPort) flush() {
	f, ok := mb.port.(flusher)
	if !ok {
		return
	}
	if err := f.ResetInputBuffer(); err != nil {
		mb.logger().Warn("serial: input flush failed", zap.Error(err))
	}
	if err := f.ResetOutputBuffer(); err != nil {
		mb.logger().Warn("serial: output flush failed", zap.Error(err))
	}
}

func (mb *serialPort) logger() *zap.Logger {
	if mb.Logger == nil {
		return zap.NewNop()
	}
	return mb.Logger
}

func (mb *serialPort) startCloseTimer() {
	if mb.IdleTimeout <= 0 {
		return
	}
	if mb.closeTimer == nil {
		mb.closeTimer = time.AfterFunc(mb.IdleTimeout, mb.closeIdle)
	} else {
		mb.closeTimer.Reset(mb.IdleTimeout)
	}
}

// closeIdle closes the connection if last activity is passed behind IdleTimeout.
func (mb *serialPort) closeIdle() {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if mb.IdleTimeout <= 0 {
		return
	}
	idle := time.Since(mb.lastActivity)
	if idle >= mb.IdleTimeout {
		mb.logger().Debug("serial: closing connection due to idle timeout", zap.Duration("idle", idle))
		mb.close()
	}
}

func backendOpener(name string) (opener, error) {
	switch name {
	case "", BackendGoburrow:
		return openGoburrow, nil
	case BackendBugst:
		return openBugst, nil
	}
	return nil, fmt.Errorf("serial: unknown backend %q", name)
}

func openGoburrow(c *serial.Config) (io.ReadWriteCloser, error) {
	return serial.Open(c)
}

// openBugst opens the port with go.bug.st/serial, whose ports can reset
// their buffers before each command.
func openBugst(c *serial.Config) (io.ReadWriteCloser, error) {
	mode := &bugst.Mode{
		BaudRate: c.BaudRate,
		DataBits: c.DataBits,
		StopBits: bugst.OneStopBit,
	}
	if c.StopBits == 2 {
		mode.StopBits = bugst.TwoStopBits
	}
	switch c.Parity {
	case "E":
		mode.Parity = bugst.EvenParity
	case "O":
		mode.Parity = bugst.OddParity
	default:
		mode.Parity = bugst.NoParity
	}
	p, err := bugst.Open(c.Address, mode)
	if err != nil {
		return nil, err
	}
	if err := p.SetReadTimeout(c.Timeout); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}
