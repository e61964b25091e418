package bmac

import (
	"errors"
	"runtime"
	"strings"

	"go.bug.st/serial/enumerator"
)

// FTDIVendorID is the USB vendor of the FTDI bridges fitted to BMAC racks.
const FTDIVendorID = "0403"

// ErrNoPort is returned when no serial port matches.
var ErrNoPort = errors.New("no serial ports found")

// PortInfo describes a serial port found on the host.
type PortInfo struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
}

// IsFTDI reports whether the port is an FTDI 60xx USB bridge.
func (p PortInfo) IsFTDI() bool {
	return p.IsUSB && strings.EqualFold(p.VID, FTDIVendorID) && strings.HasPrefix(p.PID, "60")
}

// ListPorts returns every serial port of the host.
func ListPorts() ([]PortInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}
	out := make([]PortInfo, 0, len(ports))
	for _, p := range ports {
		out = append(out, PortInfo{
			Name:         p.Name,
			IsUSB:        p.IsUSB,
			VID:          p.VID,
			PID:          p.PID,
			SerialNumber: p.SerialNumber,
		})
	}
	return out, nil
}

// FindFTDIPorts returns the FTDI ports of the host.
func FindFTDIPorts() ([]PortInfo, error) {
	ports, err := ListPorts()
	if err != nil {
		return nil, err
	}
	ftdi := FilterFTDI(ports)
	if len(ftdi) == 0 {
		return nil, ErrNoPort
	}
	return ftdi, nil
}

// FilterFTDI keeps the FTDI ports of ports.
func FilterFTDI(ports []PortInfo) []PortInfo {
	var out []PortInfo
	for _, p := range ports {
		if p.IsFTDI() {
			out = append(out, p)
		}
	}
	return out
}

// NormalizePortName upper-cases COM port names on windows.
func NormalizePortName(name string) string {
	if runtime.GOOS == "windows" {
		return strings.ToUpper(name)
	}
	return name
}
