package bmac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPortInfoIsFTDI(t *testing.T) {
	tests := []struct {
		name string
		port PortInfo
		want bool
	}{
		{name: "FT232R", port: PortInfo{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0403", PID: "6001"}, want: true},
		{name: "FT2232H", port: PortInfo{Name: "/dev/ttyUSB1", IsUSB: true, VID: "0403", PID: "6010"}, want: true},
		{name: "other FTDI product", port: PortInfo{Name: "/dev/ttyUSB2", IsUSB: true, VID: "0403", PID: "7001"}, want: false},
		{name: "CH340", port: PortInfo{Name: "/dev/ttyUSB3", IsUSB: true, VID: "1A86", PID: "7523"}, want: false},
		{name: "onboard UART", port: PortInfo{Name: "/dev/ttyS0"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.port.IsFTDI())
		})
	}
}

func TestFilterFTDI(t *testing.T) {
	ports := []PortInfo{
		{Name: "/dev/ttyS0"},
		{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0403", PID: "6001"},
		{Name: "/dev/ttyACM0", IsUSB: true, VID: "2341", PID: "0043"},
		{Name: "/dev/ttyUSB1", IsUSB: true, VID: "0403", PID: "6015"},
	}

	got := FilterFTDI(ports)
	assert.Equal(t, []PortInfo{ports[1], ports[3]}, got)
	assert.Empty(t, FilterFTDI(ports[:1]))
}
