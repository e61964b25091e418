package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	bmac "github.com/ena63/pyshell"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := bmac.ListPorts()
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			return bmac.ErrNoPort
		}
		printPorts(cmd, ports)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

func printPorts(cmd *cobra.Command, ports []bmac.PortInfo) {
	out := cmd.OutOrStdout()
	for _, p := range ports {
		mark := " "
		if p.IsFTDI() {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %s\n", mark, p.Name)
		if p.IsUSB {
			fmt.Fprintf(out, "     USB ID      %s:%s\n", p.VID, p.PID)
			fmt.Fprintf(out, "     USB serial  %s\n", p.SerialNumber)
		}
	}
}

// resolvePort returns name, or the FTDI port when name is empty. With several
// FTDI ports the operator picks one.
func resolvePort(name string) (string, error) {
	if name != "" {
		return bmac.NormalizePortName(name), nil
	}
	ports, err := bmac.FindFTDIPorts()
	if err != nil {
		return "", fmt.Errorf("no FTDI serial interface found: %w", err)
	}
	return selectPort(ports, func(names []string) (string, error) {
		prompt := promptui.Select{
			Label:    "Select serial port",
			HideHelp: true,
			Items:    names,
		}
		_, result, err := prompt.Run()
		return result, err
	})
}

func selectPort(ports []bmac.PortInfo, pick func([]string) (string, error)) (string, error) {
	switch len(ports) {
	case 0:
		return "", bmac.ErrNoPort
	case 1:
		return ports[0].Name, nil
	}
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.Name
	}
	name, err := pick(names)
	if err != nil {
		return "", fmt.Errorf("port selection: %w", err)
	}
	return name, nil
}
