package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	bmac "github.com/ena63/pyshell"
)

var sendCmd = &cobra.Command{
	Use:     "send COMMAND...",
	Short:   "Send one command and print the reply",
	Example: `  bmacshell send -p /dev/ttyUSB0 READ #SUPPLY_VOLTAGE`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.log.Sync()

		client, handler, err := a.client()
		if err != nil {
			return err
		}
		defer handler.Close()

		resp, err := client.Execute(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp)
		return nil
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode COMMAND...",
	Short: "Print the frame of a command without sending it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := strings.Join(args, " ")
		if v.GetBool("shell.uppercase") {
			payload = strings.ToUpper(payload)
		}
		frame, err := bmac.Encode(v.GetInt("device.address"), payload)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%q\n", frame)
		fmt.Fprintf(out, "% X\n", frame)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(encodeCmd)
}
