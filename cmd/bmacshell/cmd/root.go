package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	bmac "github.com/ena63/pyshell"
	"github.com/ena63/pyshell/internal/config"
	"github.com/ena63/pyshell/internal/logging"
)

var v = config.New()

var rootCmd = &cobra.Command{
	Use:          "bmacshell",
	Short:        "Interactive shell for BMAC motor controllers",
	Long:         `Sends text commands to a BMAC module over a serial line and prints its replies.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runShell,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

const (
	flagConfig    = "config"
	flagDebug     = "debug"
	flagPort      = "port"
	flagBaudrate  = "baudrate"
	flagAddress   = "address"
	flagBackend   = "backend"
	flagUppercase = "uppercase"
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String(flagConfig, "", "config file (default ./bmacshell.yaml, $BMAC_CONFIG)")
	pf.BoolP(flagDebug, "d", false, "debug mode")
	pf.StringP(flagPort, "p", "", "serial port name, empty = auto-detect FTDI")
	pf.IntP(flagBaudrate, "b", bmac.DefaultBaudRate, "baudrate (9600, 19200, 38400, 57600, 115200)")
	pf.IntP(flagAddress, "a", bmac.DefaultAddress, "module address (0-99)")
	pf.String(flagBackend, bmac.BackendGoburrow, "serial backend (goburrow, bugst)")
	pf.BoolP(flagUppercase, "u", false, "upper-case commands before sending")

	mustBind(v, "serial.port", pf.Lookup(flagPort))
	mustBind(v, "serial.baudRate", pf.Lookup(flagBaudrate))
	mustBind(v, "serial.backend", pf.Lookup(flagBackend))
	mustBind(v, "device.address", pf.Lookup(flagAddress))
	mustBind(v, "shell.uppercase", pf.Lookup(flagUppercase))
}

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// app carries what every subcommand needs.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

func newApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString(flagConfig)
	cfg, err := config.Load(v, path)
	if err != nil {
		return nil, err
	}
	if debug, _ := cmd.Flags().GetBool(flagDebug); debug {
		cfg.Logging.Level = "debug"
	}
	log, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	log.Debug("configuration",
		zap.String("port", cfg.Serial.Port),
		zap.Int("baudrate", cfg.Serial.BaudRate),
		zap.Int("address", cfg.Device.Address),
		zap.String("backend", cfg.Serial.Backend))
	return &app{cfg: cfg, log: log}, nil
}

// client opens a client for the configured module, resolving the port first.
func (a *app) client() (*bmac.Client, *bmac.ClientHandler, error) {
	port, err := resolvePort(a.cfg.Serial.Port)
	if err != nil {
		return nil, nil, err
	}
	s := a.cfg.Serial
	handler := bmac.NewClientHandler(port)
	handler.Backend = s.Backend
	handler.BaudRate = s.BaudRate
	handler.DataBits = s.DataBits
	handler.StopBits = s.StopBits
	handler.Parity = s.Parity
	handler.Timeout = s.Timeout
	handler.IdleTimeout = s.IdleTimeout
	handler.Uppercase = a.cfg.Shell.Uppercase
	handler.Logger = a.log.Named("serial")
	if err := handler.Connect(); err != nil {
		return nil, nil, err
	}
	client, err := bmac.NewClient(handler, a.cfg.Device.Address)
	if err != nil {
		handler.Close()
		return nil, nil, err
	}
	return client, handler, nil
}
