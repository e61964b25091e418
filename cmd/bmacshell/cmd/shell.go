package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	bmac "github.com/ena63/pyshell"
)

const banner = `╔════════════════════════════╗
║        BMAC-SHELL          ║
╚════════════════════════════╝
`

const quitCommand = "quit"

var (
	green = color.New(color.FgGreen).SprintfFunc()
	red   = color.New(color.FgRed).SprintfFunc()
)

type executor interface {
	Execute(payload string) (*bmac.Response, error)
}

func runShell(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	if a.cfg.Shell.Banner {
		fmt.Fprint(out, banner)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	history := a.cfg.Shell.History
	if history != "" {
		if f, err := os.Open(history); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	for {
		input, err := line.Prompt(a.cfg.Shell.Prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if !runLine(out, a.log, client, input) {
			break
		}
	}

	if history != "" {
		f, err := os.Create(history)
		if err != nil {
			a.log.Warn("history not saved", zap.Error(err))
			return nil
		}
		defer f.Close()
		if _, err := line.WriteHistory(f); err != nil {
			a.log.Warn("history not saved", zap.Error(err))
		}
	}
	return nil
}

// runLine sends one shell line and prints the outcome. It returns false when
// the shell should stop.
func runLine(w io.Writer, log *zap.Logger, ex executor, input string) bool {
	input = strings.TrimRight(input, "\r\n")
	if input == quitCommand {
		return false
	}
	if strings.TrimSpace(input) == "" {
		return true
	}
	resp, err := ex.Execute(input)
	if err != nil {
		printError(w, log, err)
		return true
	}
	fmt.Fprintf(w, "   %s\n", green("%s", resp))
	return true
}

func printError(w io.Writer, log *zap.Logger, err error) {
	var re *bmac.ResponseError
	if errors.As(err, &re) {
		log.Debug("reply rejected",
			zap.Stringer("kind", re.Kind),
			zap.Bool("retryable", re.Retryable()),
			zap.String("raw", fmt.Sprintf("% x", re.Raw)))
	}
	fmt.Fprintf(w, "%s\n", red("Error : %v", err))
}
