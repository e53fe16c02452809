// Package cmd provides the command-line interface for busbench.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/busbench/config"
	"github.com/sarchlab/busbench/dut"
	"github.com/sarchlab/busbench/verdict"
)

// rootCmd runs one bench when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "busbench <image> <profile> [seed]",
	Short: "Run a bus master against an emulated Wishbone memory.",
	Long: `busbench loads a binary memory image, clocks a device under test ` +
		`against it, checks every burst and peripheral byte, and exits with ` +
		`a code that names the outcome. An odd seed answers every request ` +
		`at once, an even seed adds random wait states. Profile "` +
		config.UARTProfile + `" also requires the peripheral output to match.`,
	Args:          cobra.MaximumNArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		atexit.Exit(int(runRoot(cmd, args)))
	},
}

func init() {
	f := rootCmd.Flags()
	f.String("variant", config.DefaultVariant,
		"memory variant, one of "+strings.Join(config.VariantNames(), ", "))
	f.Uint64("max-cycles", config.DefaultMaxCycles,
		"fail when no result is reported within this many cycles")
	f.Uint64("reset-hold", config.DefaultResetHold,
		"clock half-periods to hold reset for")
	f.String("dut", config.DefaultDUT,
		"device model, one of "+strings.Join(dut.ModelNames(), ", "))
	f.String("trace", "",
		"record the run into a SQLite file or a clickhouse:// DSN")
	f.Bool("monitor", false, "serve a monitoring page while running")
	f.Int("monitor-port", 0, "port of the monitoring page, random if 0")
	f.Bool("open-browser", false, "open the monitoring page in a browser")
	f.BoolP("verbose", "v", false, "log every beat, stall, and byte")
	f.Bool("log-events", false, "log every clock edge")
	f.Bool("stats", false, "print bus statistics after the run")
	f.String("env-file", "", "load settings from this file instead of .env")
}

func runRoot(cmd *cobra.Command, args []string) verdict.Code {
	r := &benchRun{
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}

	if len(args) == 0 {
		fmt.Fprintln(r.errOut, "Error: no memory image given")
		fmt.Fprintln(r.errOut, cmd.UsageString())

		return verdict.CodeNoImage
	}

	c, err := configFromCommand(cmd, args)
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: %s\n", err)
		return verdict.CodeGeneric
	}

	r.cfg = c
	r.verbose, _ = cmd.Flags().GetBool("verbose")
	r.logEvents, _ = cmd.Flags().GetBool("log-events")
	r.stats, _ = cmd.Flags().GetBool("stats")

	return r.execute()
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		atexit.Exit(int(verdict.CodeGeneric))
	}

	atexit.Exit(0)
}
