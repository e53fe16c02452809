package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/busbench/config"
	"github.com/sarchlab/busbench/dut"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the device models and memory variants.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Devices:")
		for _, name := range dut.ModelNames() {
			fmt.Fprintf(out, "  %s\n", name)
		}

		fmt.Fprintln(out, "Memory variants:")
		for _, name := range config.VariantNames() {
			v, _ := config.VariantByName(name)
			fmt.Fprintf(out, "  %-4s %d bytes\n", name, v.Capacity)
		}
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
