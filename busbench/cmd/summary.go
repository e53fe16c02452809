package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/busbench/datarecording"
	"github.com/sarchlab/busbench/tracing"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <trace.sqlite3>",
	Short: "Summarize a recorded run.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, err := datarecording.NewReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		return summarize(cmd.Context(), cmd, reader)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func summarize(
	ctx context.Context,
	cmd *cobra.Command,
	reader datarecording.DataReader,
) error {
	out := cmd.OutOrStdout()

	if ctx == nil {
		ctx = context.Background()
	}

	reader.MapTable(datarecording.ExecTableName, datarecording.ExecInfo{})
	reader.MapTable(tracing.VerdictTable, tracing.VerdictEntry{})

	info, _, err := reader.Query(ctx, datarecording.ExecTableName,
		datarecording.QueryParams{})
	if err != nil {
		return err
	}

	for _, i := range info {
		e := i.(datarecording.ExecInfo)
		fmt.Fprintf(out, "%-18s %s\n", e.Property+":", e.Value)
	}

	tables, err := reader.ListTables()
	if err != nil {
		return err
	}

	for _, t := range tables {
		n, err := reader.Count(ctx, t)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%-18s %d rows\n", t+":", n)
	}

	verdicts, _, err := reader.Query(ctx, tracing.VerdictTable,
		datarecording.QueryParams{})
	if err != nil {
		return err
	}

	for _, v := range verdicts {
		e := v.(tracing.VerdictEntry)
		fmt.Fprintf(out, "verdict: %s, exit %d at cycle %d %s\n",
			e.Kind, e.Code, e.Cycle, e.Message)
	}

	return nil
}
