package cmd_fp

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/rskv-p/fpmine/servs/s_fp/fp_serv"

	"github.com/spf13/cobra"
)

var (
	runsLimit   int
	runsMinSize int
)

var runsCmd = &cobra.Command{
	Use:   "runs [id]",
	Short: "List stored runs, or the itemsets of one run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, b, err := openService(true, false)
		if err != nil {
			return err
		}
		defer b.close()

		ctx := context.Background()
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			rows, err := svc.RunItemsets(ctx, args[0], runsMinSize)
			if err != nil {
				return err
			}
			for _, r := range rows {
				fmt.Fprintln(out, fp_serv.PlainItemset(r.Itemset()))
			}
			return nil
		}

		runs, err := svc.Runs(ctx, runsLimit)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATASET\tSUPPORT\tTX\tITEMSETS\tSTATUS\tMS\tCREATED")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%d\t%s\n",
				r.ID, r.Dataset, r.MinSupport, r.Transactions, r.Itemsets, r.Status,
				r.DurationMs, r.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Maximum number of runs")
	runsCmd.Flags().IntVar(&runsMinSize, "min-size", 0, "Only itemsets with at least this many items")
	register(runsCmd)
}
