package cmd_fp

import (
	"fmt"

	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_data"
	"github.com/rskv-p/fpmine/pkg/x_fptree"
	"github.com/rskv-p/fpmine/pkg/x_log"

	"github.com/spf13/cobra"
)

var treeFlags jobFlags

var treeCmd = &cobra.Command{
	Use:   "tree [dataset]",
	Short: "Print the FP-tree of a dataset without mining",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, b, err := openService(false, false)
		if err != nil {
			return err
		}
		defer b.close()

		job, err := treeFlags.job(args)
		if err != nil {
			return err
		}
		if job.MinSupport < 1 {
			return fmt.Errorf("%w: %d", constant.ErrInvalidSupport, job.MinSupport)
		}
		name, txs, err := svc.Load(job)
		if err != nil {
			return err
		}

		tree := x_fptree.Build(txs, job.MinSupport)
		defer tree.Release()

		x_log.Info().Str("dataset", name).Int("nodes", tree.Len()).Msg("tree built")
		tree.Dump(cmd.OutOrStdout(), x_data.CleanItem)
		return nil
	},
}

func init() {
	treeFlags.bind(treeCmd)
	register(treeCmd)
}
