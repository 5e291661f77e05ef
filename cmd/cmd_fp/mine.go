package cmd_fp

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rskv-p/fpmine/pkg/x_data"
	"github.com/rskv-p/fpmine/pkg/x_log"
	"github.com/rskv-p/fpmine/servs/s_fp/fp_serv"

	"github.com/spf13/cobra"
)

// jobFlags are shared by mine and tree.
type jobFlags struct {
	dataset    string
	file       string
	attrs      string
	minSupport int
}

func (f *jobFlags) bind(c *cobra.Command) {
	c.Flags().StringVarP(&f.dataset, "dataset", "d", "", "Catalog dataset, by number or name")
	c.Flags().StringVarP(&f.file, "file", "f", "", "Delimited data file to mine instead of a catalog dataset")
	c.Flags().StringVar(&f.attrs, "attrs", "", `Attribute names paired with the columns of --file, e.g. 'age,"work class"'`)
	c.Flags().IntVarP(&f.minSupport, "min-support", "s", 0, "Minimum support count, at least 1 (default from config)")
}

// job builds a job from the flags; a positional argument names the dataset.
func (f *jobFlags) job(args []string) (fp_serv.Job, error) {
	attrs, err := x_data.SplitAttributes(f.attrs)
	if err != nil {
		return fp_serv.Job{}, err
	}
	job := fp_serv.Job{
		Dataset:    f.dataset,
		File:       f.file,
		Attributes: attrs,
		MinSupport: f.minSupport,
	}
	if job.Dataset == "" && len(args) > 0 {
		job.Dataset = args[0]
	}
	if job.MinSupport == 0 {
		job.MinSupport = cfg.MinSupport
	}
	return job, nil
}

var (
	mineFlags   jobFlags
	mineTree    bool
	mineStore   bool
	minePublish bool
	mineQuiet   bool
)

var mineCmd = &cobra.Command{
	Use:   "mine [dataset]",
	Short: "Mine frequent itemsets from a dataset",
	Long: `Mine frequent itemsets from a catalog dataset or a delimited file.

An itemset is frequent when it occurs in at least --min-support transactions.
The support must be a positive count: 1 reports every itemset that occurs at
all, and 0 or a negative value is rejected.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, b, err := openService(mineStore, minePublish)
		if err != nil {
			return err
		}
		defer b.close()

		job, err := mineFlags.job(args)
		if err != nil {
			return err
		}
		job.Tree = mineTree
		job.Collect = !mineQuiet
		job.Store = mineStore
		job.Publish = minePublish

		sum, err := svc.Run(ctx, job)
		if err != nil {
			return err
		}
		if sum.Subject != "" {
			x_log.Info().Str("subject", sum.Subject).Msg("itemsets published")
		}

		out := cmd.OutOrStdout()
		color := out == os.Stdout && x_log.IsTerminal(os.Stdout)
		return fp_serv.Report(out, sum, color)
	},
}

func init() {
	mineFlags.bind(mineCmd)
	mineCmd.Flags().BoolVarP(&mineTree, "tree", "t", false, "Print the FP-tree before the itemsets")
	mineCmd.Flags().BoolVar(&mineStore, "store", false, "Persist the run and its itemsets")
	mineCmd.Flags().BoolVar(&minePublish, "publish", false, "Publish itemsets on the bus")
	mineCmd.Flags().BoolVarP(&mineQuiet, "quiet", "q", false, "Print only the totals")
	register(mineCmd)
}
