package cmd_fp

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rskv-p/fpmine/servs/s_fp/fp_serv"

	"github.com/spf13/cobra"
)

var datasetsCmd = &cobra.Command{
	Use:     "datasets",
	Aliases: []string{"ls"},
	Short:   "List the dataset catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := fp_serv.New(cfg)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTITLE\tFILE\tPRESENT")
		for _, d := range svc.Datasets() {
			_, statErr := os.Stat(d.Path(cfg.DataDir))
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%v\n", d.ID, d.Name, d.Title, d.File, statErr == nil)
		}
		return w.Flush()
	},
}

func init() {
	register(datasetsCmd)
}
