package cmd

import (
	"fmt"
	"os"

	"github.com/rskv-p/fpmine/cmd/cmd_fp"
	"github.com/rskv-p/fpmine/constant"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           constant.AppName,
	Short:         "FP-Growth frequent itemset miner",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return cmd_fp.Setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		cmd_fp.Teardown()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cmd_fp.ConfigPath, "config", "c", "", "Config file (default $FP_CONFIG or ./fpmine.json)")
	rootCmd.PersistentFlags().StringVar(&cmd_fp.LogLevel, "log-level", "", "Override log level")
	rootCmd.AddCommand(cmd_fp.Commands()...)
}
