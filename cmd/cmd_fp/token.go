package cmd_fp

import (
	"fmt"

	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/servs/s_fp/fp_api"

	"github.com/spf13/cobra"
)

var (
	tokenUser string
	tokenRole string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an API token signed with the configured secret",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch tokenRole {
		case constant.RoleAdmin, constant.RoleReader:
		default:
			return fmt.Errorf("%w: role %q", constant.ErrBadRequest, tokenRole)
		}
		tok, err := fp_api.NewAuth(cfg.HTTP).IssueToken(tokenUser, tokenRole)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenUser, "user", "u", "operator", "Token subject")
	tokenCmd.Flags().StringVarP(&tokenRole, "role", "r", constant.RoleReader, "Token role (admin|reader)")
	register(tokenCmd)
}
