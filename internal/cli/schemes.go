package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var schemesCmd = &cobra.Command{
	Use:   "schemes",
	Short: "List the schemes names can be converted from and to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, cfg, err := loadConverter(cmd)
		if err != nil {
			return err
		}

		schemes := conv.ValidSchemes()
		if cfg.JSONOutput {
			data, err := json.MarshalIndent(schemes, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(schemes, "\n"))
		return nil
	},
}
