package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billy1624/champ/internal/app/version"
)

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(version.GetBuildInfo())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersion())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "以 JSON 输出")
	return cmd
}
