package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/billy1624/champ/internal/app"
	"github.com/billy1624/champ/internal/app/version"
)

func newStartCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "启动节点",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.appOptions()
			if err != nil {
				return err
			}

			spinner, _ := pterm.DefaultSpinner.Start("正在启动 champ " + version.GetVersion())
			node, err := app.Start(opts...)
			if err != nil {
				spinner.Fail(err.Error())
				return err
			}
			spinner.Success("节点已启动，按 Ctrl+C 停止")

			node.Wait()
			pterm.Info.Println("节点已停止")
			return nil
		},
	}
}
