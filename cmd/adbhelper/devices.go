package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/akoreshkov/adbhelper/internal/device"
	"github.com/akoreshkov/adbhelper/internal/render"
)

func devicesCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List connected devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.runner()
			if err != nil {
				return err
			}

			devs, err := device.List(r)
			if err != nil {
				return err
			}

			if asJSON {
				return render.JSON(os.Stdout, devs)
			}

			rows := make([][]string, 0, len(devs))
			for _, d := range devs {
				rows = append(rows, []string{d.Serial, d.State, d.Model, d.Android, d.SDK, d.Transport})
			}
			render.Table(os.Stdout, []string{"serial", "state", "model", "android", "sdk", "transport"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON output")
	return cmd
}
