package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/akoreshkov/adbhelper/internal/device"
	"github.com/akoreshkov/adbhelper/internal/render"
)

func deviceInfoCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "device-info",
		Short: "Device summary (model, version, battery, storage)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.runner()
			if err != nil {
				return err
			}
			serial, err := a.pick(r)
			if err != nil {
				return err
			}

			info, err := device.Gather(r, serial)
			if err != nil {
				return err
			}

			if asJSON {
				return render.JSON(os.Stdout, info)
			}
			render.Table(os.Stdout,
				[]string{"serial", "model", "brand", "android", "sdk", "abi", "root", "battery"},
				[][]string{{info.Serial, info.Model, info.Brand, info.Android, info.SDK, info.ABI, info.Root, info.Battery}})
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON output")
	return cmd
}
