package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akoreshkov/adbhelper/internal/cli"
)

func pullCmd(a *app) *cobra.Command {
	var remote, out string

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Copy a file or directory from the device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if remote == "" {
				return cli.Argumentf("--remote is required")
			}
			local := out
			if local == "" {
				local = "."
			}

			r, err := a.runner()
			if err != nil {
				return err
			}
			serial, err := a.pick(r)
			if err != nil {
				return err
			}

			res, err := r.Run(serial, "pull", remote, local)
			if err != nil {
				return err
			}
			fmt.Println(firstNonEmpty(res.Stdout, res.Stderr))
			if res.Code != 0 {
				return fmt.Errorf("pull exited %d", res.Code)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "", "Path on the device")
	cmd.Flags().StringVar(&out, "out", "", "Local destination (default current dir)")
	cmd.MarkFlagRequired("remote")
	return cmd
}

func pushCmd(a *app) *cobra.Command {
	var src, remote string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Copy a file or directory to the device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if src == "" || remote == "" {
				return cli.Argumentf("--src and --remote are required")
			}

			r, err := a.runner()
			if err != nil {
				return err
			}
			serial, err := a.pick(r)
			if err != nil {
				return err
			}

			res, err := r.Run(serial, "push", src, remote)
			if err != nil {
				return err
			}
			fmt.Println(firstNonEmpty(res.Stdout, res.Stderr))
			if res.Code != 0 {
				return fmt.Errorf("push exited %d", res.Code)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&src, "src", "", "Local file or directory")
	cmd.Flags().StringVar(&remote, "remote", "", "Path on the device")
	cmd.MarkFlagRequired("src")
	cmd.MarkFlagRequired("remote")
	return cmd
}
