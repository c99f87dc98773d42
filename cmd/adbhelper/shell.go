package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akoreshkov/adbhelper/internal/cli"
)

func shellCmd(a *app) *cobra.Command {
	var root bool

	cmd := &cobra.Command{
		Use:   "shell [flags] -- <command>...",
		Short: "Run a command in the device shell",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cli.Argumentf("pass a shell command (use -- to stop flag parsing)")
			}

			r, err := a.runner()
			if err != nil {
				return err
			}
			serial, err := a.pick(r)
			if err != nil {
				return err
			}

			full := []string{"shell"}
			if root {
				full = append(full, "su", "-c", strings.Join(args, " "))
			} else {
				full = append(full, args...)
			}

			res, err := r.Run(serial, full...)
			if err != nil {
				return err
			}
			if res.Stdout != "" {
				fmt.Print(res.Stdout)
			}
			if res.Code != 0 {
				if res.Stderr != "" {
					fmt.Fprint(os.Stderr, res.Stderr)
				}
				return fmt.Errorf("shell command exited %d", res.Code)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&root, "root", false, "Run through su -c (if available)")
	return cmd
}
