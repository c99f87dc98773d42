package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/akoreshkov/adbhelper/internal/cli"
)

func screenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Screen parameters (size/density/rotate)",
	}
	cmd.AddCommand(screenSizeCmd(a))
	cmd.AddCommand(screenDensityCmd(a))
	cmd.AddCommand(screenRotateCmd(a))
	return cmd
}

// runWM executes one `adb shell wm ...` get-or-set command.
func runWM(a *app, args ...string) error {
	r, err := a.runner()
	if err != nil {
		return err
	}
	serial, err := a.pick(r)
	if err != nil {
		return err
	}
	res, err := r.Run(serial, append([]string{"shell", "wm"}, args...)...)
	if err != nil {
		return err
	}
	fmt.Println(firstNonEmpty(res.Stdout, res.Stderr))
	if res.Code != 0 {
		return fmt.Errorf("wm exited %d", res.Code)
	}
	return nil
}

func screenSizeCmd(a *app) *cobra.Command {
	var set string

	cmd := &cobra.Command{
		Use:   "size",
		Short: "Get or set screen size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if set != "" {
				return runWM(a, "size", set)
			}
			return runWM(a, "size")
		},
	}

	cmd.Flags().StringVar(&set, "set", "", "Set WxH, e.g. 1080x1920")
	return cmd
}

func screenDensityCmd(a *app) *cobra.Command {
	var set int

	cmd := &cobra.Command{
		Use:   "density",
		Short: "Get or set screen density",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if set > 0 {
				return runWM(a, "density", strconv.Itoa(set))
			}
			return runWM(a, "density")
		},
	}

	cmd.Flags().IntVar(&set, "set", 0, "Set density in dpi")
	return cmd
}

func screenRotateCmd(a *app) *cobra.Command {
	var landscape, portrait, unlock bool

	cmd := &cobra.Command{
		Use:   "rotate",
		Short: "Screen orientation",
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

			put := func(key, value string) error {
				res, err := r.Run(serial, "shell", "settings", "put", "system", key, value)
				if err != nil {
					return err
				}
				if res.Code != 0 {
					return fmt.Errorf("settings put %s: %s", key, firstNonEmpty(res.Stderr, res.Stdout))
				}
				return nil
			}

			switch {
			case landscape:
				if err := put("accelerometer_rotation", "0"); err != nil {
					return err
				}
				return put("user_rotation", "1")
			case portrait:
				if err := put("accelerometer_rotation", "0"); err != nil {
					return err
				}
				return put("user_rotation", "0")
			case unlock:
				return put("accelerometer_rotation", "1")
			default:
				return cli.Argumentf("pass one of --landscape, --portrait, --unlock")
			}
		},
	}

	cmd.Flags().BoolVar(&landscape, "landscape", false, "Landscape orientation")
	cmd.Flags().BoolVar(&portrait, "portrait", false, "Portrait orientation")
	cmd.Flags().BoolVar(&unlock, "unlock", false, "Restore auto-rotation")
	cmd.MarkFlagsMutuallyExclusive("landscape", "portrait", "unlock")
	return cmd
}
