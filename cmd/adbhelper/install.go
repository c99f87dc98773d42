package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akoreshkov/adbhelper/internal/cli"
)

func installCmd(a *app) *cobra.Command {
	var replace, downgrade, grantAll bool

	cmd := &cobra.Command{
		Use:   "install <apk>",
		Short: "Install an APK on the device",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apk := args[0]
			if _, err := os.Stat(apk); err != nil {
				return cli.Argumentf("APK not found: %s", apk)
			}

			r, err := a.runner()
			if err != nil {
				return err
			}
			serial, err := a.pick(r)
			if err != nil {
				return err
			}

			adbArgs := []string{"install"}
			if replace {
				adbArgs = append(adbArgs, "-r")
			}
			if downgrade {
				adbArgs = append(adbArgs, "-d")
			}
			if grantAll {
				adbArgs = append(adbArgs, "-g")
			}
			adbArgs = append(adbArgs, apk)

			res, err := r.Run(serial, adbArgs...)
			if err != nil {
				return err
			}
			if res.Code != 0 {
				fmt.Println(strings.TrimSpace(res.Stdout))
				return fmt.Errorf("install failed: %s", firstNonEmpty(res.Stderr, res.Stdout))
			}
			fmt.Println("Install finished.")
			if out := strings.TrimSpace(res.Stdout); out != "" {
				fmt.Println(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Reinstall, keeping data (adb install -r)")
	cmd.Flags().BoolVar(&downgrade, "downgrade", false, "Allow version downgrade (adb install -d)")
	cmd.Flags().BoolVar(&grantAll, "grant-all", false, "Grant all runtime permissions (adb install -g)")
	return cmd
}

func uninstallCmd(a *app) *cobra.Command {
	var pkg string
	var keepData bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Uninstall a package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pkg == "" {
				return cli.Argumentf("--package is required")
			}

			r, err := a.runner()
			if err != nil {
				return err
			}
			serial, err := a.pick(r)
			if err != nil {
				return err
			}

			adbArgs := []string{"uninstall"}
			if keepData {
				adbArgs = append(adbArgs, "-k")
			}
			adbArgs = append(adbArgs, pkg)

			res, err := r.Run(serial, adbArgs...)
			if err != nil {
				return err
			}
			fmt.Println(firstNonEmpty(res.Stdout, res.Stderr))
			if res.Code != 0 {
				return fmt.Errorf("uninstall exited %d", res.Code)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pkg, "package", "", "Package name")
	cmd.Flags().BoolVar(&keepData, "keep-data", false, "Keep app data and cache (-k)")
	return cmd
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
