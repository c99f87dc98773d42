package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appops "github.com/akoreshkov/adbhelper/internal/app"
	"github.com/akoreshkov/adbhelper/internal/cli"
	"github.com/akoreshkov/adbhelper/internal/render"
)

func appCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "App operations (start/stop/clear/grant-perms/info)",
	}
	cmd.AddCommand(appStartCmd(a))
	cmd.AddCommand(appStopCmd(a))
	cmd.AddCommand(appClearCmd(a))
	cmd.AddCommand(appGrantCmd(a))
	cmd.AddCommand(appInfoCmd(a))
	return cmd
}

func appStartCmd(a *app) *cobra.Command {
	var opts appops.StartOptions

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start an activity or intent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Package == "" && opts.Activity == "" && opts.Action == "" {
				return cli.Argumentf("pass at least --package with --activity, or --action")
			}

			r, err := a.runner()
			if err != nil {
				return err
			}
			serial, err := a.pick(r)
			if err != nil {
				return err
			}

			res, err := r.Run(serial, append([]string{"shell"}, appops.BuildStartArgs(opts)...)...)
			if err != nil {
				return err
			}
			fmt.Println(firstNonEmpty(res.Stdout, res.Stderr))
			if res.Code != 0 {
				return fmt.Errorf("am start exited %d", res.Code)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Package, "package", "", "Package name (for -n <pkg>/<activity>)")
	cmd.Flags().StringVar(&opts.Activity, "activity", "", "Activity name (.MainActivity or pkg/.Activity)")
	cmd.Flags().StringVar(&opts.Action, "action", "", "Intent action, e.g. android.intent.action.VIEW")
	cmd.Flags().StringVar(&opts.Data, "data", "", "Intent data URI")
	cmd.Flags().StringArrayVar(&opts.Extras, "extra", nil, "key=value string extra (repeatable)")
	return cmd
}

func appStopCmd(a *app) *cobra.Command {
	var pkg string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Force-stop an app",
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
			res, err := r.Run(serial, "shell", "am", "force-stop", pkg)
			if err != nil {
				return err
			}
			if res.Code != 0 {
				return fmt.Errorf("force-stop: %s", firstNonEmpty(res.Stderr, res.Stdout))
			}
			fmt.Println("OK")
			return nil
		},
	}

	cmd.Flags().StringVar(&pkg, "package", "", "Package name")
	cmd.MarkFlagRequired("package")
	return cmd
}

func appClearCmd(a *app) *cobra.Command {
	var pkg string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear app data",
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
			res, err := r.Run(serial, "shell", "pm", "clear", pkg)
			if err != nil {
				return err
			}
			fmt.Println(firstNonEmpty(res.Stdout, res.Stderr))
			if res.Code != 0 {
				return fmt.Errorf("pm clear exited %d", res.Code)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pkg, "package", "", "Package name")
	cmd.MarkFlagRequired("package")
	return cmd
}

func appGrantCmd(a *app) *cobra.Command {
	var pkg string
	var perms []string

	cmd := &cobra.Command{
		Use:   "grant-perms",
		Short: "Grant runtime permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pkg == "" || len(perms) == 0 {
				return cli.Argumentf("--package and --perms are required")
			}
			r, err := a.runner()
			if err != nil {
				return err
			}
			serial, err := a.pick(r)
			if err != nil {
				return err
			}

			failed := 0
			for _, p := range perms {
				res, err := r.Run(serial, "shell", "pm", "grant", pkg, p)
				if err != nil {
					return err
				}
				if res.Code != 0 {
					failed++
					fmt.Printf("%s: FAIL - %s\n", p, firstNonEmpty(res.Stderr, res.Stdout))
				} else {
					fmt.Printf("%s: OK\n", p)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d permission(s) not granted", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pkg, "package", "", "Package name")
	cmd.Flags().StringSliceVar(&perms, "perms", nil, "Permissions to grant")
	cmd.MarkFlagRequired("package")
	cmd.MarkFlagRequired("perms")
	return cmd
}

func appInfoCmd(a *app) *cobra.Command {
	var pkg string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show package information",
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

			res, err := r.Run(serial, "shell", "dumpsys", "package", pkg)
			if err != nil {
				return err
			}
			if res.Code != 0 {
				return fmt.Errorf("dumpsys package: %s", firstNonEmpty(res.Stderr, res.Stdout))
			}

			info := appops.ParseInfo(pkg, res.Stdout)
			if pathRes, err := r.Run(serial, "shell", "pm", "path", pkg); err == nil && pathRes.Code == 0 {
				info.Path = appops.CleanPath(pathRes.Stdout)
			}
			return render.JSON(os.Stdout, info)
		},
	}

	cmd.Flags().StringVar(&pkg, "package", "", "Package name")
	cmd.MarkFlagRequired("package")
	return cmd
}
