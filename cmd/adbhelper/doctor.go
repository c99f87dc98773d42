package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akoreshkov/adbhelper/internal/adb"
	"github.com/akoreshkov/adbhelper/internal/history"
)

func doctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify adb, config, output dirs and history DB",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("=== adb ===")
			explicit := a.adbFlag
			if explicit == "" {
				explicit = a.cfg.ADBPath
			}
			path, err := adb.Discover(explicit)
			if err != nil {
				fmt.Println("  Binary: NOT FOUND (install platform-tools or set adb_path)")
			} else {
				fmt.Printf("  Binary: %s\n", path)
				if r, rerr := a.runner(); rerr == nil {
					if res, verr := r.Run("", "version"); verr == nil && res.Code == 0 {
						fmt.Printf("  %s", res.Stdout)
					}
				}
			}

			fmt.Println("\n=== Config ===")
			fmt.Printf("  Default serial:  %s\n", orNone(a.cfg.DefaultSerial))
			fmt.Printf("  Default timeout: %ds\n", a.cfg.DefaultTimeout)

			fmt.Println("\n=== Output dirs ===")
			checkDir("Logs", a.cfg.OutputDirLogs)
			checkDir("Screens", a.cfg.OutputDirShots)

			fmt.Println("\n=== History ===")
			fmt.Printf("  Path: %s\n", a.cfg.HistoryDB)
			if _, err := os.Stat(a.cfg.HistoryDB); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (created on first capture)")
				return nil
			}
			db, err := history.Open(a.cfg.HistoryDB)
			if err != nil {
				fmt.Printf("  Status: OPEN FAILED (%v)\n", err)
				return nil
			}
			defer db.Close()
			if n, err := db.CaptureCount(); err == nil {
				fmt.Printf("  Captures: %d\n", n)
			}
			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (will be created on use)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
