package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

// outputName builds the default artifact name: <serial>_<timestamp>.<ext>.
func outputName(dir, serial, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", serial, time.Now().Format("20060102-150405"), ext))
}

func screenshotCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "screenshot",
		Short: "Take a screenshot",
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

			outPath := out
			if outPath == "" {
				outPath = outputName(a.cfg.OutputDirShots, serial, "png")
			}
			if err := ensureDir(filepath.Dir(outPath)); err != nil {
				return err
			}

			if r.DryRun() {
				fmt.Printf("[dry-run] would save screenshot to %s\n", outPath)
			}
			// exec-out keeps the PNG bytes unmangled, unlike shell screencap
			data, res, err := r.RunRaw(r.Timeout(), serial, "exec-out", "screencap", "-p")
			if err != nil {
				return err
			}
			if r.DryRun() {
				return nil
			}
			if res.Code != 0 {
				return fmt.Errorf("screencap exited %d: %s", res.Code, firstNonEmpty(res.Stderr))
			}
			if len(data) == 0 {
				return fmt.Errorf("screencap produced an empty screenshot")
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write screenshot: %w", err)
			}
			fmt.Println("Screenshot saved:", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output .png path (defaults under the screenshots dir)")
	return cmd
}
