package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/spf13/cobra"

	"github.com/akoreshkov/adbhelper/internal/history"
)

const (
	recordMinSeconds = 1
	recordMaxSeconds = 180
)

func recordCmd(a *app) *cobra.Command {
	var duration int
	var bitrate float64
	var out string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record the screen to an mp4",
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

			if duration < recordMinSeconds {
				duration = recordMinSeconds
			}
			if duration > recordMaxSeconds {
				duration = recordMaxSeconds
			}
			bps := fmt.Sprintf("%d", int(bitrate*1_000_000))

			remoteTmp := fmt.Sprintf("/sdcard/adbhelper_record_%d.mp4", time.Now().Unix())
			outPath := out
			if outPath == "" {
				outPath = outputName(a.cfg.OutputDirShots, serial, "mp4")
			}
			if err := ensureDir(filepath.Dir(outPath)); err != nil {
				return err
			}

			fmt.Printf("Recording screen for %d s...\n", duration)
			res, err := r.RunTimeout(time.Duration(duration+5)*time.Second, serial,
				"shell", "screenrecord",
				fmt.Sprintf("--time-limit=%d", duration),
				fmt.Sprintf("--bit-rate=%s", bps),
				remoteTmp)
			if err != nil {
				return err
			}
			if res.Code != 0 {
				return fmt.Errorf("screenrecord exited %d: %s", res.Code, firstNonEmpty(res.Stderr, res.Stdout))
			}

			pullRes, err := r.Run(serial, "pull", remoteTmp, outPath)
			if err != nil || pullRes.Code != 0 {
				// the recording already happened; clean the device up
				// before reporting the failure
				r.Run(serial, "shell", "rm", "-f", remoteTmp)
				if err != nil {
					return err
				}
				return fmt.Errorf("pull recording: %s", firstNonEmpty(pullRes.Stderr, pullRes.Stdout))
			}
			r.Run(serial, "shell", "rm", "-f", remoteTmp)

			if !r.DryRun() {
				a.recordHistory(history.Capture{
					ID:        shortuuid.New(),
					Serial:    serial,
					Kind:      "record",
					File:      outPath,
					StartedAt: history.Now(),
					Duration:  duration,
					ExitCode:  res.Code,
				})
			}

			fmt.Println("Recording saved:", outPath)
			return nil
		},
	}

	cmd.Flags().IntVar(&duration, "duration", 30, "Duration in seconds (1-180)")
	cmd.Flags().Float64Var(&bitrate, "bitrate", 4, "Bitrate in Mbit/s")
	cmd.Flags().StringVar(&out, "out", "", "Output .mp4 path (defaults under the screenshots dir)")
	return cmd
}

// recordHistory stores a capture record, logging instead of failing: the
// artifact on disk matters more than the bookkeeping row.
func (a *app) recordHistory(c history.Capture) {
	db, err := history.Open(a.cfg.HistoryDB)
	if err != nil {
		a.log.Warn().Err(err).Msg("open history db")
		return
	}
	defer db.Close()
	if err := db.AddCapture(c); err != nil {
		a.log.Warn().Err(err).Msg("record capture history")
	}
}
