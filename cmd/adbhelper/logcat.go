package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/akoreshkov/adbhelper/internal/capture"
	"github.com/akoreshkov/adbhelper/internal/history"
	"github.com/akoreshkov/adbhelper/internal/logcat"
)

// captureSink buffers writes to the capture file and closes both layers in
// order, so the file holds the complete stream before Wait returns.
type captureSink struct {
	bw *bufio.Writer
	f  *os.File
}

func (s *captureSink) Write(p []byte) (int, error) { return s.bw.Write(p) }

func (s *captureSink) Close() error {
	if err := s.bw.Flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}

func logcatCmd(a *app) *cobra.Command {
	var out, since string
	var filters []string
	var clear bool
	var duration int

	cmd := &cobra.Command{
		Use:   "logcat",
		Short: "Capture logcat output to a file",
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

			if clear {
				if _, err := r.Run(serial, "logcat", "-c"); err != nil {
					return err
				}
			}

			outPath := out
			if outPath == "" {
				outPath = outputName(a.cfg.OutputDirLogs, serial, "log")
			}
			if err := ensureDir(filepath.Dir(outPath)); err != nil {
				return err
			}

			logcatArgs := logcat.BuildArgs(logcat.ParseSince(since, time.Now()), filters)
			argv := r.Argv(serial, logcatArgs...)

			if r.DryRun() {
				fmt.Println("[dry-run]", strings.Join(argv, " "))
				fmt.Printf("[dry-run] logs would be written to %s\n", outPath)
				return nil
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create log file: %w", err)
			}
			sink := &captureSink{bw: bufio.NewWriter(f), f: f}

			sess, err := capture.Start(argv[0], argv[1:], sink, a.log.Logger)
			if err != nil {
				sink.Close()
				os.Remove(outPath)
				return err
			}

			// a duration expiry and a Ctrl-C land on the same latch
			if duration > 0 {
				sess.CancelAfter(time.Duration(duration) * time.Second)
			}
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt)
			defer signal.Stop(sigCh)
			go func() {
				for range sigCh {
					sess.Cancel()
				}
			}()

			code, err := sess.Wait()
			if err != nil {
				return err
			}

			a.recordHistory(history.Capture{
				ID:        sess.ID,
				Serial:    serial,
				Kind:      "logcat",
				File:      outPath,
				StartedAt: sess.Started.Format("2006-01-02T15:04:05"),
				Duration:  duration,
				ExitCode:  code,
			})

			fmt.Println("Logs saved:", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (defaults under the logs dir)")
	cmd.Flags().StringVar(&since, "since", "", `Start point: "5m", "2h" or ISO "2025-09-04T12:00:00"`)
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "tag:level filter (repeatable)")
	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the log buffer before capturing")
	cmd.Flags().IntVar(&duration, "duration", 0, "Capture duration in seconds (0 = until interrupted)")
	return cmd
}
