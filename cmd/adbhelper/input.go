package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/akoreshkov/adbhelper/internal/cli"
	"github.com/akoreshkov/adbhelper/internal/input"
)

func inputCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "input",
		Short: "Inject input events (tap/text/key/swipe)",
	}
	cmd.AddCommand(inputTapCmd(a))
	cmd.AddCommand(inputTextCmd(a))
	cmd.AddCommand(inputKeyCmd(a))
	cmd.AddCommand(inputSwipeCmd(a))
	return cmd
}

// runInput executes one `adb shell input ...` invocation.
func runInput(a *app, args ...string) error {
	r, err := a.runner()
	if err != nil {
		return err
	}
	serial, err := a.pick(r)
	if err != nil {
		return err
	}
	res, err := r.Run(serial, append([]string{"shell", "input"}, args...)...)
	if err != nil {
		return err
	}
	if res.Code != 0 {
		return fmt.Errorf("input failed: %s", firstNonEmpty(res.Stderr, res.Stdout))
	}
	return nil
}

func coord(s string) (string, error) {
	if _, err := strconv.Atoi(s); err != nil {
		return "", cli.Argumentf("coordinate must be an integer, got %q", s)
	}
	return s, nil
}

func inputTapCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tap <x> <y>",
		Short: "Tap at coordinates",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := coord(args[0])
			if err != nil {
				return err
			}
			y, err := coord(args[1])
			if err != nil {
				return err
			}
			return runInput(a, "tap", x, y)
		},
	}
}

func inputTextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "text <text>",
		Short: "Type text",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInput(a, "text", input.SanitizeText(args[0]))
		},
	}
}

func inputKeyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "key <keycode>",
		Short: "Press a KEYCODE_* key",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInput(a, "keyevent", args[0])
		},
	}
}

func inputSwipeCmd(a *app) *cobra.Command {
	var duration int

	cmd := &cobra.Command{
		Use:   "swipe <x1> <y1> <x2> <y2>",
		Short: "Swipe between two points",
		Args:  exactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords := make([]string, 4)
			for i, s := range args {
				c, err := coord(s)
				if err != nil {
					return err
				}
				coords[i] = c
			}
			swipeArgs := append([]string{"swipe"}, coords...)
			if duration > 0 {
				swipeArgs = append(swipeArgs, strconv.Itoa(duration))
			}
			return runInput(a, swipeArgs...)
		},
	}

	cmd.Flags().IntVar(&duration, "duration", 0, "Swipe duration in ms")
	return cmd
}
