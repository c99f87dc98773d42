package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/akoreshkov/adbhelper/internal/cli"
)

const defaultTCPPort = 5555

func tcpipCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tcpip",
		Short: "Wireless debugging (enable/connect/disable)",
	}
	cmd.AddCommand(tcpipEnableCmd(a))
	cmd.AddCommand(tcpipConnectCmd(a))
	cmd.AddCommand(tcpipDisableCmd(a))
	return cmd
}

func tcpipEnableCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "enable",
		Short: "Switch the device to TCP/IP mode",
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
			res, err := r.Run(serial, "tcpip", strconv.Itoa(port))
			if err != nil {
				return err
			}
			fmt.Println(firstNonEmpty(res.Stdout, res.Stderr))
			if res.Code != 0 {
				return fmt.Errorf("tcpip exited %d", res.Code)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", defaultTCPPort, "TCP port")
	return cmd
}

func tcpipConnectCmd(a *app) *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect to a device over the network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if host == "" {
				return cli.Argumentf("--host is required")
			}
			r, err := a.runner()
			if err != nil {
				return err
			}
			res, err := r.Run("", "connect", fmt.Sprintf("%s:%d", host, port))
			if err != nil {
				return err
			}
			fmt.Println(firstNonEmpty(res.Stdout, res.Stderr))
			if res.Code != 0 {
				return fmt.Errorf("connect exited %d", res.Code)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Device IP address")
	cmd.Flags().IntVar(&port, "port", defaultTCPPort, "TCP port")
	cmd.MarkFlagRequired("host")
	return cmd
}

func tcpipDisableCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Return to USB mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.runner()
			if err != nil {
				return err
			}
			res, err := r.Run("", "usb")
			if err != nil {
				return err
			}
			fmt.Println(firstNonEmpty(res.Stdout, res.Stderr))
			if res.Code != 0 {
				return fmt.Errorf("usb exited %d", res.Code)
			}
			return nil
		},
	}
}
