package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/countdown/duration"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse DIGITS",
		Short: "Convert packed HHMMSS digits into milliseconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := duration.ParseEntryChecked(args[0])
			if errors.Is(err, duration.ErrMalformed) {
				return fmt.Errorf("parse %q: %w", args[0], err)
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", d.Milliseconds(), duration.FormatUnwrapped(d).Text(true))
			return nil
		},
	}
}

func newFormatCmd() *cobra.Command {
	var wrap, packed bool

	cmd := &cobra.Command{
		Use:   "format MILLIS",
		Short: "Split milliseconds (or a Go duration such as 90s) into display fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseMillis(args[0])
			if err != nil {
				return err
			}
			if packed && d >= duration.Max+time.Second {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s does not fit HHMMSS: %v\n", d, duration.ErrSaturated)
				d = duration.Max
			}
			c := duration.FormatUnwrapped(d)
			if wrap {
				c = duration.Format(d)
			}
			if packed {
				fmt.Fprintln(cmd.OutOrStdout(), c.Digits())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Text(true))
			return nil
		},
	}
	cmd.Flags().BoolVar(&wrap, "wrap", false, "Reduce hours modulo 60 as the timer display does")
	cmd.Flags().BoolVar(&packed, "packed", false, "Print HHMMSS keypad digits instead")
	return cmd
}

func parseMillis(s string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("format %q: not milliseconds or a duration", s)
	}
	return d, nil
}
