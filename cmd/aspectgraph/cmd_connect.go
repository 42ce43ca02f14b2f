package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var connectCmd = &cobra.Command{
	Use:   "connect FROM TO STEPS",
	Short: "Find chains of exactly STEPS intermediates between two elements",
	Args:  cobra.ExactArgs(3),
	RunE:  runConnect,
}

func runConnect(cmd *cobra.Command, args []string) error {
	from, to := args[0], args[1]
	steps, err := strconv.Atoi(args[2])
	if err != nil || steps < 0 {
		return fmt.Errorf("STEPS must be a non-negative integer, got %q", args[2])
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	paths, err := a.service.SearchRanked(ctx, from, to, steps)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(paths) == 0 {
		fmt.Fprintf(out, "%s and %s can't be connected with %d intermediate elements\n", from, to, steps)
		return nil
	}
	for _, p := range paths {
		fmt.Fprintln(out, p.String())
	}
	return nil
}
