package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var holdingCmd = &cobra.Command{
	Use:   "set-holding NAME QUANTITY",
	Short: "Record how much of an element is held",
	Args:  cobra.ExactArgs(2),
	RunE:  runSetHolding,
}

func runSetHolding(cmd *cobra.Command, args []string) error {
	name := args[0]
	quantity, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("QUANTITY must be a number, got %q", args[1])
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.service.SetHolding(ctx, name, quantity); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", name, quantity)
	return nil
}
