package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"aspectgraph/internal/service"
)

var crackCmd = &cobra.Command{
	Use:   "crack NAME [QUANTITY] [NAME [QUANTITY]...]",
	Short: "Break compounds down into their primitive elements",
	Long: "Cracks each named element into the multiset of primitive elements it\n" +
		"is ultimately made from. A name may be followed by an integer quantity;\n" +
		"quantities default to 1 and counts are merged across all arguments.",
	Args: cobra.MinimumNArgs(1),
	RunE: runCrack,
}

func runCrack(cmd *cobra.Command, args []string) error {
	requests, err := parseCrackArgs(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	rows, err := a.service.Crack(ctx, requests)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, row := range rows {
		fmt.Fprintf(out, "%s: %d\n", row.Handle.Name(), row.Count)
	}
	return nil
}

// parseCrackArgs reads an alternating list of element names and optional
// quantities. A bare integer applies to the name before it.
func parseCrackArgs(args []string) ([]service.CrackRequest, error) {
	var requests []service.CrackRequest
	for _, arg := range args {
		if qty, err := strconv.Atoi(arg); err == nil {
			if len(requests) == 0 {
				return nil, fmt.Errorf("quantity %d has no preceding element name", qty)
			}
			if qty < 1 {
				return nil, fmt.Errorf("quantity must be positive, got %d", qty)
			}
			requests[len(requests)-1].Quantity = qty
			continue
		}
		requests = append(requests, service.CrackRequest{Name: arg, Quantity: 1})
	}
	return requests, nil
}
