package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the contents of the element graph",
}

var listElementsCmd = &cobra.Command{
	Use:   "elements",
	Short: "List every element with its mod and base value",
	Args:  cobra.NoArgs,
	RunE:  runListElements,
}

var listRecipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List every recipe",
	Args:  cobra.NoArgs,
	RunE:  runListRecipes,
}

var listModsCmd = &cobra.Command{
	Use:   "mods",
	Short: "List the distinct mods elements belong to",
	Args:  cobra.NoArgs,
	RunE:  runListMods,
}

var listHoldingsCmd = &cobra.Command{
	Use:   "holdings",
	Short: "List recorded held quantities",
	Args:  cobra.NoArgs,
	RunE:  runListHoldings,
}

var listPrimitivesCmd = &cobra.Command{
	Use:   "primitives",
	Short: "List the elements that have no recipe",
	Args:  cobra.NoArgs,
	RunE:  runListPrimitives,
}

func init() {
	listCmd.AddCommand(listElementsCmd)
	listCmd.AddCommand(listRecipesCmd)
	listCmd.AddCommand(listModsCmd)
	listCmd.AddCommand(listHoldingsCmd)
	listCmd.AddCommand(listPrimitivesCmd)
}

func runListElements(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	elements, err := a.service.Elements(ctx)
	if err != nil {
		return err
	}
	sort.Slice(elements, func(i, j int) bool { return elements[i].Name < elements[j].Name })

	out := cmd.OutOrStdout()
	for _, e := range elements {
		if e.Mod != "" {
			fmt.Fprintf(out, "%s\t%v\t(%s)\n", e.Name, e.BaseValue, e.Mod)
			continue
		}
		fmt.Fprintf(out, "%s\t%v\n", e.Name, e.BaseValue)
	}
	return nil
}

func runListRecipes(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	recipes, err := a.service.Recipes(ctx)
	if err != nil {
		return err
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].Product.Less(recipes[j].Product) })

	out := cmd.OutOrStdout()
	for _, r := range recipes {
		fmt.Fprintf(out, "%s = %s + %s\n", r.Product.Name(), r.A.Name(), r.B.Name())
	}
	return nil
}

func runListMods(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	mods, err := a.service.Mods(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, mod := range mods {
		fmt.Fprintln(out, mod)
	}
	return nil
}

func runListHoldings(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	holdings, err := a.service.Holdings(ctx)
	if err != nil {
		return err
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Handle.Less(holdings[j].Handle) })

	out := cmd.OutOrStdout()
	for _, h := range holdings {
		fmt.Fprintf(out, "%s\t%v\n", h.Handle.Name(), h.Quantity)
	}
	return nil
}

func runListPrimitives(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	primitives, err := a.service.Primitives(ctx)
	if err != nil {
		return err
	}
	sort.Slice(primitives, func(i, j int) bool { return primitives[i].Less(primitives[j]) })

	out := cmd.OutOrStdout()
	for _, p := range primitives {
		fmt.Fprintln(out, p.Name())
	}
	return nil
}
