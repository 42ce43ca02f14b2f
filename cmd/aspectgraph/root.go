package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "aspectgraph",
	Short: "Path search and decomposition over a crafting-recipe graph",
	Long: "Aspectgraph explores a graph of craftable elements. It finds chains\n" +
		"of intermediates connecting two elements, ranks them by how cheap the\n" +
		"intermediates are to obtain, and cracks compounds into primitives.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(crackCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(holdingCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
