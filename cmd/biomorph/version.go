package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/biomorph"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of biomorph",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "biomorph version %s\n", strings.TrimSpace(biomorph.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
