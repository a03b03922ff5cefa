package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time:
//
//	go build -ldflags "-X main.Version=1.2.3" ./cmd/moliere
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the moliere version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}

func init() {
	rootCmd.Version = Version
	rootCmd.AddCommand(versionCmd)
}
