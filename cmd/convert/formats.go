// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/file-converter/internal/ui"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List readable and writable formats",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatTable())
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
