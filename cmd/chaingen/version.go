package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/chaingen"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of chaingen",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chaingen version %s\n", strings.TrimSpace(chaingen.Version))
		},
	}
}
