// Package main provides the eltwise CLI.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

const version = "v0.0.1-dev"

func main() {
	log.SetFlags(0)
	log.SetPrefix("eltwise: ")

	root := &cobra.Command{
		Use:           "eltwise",
		Short:         "Element-wise transforms over numeric buffers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newVersionCmd(), newBenchCmd(), newInfoCmd())

	if err := root.Execute(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("eltwise %s\n", version)
		},
	}
}
