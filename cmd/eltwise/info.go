package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/eltwise/internal/backend/cpu"
	"github.com/born-ml/eltwise/internal/backend/webgpu"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show available executors",
		Run: func(cmd *cobra.Command, _ []string) {
			info := cpu.New().Info()
			features := strings.Join(info.Features, ",")
			if features == "" {
				features = "none"
			}
			cmd.Printf("cpu: arch=%s workers=%d simd=%s\n", info.Arch, info.Workers, features)
			cmd.Printf("webgpu: available=%t\n", webgpu.IsAvailable())
		},
	}
}
