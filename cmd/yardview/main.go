package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "yardview",
		Short: "Container terminal yard spatial engine",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(gridCmd())
	rootCmd.AddCommand(simulateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the yard API server for the 3D viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0], addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "HTTP listen address")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a yard spec without starting the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func gridCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grid [project-path] [coordinate]",
		Short: "Show grid dimensions, or resolve a slot coordinate like A-03-12-1",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			coordinate := ""
			if len(args) == 2 {
				coordinate = args[1]
			}
			return runGrid(args[0], coordinate)
		},
	}
}

func simulateCmd() *cobra.Command {
	var ticks, containers, trucks int

	cmd := &cobra.Command{
		Use:   "simulate [project-path]",
		Short: "Run a deterministic headless demo and print lifecycle events",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSimulate(args[0], ticks, containers, trucks)
		},
	}

	cmd.Flags().IntVarP(&ticks, "ticks", "t", 200, "frame ticks to simulate")
	cmd.Flags().IntVarP(&containers, "containers", "c", 40, "demo containers to place")
	cmd.Flags().IntVar(&trucks, "trucks", 3, "trucks to spawn at the gates")
	return cmd
}
