package main

import (
	"fmt"

	"github.com/izzat1998/terminal-pro-sub004/pkg/analytics"
	"github.com/izzat1998/terminal-pro-sub004/pkg/grid"
	"github.com/izzat1998/terminal-pro-sub004/pkg/validation"
	"github.com/izzat1998/terminal-pro-sub004/pkg/vehicle"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(e)
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			printResult(w)
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(res validation.Result) {
	fmt.Printf("  [%s] %s\n", res.Level, res.Message)
	if res.Field != "" {
		fmt.Printf("    -> %s = %v\n", res.Field, res.Actual)
	}
	if res.Expected != "" {
		fmt.Printf("    expected: %s\n", res.Expected)
	}
}

func printGridInfo(m *grid.Model) {
	bounds := m.Bounds()
	fmt.Println("Yard Grid")
	fmt.Println("=========")
	fmt.Printf("  Bounds:    (%.1f, %.1f) - (%.1f, %.1f)\n",
		bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	fmt.Printf("  Cell size: %.1f drawing units\n", m.CellSize())
	fmt.Printf("  Cells:     %d columns x %d rows\n", m.Columns(), m.Rows())
	fmt.Printf("  Corners:   %s .. %s\n",
		m.CellLabel(m.CellCenter(0, 0)),
		m.CellLabel(m.CellCenter(m.Columns()-1, m.Rows()-1)))
}

func printPosition(p grid.Position) {
	fmt.Println()
	fmt.Printf("Coordinate %s\n", p.Coordinate)
	fmt.Printf("  Zone: %s\n", p.Zone)
	fmt.Printf("  Row:  %d\n", p.Row)
	fmt.Printf("  Bay:  %d\n", p.Bay)
	fmt.Printf("  Tier: %d\n", p.Tier)
}

func printEvents(events []vehicle.Event) {
	for _, e := range events {
		fmt.Printf("tick %4d  %-10s %s\n", e.Tick, e.Plate, e.State)
	}
}

func printStats(s *analytics.YardStats) {
	fmt.Println("Yard Utilization")
	fmt.Println("================")
	fmt.Printf("  Containers: %d (%d laden, %d hazmat)\n",
		s.TotalContainers, s.TotalLaden, s.TotalHazmat)
	fmt.Printf("  Dwell:      mean %.1f days, p90 %.1f days\n", s.MeanDwell, s.P90Dwell)
	fmt.Println()
	fmt.Printf("%-6s %10s %7s %7s %7s %9s %11s\n",
		"Zone", "Containers", "Laden", "Empty", "Hazmat", "MaxTier", "MeanDwell")
	for _, z := range s.Zones {
		fmt.Printf("%-6s %10d %7d %7d %7d %9d %11.1f\n",
			z.Zone, z.Containers, z.Laden, z.Empty, z.Hazmat, z.MaxTier, z.MeanDwell)
	}
}
