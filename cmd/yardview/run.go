package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/izzat1998/terminal-pro-sub004/internal/server"
	"github.com/izzat1998/terminal-pro-sub004/pkg/grid"
	"github.com/izzat1998/terminal-pro-sub004/pkg/placement"
	"github.com/izzat1998/terminal-pro-sub004/pkg/validation"
	"github.com/izzat1998/terminal-pro-sub004/pkg/vehicle"
	"github.com/izzat1998/terminal-pro-sub004/pkg/yardspec"
)

// loadAndValidate loads the yard spec and runs schema validation.
func loadAndValidate(projectPath string) (*yardspec.YardSpec, *validation.Report, error) {
	spec, err := yardspec.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading spec: %w", err)
	}
	return spec, validation.ValidateSchema(spec), nil
}

func runValidate(projectPath string) error {
	_, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	printValidationReport(report)
	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runGrid(projectPath, coordinate string) error {
	spec, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("spec has validation errors")
	}
	if spec.Drawing.Bounds == nil {
		return fmt.Errorf("spec declares no drawing bounds; the grid needs them")
	}

	m, err := grid.NewModel(spec.Drawing.Bounds.Rect(), spec.Grid.CellSize)
	if err != nil {
		return err
	}
	printGridInfo(m)

	if coordinate != "" {
		pos, err := grid.ParseCoordinate(coordinate)
		if err != nil {
			return err
		}
		printPosition(pos)
	}
	return nil
}

func runServe(ctx context.Context, projectPath, addr string) error {
	// Local overrides; absence of the file is the normal case.
	godotenv.Load()
	if v := os.Getenv("YARDVIEW_ADDR"); v != "" {
		addr = v
	}

	spec, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("spec has validation errors")
	}
	if v := os.Getenv("YARDVIEW_BACKEND_URL"); v != "" {
		spec.Backend.URL = v
	}

	session, err := server.NewSession(spec)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return server.New(session, log).Run(ctx, addr)
}

func runSimulate(projectPath string, ticks, containers, trucks int) error {
	spec, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("spec has validation errors")
	}

	session, err := server.NewSession(spec)
	if err != nil {
		return err
	}
	if !session.Ready() {
		return fmt.Errorf("simulation needs drawing bounds in the spec")
	}

	rng := rand.New(rand.NewSource(spec.Stacking.Seed))
	placeReport := session.PlaceItems(demoItems(session.Model(), containers, rng))
	printValidationReport(placeReport)
	stacked := session.AddDemoStacks()
	fmt.Printf("Placed %d containers, stacked %d more\n\n", len(session.Containers())-stacked, stacked)

	for i := 0; i < trucks && len(spec.Gates) > 0; i++ {
		gate := spec.Gates[i%len(spec.Gates)]
		plate := fmt.Sprintf("01KZ%03dAA", 100+i)
		if _, ok := session.Detect(vehicle.Detection{
			Plate:      plate,
			Category:   vehicle.CategoryTruck,
			Direction:  vehicle.DirectionEntering,
			Confidence: 0.95,
		}, gate.Name); ok {
			fmt.Printf("spawned %s at gate %s\n", plate, gate.Name)
		}
	}

	for t := 0; t < ticks; t++ {
		printEvents(session.Tick())
	}

	fmt.Println()
	printStats(session.Stats())
	return nil
}

// demoItems fills the first grid rows with generated containers at
// cell centers, deterministic for a given seed.
func demoItems(m *grid.Model, count int, rng *rand.Rand) []placement.Item {
	items := make([]placement.Item, 0, count)
	cols, rows := m.Columns(), m.Rows()

	for i := 0; i < count; i++ {
		col := i % cols
		row := (i / cols) % rows
		point := m.CellCenter(col, row)

		kind := placement.Block40ft
		if rng.Float64() < 0.4 {
			kind = placement.Block20ft
		}
		status := placement.StatusLaden
		if rng.Float64() < 0.3 {
			status = placement.StatusEmpty
		}

		items = append(items, placement.Item{
			ID:    fmt.Sprintf("DEMO%07d", i),
			Zone:  string(grid.ColumnLetter(col)),
			Point: point,
			Kind:  kind,
			Data: &placement.ContainerData{
				Status:    status,
				DwellDays: float64(rng.Intn(21)),
				Hazmat:    rng.Float64() < 0.05,
			},
		})
	}
	return items
}
