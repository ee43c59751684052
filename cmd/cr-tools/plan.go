package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ramonehamilton/cr-tools/internal/charts"
	"github.com/ramonehamilton/cr-tools/internal/collection"
	"github.com/ramonehamilton/cr-tools/internal/export"
	"github.com/ramonehamilton/cr-tools/internal/game"
	"github.com/ramonehamilton/cr-tools/internal/planner"
)

func runPlanCommand(args []string) {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	arenaName := fs.String("arena", "", "Plan for this arena instead of the stored one")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing plan flags: %v\n", err)
		os.Exit(1)
	}

	service, closeDB := openService(loadConfig())
	defer closeDB()

	ctx := context.Background()

	var (
		plan *planner.Plan
		err  error
	)
	if *arenaName != "" {
		arena, parseErr := game.ParseArena(*arenaName)
		if parseErr != nil {
			log.Fatalf("Invalid arena: %v", parseErr)
		}
		cards, loadErr := service.Cards(ctx)
		if loadErr != nil {
			log.Fatalf("Error loading cards: %v", loadErr)
		}
		plan, err = service.PlanCards(cards, arena)
	} else {
		plan, err = service.Plan(ctx)
	}
	if err != nil {
		log.Fatalf("Error computing plan: %v", err)
	}

	displayPlan(plan)
}

func runExportCommand(args []string) {
	cfg := loadConfig()

	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", cfg.Export.Format, "Export format: csv or json")
	output := fs.String("o", "", "Output file (default: stdout)")
	overwrite := fs.Bool("overwrite", false, "Replace the output file if it exists")
	pretty := fs.Bool("pretty", cfg.Export.PrettyJSON, "Indent JSON output")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing export flags: %v\n", err)
		os.Exit(1)
	}

	exportFormat, err := export.ParseFormat(*format)
	if err != nil {
		log.Fatalf("Invalid format: %v", err)
	}

	service, closeDB := openService(cfg)
	defer closeDB()

	plan, err := service.Plan(context.Background())
	if err != nil {
		log.Fatalf("Error computing plan: %v", err)
	}

	exporter := export.NewExporter(export.Options{
		Format:     exportFormat,
		FilePath:   *output,
		PrettyJSON: *pretty,
		Overwrite:  *overwrite,
	})

	if *output == "" {
		if err := exporter.ExportPlanTo(os.Stdout, plan); err != nil {
			log.Fatalf("Error exporting plan: %v", err)
		}
		return
	}

	if err := exporter.ExportPlan(plan); err != nil {
		log.Fatalf("Error exporting plan: %v", err)
	}
	fmt.Printf("Plan exported to %s\n", *output)
}

func runChartCommand(args []string) {
	cfg := loadConfig()

	fs := flag.NewFlagSet("chart", flag.ExitOnError)
	output := fs.String("o", cfg.Export.ChartFile, "Output HTML file")
	open := fs.Bool("open", false, "Open the chart in the default browser")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing chart flags: %v\n", err)
		os.Exit(1)
	}

	service, closeDB := openService(cfg)
	defer closeDB()

	plan, err := service.Plan(context.Background())
	if err != nil {
		log.Fatalf("Error computing plan: %v", err)
	}

	if err := charts.RenderSchedule(plan, charts.DefaultChartConfig(), *output); err != nil {
		log.Fatalf("Error rendering chart: %v", err)
	}
	fmt.Printf("Chart written to %s\n", *output)

	if *open {
		if err := charts.OpenInBrowser(*output); err != nil {
			log.Printf("Could not open browser: %v", err)
		}
	}
}

func runWatchCommand(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: cr-tools watch <collection.toml> [-store] [-arena NAME]")
		os.Exit(1)
	}
	path := args[0]

	cfg := loadConfig()

	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	store := fs.Bool("store", false, "Import each reload into the card database")
	arenaName := fs.String("arena", "", "Plan for this arena instead of the stored one")
	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing watch flags: %v\n", err)
		os.Exit(1)
	}

	debounce, err := cfg.GetWatchDebounce()
	if err != nil {
		log.Fatalf("Invalid watch debounce: %v", err)
	}

	service, closeDB := openService(cfg)
	defer closeDB()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	arena, err := service.Arena(ctx)
	if err != nil {
		log.Fatalf("Error loading arena: %v", err)
	}
	if *arenaName != "" {
		if arena, err = game.ParseArena(*arenaName); err != nil {
			log.Fatalf("Invalid arena: %v", err)
		}
	}

	replan := func(cards []*planner.Card, err error) {
		if err != nil {
			log.Printf("Error reloading collection: %v", err)
			return
		}

		if *store {
			if _, err := service.Import(ctx, cards, nil); err != nil {
				log.Printf("Error storing collection: %v", err)
			}
		}

		plan, err := service.PlanCards(cards, arena)
		if err != nil {
			log.Printf("Error computing plan: %v", err)
			return
		}

		fmt.Printf("\n[%s] %s changed\n\n", time.Now().Format(time.TimeOnly), path)
		displayPlan(plan)
	}

	// Initial pass before waiting for changes
	replan(collection.Load(path))

	fmt.Printf("Watching %s for changes. Press Ctrl+C to stop.\n", path)
	if err := collection.Watch(ctx, path, debounce, replan); err != nil {
		log.Fatalf("Error watching collection: %v", err)
	}
	fmt.Println("Stopped watching.")
}
