package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ramonehamilton/cr-tools/internal/collection"
	"github.com/ramonehamilton/cr-tools/internal/game"
	"github.com/ramonehamilton/cr-tools/internal/tracker"
)

func runAddCommand(args []string) {
	if len(args) != 4 {
		fmt.Println("Usage: cr-tools add <name> <rarity> <level> <have>")
		fmt.Println()
		fmt.Println("Example: cr-tools add \"Hog Rider\" rare 9 120")
		os.Exit(1)
	}

	rarity, err := game.ParseRarity(args[1])
	if err != nil {
		log.Fatalf("Invalid rarity: %v", err)
	}
	level, err := strconv.Atoi(args[2])
	if err != nil {
		log.Fatalf("Invalid level %q: %v", args[2], err)
	}
	have, err := strconv.Atoi(args[3])
	if err != nil {
		log.Fatalf("Invalid card count %q: %v", args[3], err)
	}

	service, closeDB := openService(loadConfig())
	defer closeDB()

	card, err := service.AddCard(context.Background(), args[0], rarity, level, have)
	if err != nil {
		log.Fatalf("Error adding card: %v", err)
	}

	fmt.Printf("Now tracking %s (%s, level %d, %d/%d cards)\n",
		card.Name(), card.Rarity(), card.Level(), card.Have(), card.Needed())
}

func runUpdateCommand(args []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fmt.Println("Usage: cr-tools update <name> [-level N] [-have N] [-rarity R] [-name NEW]")
		os.Exit(1)
	}
	query := args[0]

	fs := flag.NewFlagSet("update", flag.ExitOnError)
	level := fs.Int("level", 0, "New card level")
	have := fs.Int("have", 0, "New number of cards owned")
	rarity := fs.String("rarity", "", "New rarity")
	name := fs.String("name", "", "New card name")
	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing update flags: %v\n", err)
		os.Exit(1)
	}

	var patch tracker.CardPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "level":
			patch.Level = level
		case "have":
			patch.Have = have
		case "name":
			patch.Name = name
		case "rarity":
			r, err := game.ParseRarity(*rarity)
			if err != nil {
				log.Fatalf("Invalid rarity: %v", err)
			}
			patch.Rarity = &r
		}
	})
	if patch.Empty() {
		log.Fatal("Nothing to update: pass at least one of -level, -have, -rarity, -name")
	}

	service, closeDB := openService(loadConfig())
	defer closeDB()

	card, err := service.UpdateCard(context.Background(), query, patch)
	if err != nil {
		log.Fatalf("Error updating card: %v", err)
	}

	fmt.Printf("Updated %s (%s, level %d, %d/%d cards)\n",
		card.Name(), card.Rarity(), card.Level(), card.Have(), card.Needed())
}

func runRemoveCommand(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: cr-tools remove <name>")
		os.Exit(1)
	}

	service, closeDB := openService(loadConfig())
	defer closeDB()

	name, err := service.RemoveCard(context.Background(), args[0])
	if errors.Is(err, tracker.ErrAmbiguousCard) {
		log.Fatalf("%v (use the full name)", err)
	}
	if err != nil {
		log.Fatalf("Error removing card: %v", err)
	}

	fmt.Printf("Stopped tracking %s\n", name)
}

func runListCommand(args []string) {
	if len(args) != 0 {
		fmt.Println("Usage: cr-tools list")
		os.Exit(1)
	}

	service, closeDB := openService(loadConfig())
	defer closeDB()

	cards, err := service.Cards(context.Background())
	if err != nil {
		log.Fatalf("Error loading cards: %v", err)
	}

	displayCardList(cards)
}

func runArenaCommand(args []string) {
	service, closeDB := openService(loadConfig())
	defer closeDB()

	ctx := context.Background()

	switch len(args) {
	case 0:
		arena, err := service.Arena(ctx)
		if err != nil {
			log.Fatalf("Error loading arena: %v", err)
		}
		fmt.Printf("Current arena: %s (%d)\n", arena, int(arena))
	case 1:
		arena, err := game.ParseArena(args[0])
		if err != nil {
			log.Fatalf("Invalid arena: %v", err)
		}
		if err := service.SetArena(ctx, arena); err != nil {
			log.Fatalf("Error saving arena: %v", err)
		}
		fmt.Printf("Arena set to %s\n", arena)
	default:
		fmt.Println("Usage: cr-tools arena [name|index]")
		os.Exit(1)
	}
}

func runTablesCommand(args []string) {
	arenas := game.Arenas()
	if len(args) == 1 {
		arena, err := game.ParseArena(args[0])
		if err != nil {
			log.Fatalf("Invalid arena: %v", err)
		}
		arenas = []game.Arena{arena}
	} else if len(args) > 1 {
		fmt.Println("Usage: cr-tools tables [arena]")
		os.Exit(1)
	}

	displayTables(arenas)
}

func runImportCommand(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: cr-tools import <collection.toml>")
		os.Exit(1)
	}

	cards, err := collection.Load(args[0])
	if err != nil {
		log.Fatalf("Error reading collection: %v", err)
	}

	service, closeDB := openService(loadConfig())
	defer closeDB()

	result, err := service.Import(context.Background(), cards, os.Stderr)
	if err != nil {
		log.Fatalf("Error importing cards: %v", err)
	}

	fmt.Printf("Imported %d cards (%d added, %d updated)\n", len(cards), result.Added, result.Updated)
}
