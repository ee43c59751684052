package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ramonehamilton/cr-tools/internal/config"
)

func runConfigCommand(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: cr-tools config <init|show>")
		os.Exit(1)
	}

	path := *configPath
	if path == "" {
		var err error
		if path, err = config.Path(); err != nil {
			log.Fatalf("Error resolving config path: %v", err)
		}
	}

	switch args[0] {
	case "init":
		fs := flag.NewFlagSet("config init", flag.ExitOnError)
		force := fs.Bool("force", false, "Overwrite an existing config file")
		if err := fs.Parse(args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing config flags: %v\n", err)
			os.Exit(1)
		}

		if _, err := os.Stat(path); err == nil && !*force {
			log.Fatalf("Config file already exists: %s (use -force to replace)", path)
		}
		if err := config.DefaultConfig().SaveTo(path); err != nil {
			log.Fatalf("Error writing config: %v", err)
		}
		fmt.Printf("Config written to %s\n", path)

	case "show":
		cfg := loadConfig()
		data, err := toml.Marshal(cfg)
		if err != nil {
			log.Fatalf("Error encoding config: %v", err)
		}
		fmt.Printf("# %s\n", path)
		fmt.Print(string(data))

	default:
		fmt.Printf("Unknown config command: %s\n", args[0])
		os.Exit(1)
	}
}
