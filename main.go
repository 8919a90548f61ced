package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
)

var debugEnabled = os.Getenv("FLIPBOOK_DEBUG") != ""

// debugLog logs only when FLIPBOOK_DEBUG is set
func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf("Debug: "+format, args...)
	}
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the generator and returns the process exit code
func run(args []string) int {
	fs := flag.NewFlagSet("flipbook", flag.ContinueOnError)
	configPath := fs.String("config", getConfigPath(), "path to the JSON configuration file")
	view := fs.Bool("view", false, "open the generated book in a viewer window")
	noExtract := fs.Bool("no-extract", false, "skip conversion and reuse the pages of an existing site")
	initConfig := fs.Bool("init", false, "write the default configuration and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *initConfig {
		if err := saveConfigToPath(defaultConfig(), *configPath); err != nil {
			log.Printf("Error: %v", err)
			return 1
		}
		log.Printf("Default configuration written to %s", *configPath)
		return 0
	}

	result := loadConfigFromPath(*configPath)
	config := result.Config
	debugLog("Config %s: %s", *configPath, result.Status)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var refs []string
	if *noExtract {
		m, err := readManifest(config.SiteDir)
		if err != nil {
			log.Printf("Error: no generated site in %s: %v", config.SiteDir, err)
			return 1
		}
		for _, p := range m.Pages {
			refs = append(refs, filepath.Join(config.SiteDir, filepath.FromSlash(p.Src)))
		}
	} else {
		names, err := NewExtractor(config).Extract(ctx)
		if err != nil {
			log.Printf("Error: %v", err)
			if errors.Is(err, ErrNoPages) {
				log.Printf("Install poppler (pdftoppm) or place page images in %s", config.PagesPath())
			}
			return 1
		}

		if err := writeSite(config, names); err != nil {
			log.Printf("Error: %v", err)
			return 1
		}
		log.Printf("Catalog ready in %s", config.SiteDir)

		for _, name := range names {
			refs = append(refs, filepath.Join(config.PagesPath(), name))
		}
	}

	if !*view {
		return 0
	}

	pages := NewPageSet(refs, float64(config.BookWidth), float64(config.BookHeight))
	if err := runViewer(config, pages); err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	return 0
}
