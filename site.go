package main

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

const (
	siteIndexName    = "index.html"
	siteManifestName = "pages.json"
)

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// sitePage is one page entry of the generated site
type sitePage struct {
	Index int    `json:"index"`
	Src   string `json:"src"`
	Cover bool   `json:"cover"`
}

// siteManifest lists the pages of a generated site
type siteManifest struct {
	Title      string     `json:"title"`
	BookWidth  int        `json:"book_width"`
	BookHeight int        `json:"book_height"`
	Pages      []sitePage `json:"pages"`
}

// indexData feeds the index page template
type indexData struct {
	Title    string
	Language string
	Pages    []sitePage

	BookWidth  int
	BookHeight int

	DisplayBreakpoint float64
	MarginBreakpoint  float64
	NarrowMargin      float64
	WideMargin        float64
	NarrowWidth       int

	ZoomScale           float64
	TurnDuration        int
	WheelCooldown       int
	LoaderDelay         int
	LoaderResetsCounter bool

	LoadingText   string
	CounterFormat string
}

// sitePages converts page file names into entries relative to the site directory
func sitePages(config Config, names []string) ([]sitePage, error) {
	siteDir, err := filepath.Abs(config.SiteDir)
	if err != nil {
		return nil, fmt.Errorf("resolve site directory: %w", err)
	}
	pagesDir, err := filepath.Abs(config.PagesPath())
	if err != nil {
		return nil, fmt.Errorf("resolve pages directory: %w", err)
	}
	rel, err := filepath.Rel(siteDir, pagesDir)
	if err != nil {
		return nil, fmt.Errorf("pages directory %s is not reachable from %s: %w", config.PagesPath(), config.SiteDir, err)
	}
	rel = filepath.ToSlash(rel)

	set := NewPageSet(names, float64(config.BookWidth), float64(config.BookHeight))
	pages := make([]sitePage, 0, set.Len())
	for _, p := range set.Pages() {
		pages = append(pages, sitePage{
			Index: p.Index,
			Src:   path.Join(rel, p.ResourceRef),
			Cover: p.IsCover,
		})
	}
	return pages, nil
}

// writeSite renders index.html and pages.json into the site directory
func writeSite(config Config, names []string) error {
	pages, err := sitePages(config, names)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(config.SiteDir, 0755); err != nil {
		return fmt.Errorf("create site directory: %w", err)
	}

	printer := newPrinter(config.Language)
	data := indexData{
		Title:               config.Title,
		Language:            config.Language,
		Pages:               pages,
		BookWidth:           config.BookWidth,
		BookHeight:          config.BookHeight,
		DisplayBreakpoint:   config.DisplayBreakpoint,
		MarginBreakpoint:    config.MarginBreakpoint,
		NarrowMargin:        config.NarrowMargin,
		WideMargin:          config.WideMargin,
		NarrowWidth:         narrowScreenWidth,
		ZoomScale:           config.ZoomScale,
		TurnDuration:        config.TurnDurationMillis,
		WheelCooldown:       config.WheelCooldownMillis,
		LoaderDelay:         config.LoaderDelayMillis,
		LoaderResetsCounter: config.LoaderResetsCounter,
		LoadingText:         printer.Sprintf(msgLoading),
		CounterFormat:       printer.Sprintf(msgCounterScript),
	}

	indexPath := filepath.Join(config.SiteDir, siteIndexName)
	f, err := os.Create(indexPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", indexPath, err)
	}
	if err := indexTemplate.Execute(f, data); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", indexPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	manifest := siteManifest{
		Title:      config.Title,
		BookWidth:  config.BookWidth,
		BookHeight: config.BookHeight,
		Pages:      pages,
	}
	out, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(config.SiteDir, siteManifestName)
	if err := os.WriteFile(manifestPath, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", manifestPath, err)
	}

	debugLog("Site written to %s with %d pages", config.SiteDir, len(pages))
	return nil
}

// readManifest loads the page list written by writeSite
func readManifest(siteDir string) (siteManifest, error) {
	var m siteManifest
	data, err := os.ReadFile(filepath.Join(siteDir, siteManifestName))
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("invalid manifest: %w", err)
	}
	return m, nil
}
