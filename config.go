package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Window size constants
const (
	defaultWidth  = 1200
	defaultHeight = 800
	minWidth      = 320
	minHeight     = 240
)

// Book and extraction defaults
const (
	defaultBookWidth   = 920
	defaultBookHeight  = 650
	defaultDPI         = 200
	defaultJPEGQuality = 85
	defaultTurnMillis  = 800
	defaultConfigName  = "flipbook.json"
)

// Sort method constants
const (
	SortDigits     = 0 // Integer formed by all digits in the name, lexical if any name has none
	SortNatural    = 1 // Natural sort order (e.g., page1, page2, page10)
	SortSimple     = 2 // Simple string sort (lexicographical)
	SortEntryOrder = 3 // Maintain original order (no sort)
)

// validateKeybindings validates the keybindings configuration
func validateKeybindings(keybindings map[string][]string) error {
	keyToAction := make(map[string]string)
	validKeys := getValidKeyNames()
	knownActions := GetActionDescriptions()

	for action, keys := range keybindings {
		if _, ok := knownActions[action]; !ok {
			return fmt.Errorf("unknown action '%s'", action)
		}
		for _, keyStr := range keys {
			if err := validateKeyString(keyStr, validKeys); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %w", keyStr, action, err)
			}

			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}

	return nil
}

// validateKeyString validates a single key string format
func validateKeyString(keyStr string, validKeys map[string]bool) error {
	if keyStr == "" {
		return fmt.Errorf("empty key string")
	}
	parts := strings.Split(keyStr, "+")

	// Last part should be the actual key
	keyName := parts[len(parts)-1]
	if !validKeys[keyName] {
		return fmt.Errorf("unknown key: %s", keyName)
	}

	for i := 0; i < len(parts)-1; i++ {
		modifier := strings.ToLower(parts[i])
		if modifier != "shift" && modifier != "ctrl" && modifier != "alt" {
			return fmt.Errorf("unknown modifier: %s", parts[i])
		}
	}

	return nil
}

// getValidKeyNames returns the set of key names the keybinding manager understands
func getValidKeyNames() map[string]bool {
	valid := make(map[string]bool)
	for name := range getKeyMapping() {
		valid[name] = true
	}
	return valid
}

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

type Config struct {
	// Extraction and site output
	SourcePath  string `json:"source_path"`
	SiteDir     string `json:"site_dir"`
	PagesDir    string `json:"pages_dir"` // Defaults to <site_dir>/pages
	Title       string `json:"title"`
	Language    string `json:"language"`
	DPI         int    `json:"dpi"`
	JPEGQuality int    `json:"jpeg_quality"`
	SortMethod  int    `json:"sort_method"`

	// Book geometry
	BookWidth         int     `json:"book_width"`
	BookHeight        int     `json:"book_height"`
	DisplayBreakpoint float64 `json:"display_breakpoint"`
	MarginBreakpoint  float64 `json:"margin_breakpoint"`
	NarrowMargin      float64 `json:"narrow_margin"`
	WideMargin        float64 `json:"wide_margin"`

	// Viewer timing and behaviour
	WheelCooldownMillis int     `json:"wheel_cooldown_ms"`
	LoaderDelayMillis   int     `json:"loader_delay_ms"`
	TurnDurationMillis  int     `json:"turn_duration_ms"`
	ZoomScale           float64 `json:"zoom_scale"`
	LoaderResetsCounter bool    `json:"loader_resets_counter"`

	// Viewer window and caching
	WindowWidth    int                 `json:"window_width"`
	WindowHeight   int                 `json:"window_height"`
	CacheSize      int                 `json:"cache_size"`
	PreloadEnabled bool                `json:"preload_enabled"`
	PreloadCount   int                 `json:"preload_count"`
	Keybindings    map[string][]string `json:"keybindings"`
	Mouse          MouseSettings       `json:"mouse"`
}

// defaultConfig returns the configuration used when no file is present
func defaultConfig() Config {
	layout := DefaultLayoutConfig()
	return Config{
		SourcePath:          filepath.Join("pdf", "catalog.pdf"),
		SiteDir:             "docs",
		Title:               "Catalog",
		Language:            "en",
		DPI:                 defaultDPI,
		JPEGQuality:         defaultJPEGQuality,
		SortMethod:          SortDigits,
		BookWidth:           defaultBookWidth,
		BookHeight:          defaultBookHeight,
		DisplayBreakpoint:   layout.DisplayBreakpoint,
		MarginBreakpoint:    layout.MarginBreakpoint,
		NarrowMargin:        layout.NarrowMargin,
		WideMargin:          layout.WideMargin,
		WheelCooldownMillis: int(defaultWheelCooldown / time.Millisecond),
		LoaderDelayMillis:   int(defaultLoaderDelay / time.Millisecond),
		TurnDurationMillis:  defaultTurnMillis,
		ZoomScale:           defaultZoomScale,
		LoaderResetsCounter: false,
		WindowWidth:         defaultWidth,
		WindowHeight:        defaultHeight,
		CacheSize:           16,
		PreloadEnabled:      true,
		PreloadCount:        4,
		Keybindings:         GetDefaultKeybindings(),
		Mouse:               GetDefaultMouseSettings(),
	}
}

// LayoutConfig returns the breakpoints and margins of the configuration
func (c Config) LayoutConfig() LayoutConfig {
	return LayoutConfig{
		DisplayBreakpoint: c.DisplayBreakpoint,
		MarginBreakpoint:  c.MarginBreakpoint,
		NarrowMargin:      c.NarrowMargin,
		WideMargin:        c.WideMargin,
	}
}

// PagesPath returns the directory page images are written to and read from
func (c Config) PagesPath() string {
	if c.PagesDir != "" {
		return c.PagesDir
	}
	return filepath.Join(c.SiteDir, "pages")
}

func getConfigPath() string {
	return defaultConfigName
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()

	result := ConfigLoadResult{
		Config:   config,
		HasError: false,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	defaults := defaultConfig()
	warn := func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		log.Printf("Warning: %s", msg)
		result.Warnings = append(result.Warnings, msg)
		result.Status = "Warning"
	}

	if config.SiteDir == "" {
		config.SiteDir = defaults.SiteDir
	}

	// Validate minimum size
	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	// Extraction quality
	if config.DPI < 36 || config.DPI > 1200 {
		warn("dpi %d out of range, using %d", config.DPI, defaultDPI)
		config.DPI = defaultDPI
	}
	if config.JPEGQuality < 1 || config.JPEGQuality > 100 {
		warn("jpeg_quality %d out of range, using %d", config.JPEGQuality, defaultJPEGQuality)
		config.JPEGQuality = defaultJPEGQuality
	}

	if !knownSortMethod(config.SortMethod) {
		config.SortMethod = SortDigits
	}

	// Book geometry must be positive
	if config.BookWidth <= 0 || config.BookHeight <= 0 {
		warn("book size %dx%d invalid, using %dx%d", config.BookWidth, config.BookHeight, defaultBookWidth, defaultBookHeight)
		config.BookWidth = defaultBookWidth
		config.BookHeight = defaultBookHeight
	}
	if config.DisplayBreakpoint <= 0 {
		config.DisplayBreakpoint = defaults.DisplayBreakpoint
	}
	if config.MarginBreakpoint <= 0 {
		config.MarginBreakpoint = defaults.MarginBreakpoint
	}
	if config.NarrowMargin < 0 {
		config.NarrowMargin = defaults.NarrowMargin
	}
	if config.WideMargin < 0 {
		config.WideMargin = defaults.WideMargin
	}

	// Timings (milliseconds)
	if config.WheelCooldownMillis < 0 {
		config.WheelCooldownMillis = defaults.WheelCooldownMillis
	}
	if config.LoaderDelayMillis <= 0 {
		config.LoaderDelayMillis = defaults.LoaderDelayMillis
	}
	if config.TurnDurationMillis < 0 {
		config.TurnDurationMillis = defaults.TurnDurationMillis
	}

	if config.ZoomScale <= 1.0 {
		config.ZoomScale = defaultZoomScale
	}

	// Validate cache size (minimum 1, maximum 64)
	if config.CacheSize < 1 {
		config.CacheSize = 16
	} else if config.CacheSize > 64 {
		config.CacheSize = 64
	}

	// Validate preload count (minimum 1, maximum 16)
	if config.PreloadCount < 1 {
		config.PreloadCount = 4
	} else if config.PreloadCount > 16 {
		config.PreloadCount = 16
	}

	if config.Mouse.DoubleClickTime <= 0 {
		config.Mouse.DoubleClickTime = defaults.Mouse.DoubleClickTime
	}
	if config.Mouse.WheelSensitivity <= 0 {
		config.Mouse.WheelSensitivity = defaults.Mouse.WheelSensitivity
	}

	// Validate keybindings - ensure defaults exist for missing actions
	if config.Keybindings == nil {
		config.Keybindings = GetDefaultKeybindings()
	} else {
		for action, defaultKeys := range GetDefaultKeybindings() {
			if _, exists := config.Keybindings[action]; !exists {
				config.Keybindings[action] = defaultKeys
			}
		}

		if err := validateKeybindings(config.Keybindings); err != nil {
			warn("Keybinding errors, using defaults: %v", err)
			config.Keybindings = GetDefaultKeybindings()
		}
	}

	result.Config = config
	return result
}

// saveConfigToPath writes config as indented JSON
func saveConfigToPath(config Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("save config to %s: %w", configPath, err)
	}
	return nil
}
