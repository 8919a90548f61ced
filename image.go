package main

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// NavigationDirection represents the direction of navigation
type NavigationDirection int

const (
	NavigationForward NavigationDirection = iota
	NavigationBackward
	NavigationJump
)

// PreloadRequest represents a request to preload pages around an index
type PreloadRequest struct {
	Index     int // 0-based
	Direction NavigationDirection
}

// PreloadStats provides statistics about preloading
type PreloadStats struct {
	LoadedCount   int
	FailedCount   int
	LastDirection NavigationDirection
}

// PreloadManager decodes upcoming pages on a worker goroutine
type PreloadManager struct {
	requestChan  chan PreloadRequest
	ctx          context.Context
	cancel       context.CancelFunc
	imageManager *PageImageManager
	mu           sync.RWMutex
	stats        PreloadStats
	maxPreload   int
	enabled      bool
}

// NewPreloadManager creates a PreloadManager and starts its worker
func NewPreloadManager(imageManager *PageImageManager, maxPreload int) *PreloadManager {
	ctx, cancel := context.WithCancel(context.Background())
	pm := &PreloadManager{
		requestChan:  make(chan PreloadRequest, 16),
		ctx:          ctx,
		cancel:       cancel,
		imageManager: imageManager,
		maxPreload:   maxPreload,
		enabled:      true,
	}

	go pm.worker()

	return pm
}

// SetEnabled enables or disables preloading
func (pm *PreloadManager) SetEnabled(enabled bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = enabled
}

// IsEnabled returns whether preloading is enabled
func (pm *PreloadManager) IsEnabled() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.enabled
}

// GetStats returns current preload statistics
func (pm *PreloadManager) GetStats() PreloadStats {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.stats
}

// Stop stops the preload worker
func (pm *PreloadManager) Stop() {
	pm.cancel()
}

// StartPreload replaces any queued request with one for currentIdx
func (pm *PreloadManager) StartPreload(currentIdx int, direction NavigationDirection) {
	if !pm.IsEnabled() {
		return
	}

drain:
	for {
		select {
		case <-pm.requestChan:
			// discard pending requests
		default:
			break drain
		}
	}

	select {
	case pm.requestChan <- PreloadRequest{Index: currentIdx, Direction: direction}:
	default:
		debugLog("Preload request channel full, skipping preload request")
	}
}

func (pm *PreloadManager) worker() {
	for {
		select {
		case <-pm.ctx.Done():
			return
		case req := <-pm.requestChan:
			if pm.IsEnabled() {
				pm.processPreloadRequest(req)
			}
		}
	}
}

func (pm *PreloadManager) processPreloadRequest(req PreloadRequest) {
	pm.mu.Lock()
	pm.stats.LastDirection = req.Direction
	pm.mu.Unlock()

	for _, idx := range calculatePreloadIndices(req.Index, req.Direction, pm.maxPreload, pm.imageManager.Len()) {
		select {
		case <-pm.ctx.Done():
			return
		default:
			pm.preloadImage(idx)
		}
	}
}

// calculatePreloadIndices returns the 0-based pages to decode ahead of the reader
func calculatePreloadIndices(currentIdx int, direction NavigationDirection, maxPreload, count int) []int {
	var indices []int
	add := func(idx int) {
		if idx >= 0 && idx < count {
			indices = append(indices, idx)
		}
	}

	switch direction {
	case NavigationForward:
		for i := 1; i <= maxPreload; i++ {
			add(currentIdx + i)
		}
	case NavigationBackward:
		for i := 1; i <= maxPreload; i++ {
			add(currentIdx - i)
		}
	case NavigationJump:
		half := maxPreload / 2
		if half == 0 {
			half = 1
		}
		for i := 1; i <= half; i++ {
			add(currentIdx + i)
		}
		for i := 1; i <= half; i++ {
			add(currentIdx - i)
		}
	}

	return indices
}

func (pm *PreloadManager) preloadImage(idx int) {
	ref, ok := pm.imageManager.ref(idx)
	if !ok || pm.imageManager.cache.Contains(ref) {
		return
	}

	img, err := loadImage(ref)
	if err != nil {
		pm.mu.Lock()
		pm.stats.FailedCount++
		pm.mu.Unlock()
		debugLog("Preload failed for [%d] %s: %v", idx+1, ref, err)
		return
	}
	pm.imageManager.cache.Add(ref, img)

	pm.mu.Lock()
	pm.stats.LoadedCount++
	pm.mu.Unlock()

	debugLog("Preloaded [%d] %s (cache: %d items)", idx+1, ref, pm.imageManager.cache.Len())
}

// PageImageManager decodes page images on demand and keeps recent ones in an LRU cache
type PageImageManager struct {
	refs           []string
	cache          *lru.Cache[string, *ebiten.Image]
	preloadManager *PreloadManager
}

// NewPageImageManager creates a manager over the page set's resource references
func NewPageImageManager(pages *PageSet, cacheSize, preloadCount int, preloadEnabled bool) *PageImageManager {
	cache, err := lru.NewWithEvict[string, *ebiten.Image](cacheSize, func(_ string, img *ebiten.Image) {
		if img != nil {
			img.Deallocate()
		}
	})
	if err != nil {
		log.Printf("Error: Failed to create LRU cache: %v", err)
		cache, _ = lru.NewWithEvict[string, *ebiten.Image](16, func(_ string, img *ebiten.Image) {
			if img != nil {
				img.Deallocate()
			}
		})
	}

	refs := make([]string, 0, pages.Len())
	for _, page := range pages.Pages() {
		refs = append(refs, page.ResourceRef)
	}

	m := &PageImageManager{
		refs:  refs,
		cache: cache,
	}
	m.preloadManager = NewPreloadManager(m, preloadCount)
	m.preloadManager.SetEnabled(preloadEnabled)
	return m
}

// Len returns the number of pages
func (m *PageImageManager) Len() int {
	return len(m.refs)
}

func (m *PageImageManager) ref(idx int) (string, bool) {
	if idx < 0 || idx >= len(m.refs) {
		return "", false
	}
	return m.refs[idx], true
}

// GetPage returns the decoded image for a 1-based page number, or nil when it
// cannot be loaded. Missing pages are not reported beyond a debug log.
func (m *PageImageManager) GetPage(number int) *ebiten.Image {
	ref, ok := m.ref(number - 1)
	if !ok {
		return nil
	}

	if img, ok := m.cache.Get(ref); ok {
		return img
	}

	img, err := loadImage(ref)
	if err != nil {
		debugLog("Page %d (%s) not displayed: %v", number, ref, err)
		return nil
	}
	m.cache.Add(ref, img)
	return img
}

// StartPreload queues decoding of pages around a 1-based page number
func (m *PageImageManager) StartPreload(number int, direction NavigationDirection) {
	m.preloadManager.StartPreload(number-1, direction)
}

// Stop ends the preload worker
func (m *PageImageManager) Stop() {
	m.preloadManager.Stop()
	stats := m.preloadManager.GetStats()
	debugLog("Preloaded %d pages, %d failed", stats.LoadedCount, stats.FailedCount)
}

// decodeImageFile decodes any registered image format from disk
func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func loadImage(path string) (*ebiten.Image, error) {
	img, err := decodeImageFile(path)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}
