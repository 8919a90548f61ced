package main

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/maruel/natural"
	"github.com/nwaples/rardecode"
	xdraw "golang.org/x/image/draw"
)

var (
	// ErrConverterMissing means the PDF rasterizer is not installed
	ErrConverterMissing = errors.New("pdf converter pdftoppm not found")
	// ErrUnsupportedSource means the source document type cannot be converted
	ErrUnsupportedSource = errors.New("unsupported source document")
)

// lookPath finds the PDF rasterizer; replaced in tests
var lookPath = exec.LookPath

func isSupportedExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

// isPageExt reports whether a file in the pages directory is a usable page image
func isPageExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".jpg" || ext == ".jpeg" || ext == ".png"
}

// pageFileName is the name of the n-th (1-based) produced page
func pageFileName(n int) string {
	return "page_" + strconv.Itoa(n) + ".jpg"
}

// Extractor turns the source document into ordered page images
type Extractor struct {
	config Config
}

// NewExtractor creates an Extractor for the configured source and pages directory
func NewExtractor(config Config) *Extractor {
	return &Extractor{config: config}
}

// Extract converts the source document into page images and returns their
// file names inside the pages directory, in reading order. If conversion
// fails for any reason, existing images in the pages directory are used;
// ErrNoPages is returned only when there are none.
func (e *Extractor) Extract(ctx context.Context) ([]string, error) {
	pagesDir := e.config.PagesPath()
	if err := os.MkdirAll(pagesDir, 0755); err != nil {
		return nil, fmt.Errorf("create pages directory: %w", err)
	}

	log.Printf("Converting %s...", e.config.SourcePath)
	pages, err := e.convert(ctx, pagesDir)
	if err == nil {
		log.Printf("%d pages created", len(pages))
		return pages, nil
	}

	log.Printf("Warning: Could not convert %s: %v", e.config.SourcePath, err)
	log.Printf("Looking for existing images in %s...", pagesDir)

	pages, scanErr := scanExistingPages(pagesDir, e.config.SortMethod)
	if scanErr != nil {
		debugLog("Scanning %s: %v", pagesDir, scanErr)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: conversion failed (%v) and %s has no images", ErrNoPages, err, pagesDir)
	}

	log.Printf("Using %d existing images (%s order)", len(pages), GetSortStrategy(e.config.SortMethod).Name())
	return pages, nil
}

// convert renders the source into a scratch directory and publishes the
// result only if every page succeeded
func (e *Extractor) convert(ctx context.Context, pagesDir string) ([]string, error) {
	src := e.config.SourcePath
	if _, err := os.Stat(src); err != nil {
		return nil, err
	}

	scratch, err := os.MkdirTemp(pagesDir, ".convert-")
	if err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	var files []string
	ext := strings.ToLower(filepath.Ext(src))
	switch ext {
	case ".pdf":
		files, err = e.convertPDF(ctx, src, scratch)
	case ".zip", ".cbz":
		files, err = e.convertZip(src, scratch)
	case ".rar", ".cbr":
		files, err = e.convertRar(src, scratch)
	case ".7z", ".cb7":
		files, err = e.convert7z(src, scratch)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, ext)
	}
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s contains no pages", src)
	}

	return publishPages(files, pagesDir)
}

// convertPDF rasterizes every PDF page to JPEG with poppler's pdftoppm
func (e *Extractor) convertPDF(ctx context.Context, src, scratch string) ([]string, error) {
	bin, err := lookPath("pdftoppm")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConverterMissing, err)
	}

	cmd := exec.CommandContext(ctx, bin,
		"-r", strconv.Itoa(e.config.DPI),
		"-jpeg", "-jpegopt", fmt.Sprintf("quality=%d,optimize=y", e.config.JPEGQuality),
		src, filepath.Join(scratch, "page"))
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, strings.TrimSpace(string(out)))
	}

	entries, err := os.ReadDir(scratch)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && isPageExt(entry.Name()) {
			names = append(names, entry.Name())
		}
	}

	// pdftoppm numbers pages page-1.jpg or page-01.jpg depending on the count
	names = GetSortStrategy(SortDigits).Sort(names)
	files := make([]string, len(names))
	for i, name := range names {
		files[i] = filepath.Join(scratch, name)
	}
	return files, nil
}

// archivePage is a page decoded from an archive entry into the scratch directory
type archivePage struct {
	entry string
	file  string
}

// pageCollector re-encodes archive entries as JPEG and orders them by entry name
type pageCollector struct {
	scratch string
	quality int
	pages   []archivePage
}

func (c *pageCollector) add(entry string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %s: %w", entry, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding %s: %w", entry, err)
	}

	file := filepath.Join(c.scratch, fmt.Sprintf("entry_%05d.jpg", len(c.pages)))
	if err := writeJPEG(file, img, c.quality); err != nil {
		return err
	}
	c.pages = append(c.pages, archivePage{entry: entry, file: file})
	return nil
}

func (c *pageCollector) files() []string {
	sort.SliceStable(c.pages, func(i, j int) bool {
		return natural.Less(c.pages[i].entry, c.pages[j].entry)
	})
	files := make([]string, len(c.pages))
	for i, p := range c.pages {
		files[i] = p.file
	}
	return files
}

func (e *Extractor) convertZip(src, scratch string) ([]string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	c := &pageCollector{scratch: scratch, quality: e.config.JPEGQuality}
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isSupportedExt(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		err = c.add(f.Name, rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
	}
	return c.files(), nil
}

func (e *Extractor) convertRar(src, scratch string) ([]string, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	c := &pageCollector{scratch: scratch, quality: e.config.JPEGQuality}
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.IsDir || !isSupportedExt(header.Name) {
			continue
		}
		if err := c.add(header.Name, r); err != nil {
			return nil, err
		}
	}
	return c.files(), nil
}

func (e *Extractor) convert7z(src, scratch string) ([]string, error) {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	c := &pageCollector{scratch: scratch, quality: e.config.JPEGQuality}
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isSupportedExt(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		err = c.add(f.Name, rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
	}
	return c.files(), nil
}

// writeJPEG flattens img onto white and encodes it as JPEG
func writeJPEG(path string, img image.Image, quality int) error {
	bounds := img.Bounds()
	rgb := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(rgb, rgb.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	xdraw.Draw(rgb, rgb.Bounds(), img, bounds.Min, xdraw.Over)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(f, rgb, &jpeg.Options{Quality: quality}); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// publishPages replaces the page_N.jpg files in pagesDir with files, in order
func publishPages(files []string, pagesDir string) ([]string, error) {
	stale, err := filepath.Glob(filepath.Join(pagesDir, "page_*.jpg"))
	if err != nil {
		return nil, err
	}
	for _, path := range stale {
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("remove stale page: %w", err)
		}
	}

	names := make([]string, len(files))
	for i, file := range files {
		names[i] = pageFileName(i + 1)
		if err := os.Rename(file, filepath.Join(pagesDir, names[i])); err != nil {
			return nil, fmt.Errorf("publish page %d: %w", i+1, err)
		}
	}
	return names, nil
}

// scanExistingPages lists the page images already in dir, ordered by sortMethod
func scanExistingPages(dir string, sortMethod int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !isPageExt(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}

	return GetSortStrategy(sortMethod).Sort(names), nil
}
