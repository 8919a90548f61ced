package main

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func testExtractConfig(t *testing.T, source string) Config {
	t.Helper()
	dir := t.TempDir()
	config := defaultConfig()
	config.SiteDir = filepath.Join(dir, "docs")
	config.SourcePath = filepath.Join(dir, source)
	return config
}

func stubLookPath(t *testing.T, fn func(string) (string, error)) {
	t.Helper()
	original := lookPath
	lookPath = fn
	t.Cleanup(func() { lookPath = original })
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeZip(t *testing.T, path string, entries map[string][]byte, order []string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(entries[name]); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestExtractFallsBackToExistingImages(t *testing.T) {
	config := testExtractConfig(t, "missing.pdf")
	writeFiles(t, config.PagesPath(), "page_10.jpg", "page_2.jpg", "page_1.PNG", "notes.txt")

	pages, err := NewExtractor(config).Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	expected := []string{"page_1.PNG", "page_2.jpg", "page_10.jpg"}
	if !reflect.DeepEqual(pages, expected) {
		t.Errorf("Expected %v, got %v", expected, pages)
	}
}

func TestExtractNoPages(t *testing.T) {
	config := testExtractConfig(t, "missing.pdf")

	_, err := NewExtractor(config).Extract(context.Background())
	if !errors.Is(err, ErrNoPages) {
		t.Errorf("Expected ErrNoPages, got %v", err)
	}
}

func TestExtractMissingConverter(t *testing.T) {
	config := testExtractConfig(t, "catalog.pdf")
	writeFiles(t, filepath.Dir(config.SourcePath), "catalog.pdf")
	stubLookPath(t, func(string) (string, error) {
		return "", errors.New("executable file not found in $PATH")
	})

	e := NewExtractor(config)
	if err := os.MkdirAll(config.PagesPath(), 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := e.convert(context.Background(), config.PagesPath()); !errors.Is(err, ErrConverterMissing) {
		t.Errorf("Expected ErrConverterMissing, got %v", err)
	}

	writeFiles(t, config.PagesPath(), "page_1.jpg")
	pages, err := e.Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract should fall back to existing pages: %v", err)
	}
	if !reflect.DeepEqual(pages, []string{"page_1.jpg"}) {
		t.Errorf("Unexpected pages %v", pages)
	}
}

func TestExtractUnsupportedSource(t *testing.T) {
	config := testExtractConfig(t, "catalog.docx")
	writeFiles(t, filepath.Dir(config.SourcePath), "catalog.docx")
	if err := os.MkdirAll(config.PagesPath(), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := NewExtractor(config).convert(context.Background(), config.PagesPath())
	if !errors.Is(err, ErrUnsupportedSource) {
		t.Errorf("Expected ErrUnsupportedSource, got %v", err)
	}
}

func TestExtractPDF(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script converter stub")
	}

	config := testExtractConfig(t, "catalog.pdf")
	writeFiles(t, filepath.Dir(config.SourcePath), "catalog.pdf")
	writeFiles(t, config.PagesPath(), "page_7.jpg")

	// Arguments: -r DPI -jpeg -jpegopt OPTS SRC PREFIX
	script := filepath.Join(t.TempDir(), "pdftoppm")
	body := "#!/bin/sh\nfor i in 1 2 10; do echo $i > \"$7-$i.jpg\"; done\n"
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatal(err)
	}
	stubLookPath(t, func(string) (string, error) { return script, nil })

	pages, err := NewExtractor(config).Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	expected := []string{"page_1.jpg", "page_2.jpg", "page_3.jpg"}
	if !reflect.DeepEqual(pages, expected) {
		t.Fatalf("Expected %v, got %v", expected, pages)
	}

	data, err := os.ReadFile(filepath.Join(config.PagesPath(), "page_3.jpg"))
	if err != nil || string(data) != "10\n" {
		t.Errorf("page_3.jpg should come from the tenth PDF page, got %q (%v)", data, err)
	}
	if _, err := os.Stat(filepath.Join(config.PagesPath(), "page_7.jpg")); !os.IsNotExist(err) {
		t.Error("Stale page_7.jpg was not removed")
	}
}

func TestExtractZip(t *testing.T) {
	config := testExtractConfig(t, "catalog.cbz")
	writeFiles(t, config.PagesPath(), "page_9.jpg")

	entries := map[string][]byte{
		"img10.png":  pngBytes(t, 10, 4),
		"img2.png":   pngBytes(t, 2, 4),
		"readme.txt": []byte("ignored"),
	}
	writeZip(t, config.SourcePath, entries, []string{"img10.png", "readme.txt", "img2.png"})

	pages, err := NewExtractor(config).Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !reflect.DeepEqual(pages, []string{"page_1.jpg", "page_2.jpg"}) {
		t.Fatalf("Unexpected pages %v", pages)
	}

	first, err := decodeImageFile(filepath.Join(config.PagesPath(), "page_1.jpg"))
	if err != nil {
		t.Fatalf("page_1.jpg is not a valid image: %v", err)
	}
	if first.Bounds().Dx() != 2 {
		t.Errorf("page_1.jpg should come from img2.png, got width %d", first.Bounds().Dx())
	}

	if _, err := os.Stat(filepath.Join(config.PagesPath(), "page_9.jpg")); !os.IsNotExist(err) {
		t.Error("Stale page_9.jpg was not removed")
	}

	leftovers, _ := filepath.Glob(filepath.Join(config.PagesPath(), ".convert-*"))
	if len(leftovers) != 0 {
		t.Errorf("Scratch directories left behind: %v", leftovers)
	}
}

func TestExtractCorruptArchiveKeepsExistingPages(t *testing.T) {
	config := testExtractConfig(t, "catalog.zip")
	writeFiles(t, config.PagesPath(), "page_1.jpg", "page_2.jpg")

	entries := map[string][]byte{
		"a.png": pngBytes(t, 2, 2),
		"b.png": []byte("broken"),
	}
	writeZip(t, config.SourcePath, entries, []string{"a.png", "b.png"})

	pages, err := NewExtractor(config).Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !reflect.DeepEqual(pages, []string{"page_1.jpg", "page_2.jpg"}) {
		t.Errorf("Expected the existing pages, got %v", pages)
	}

	data, _ := os.ReadFile(filepath.Join(config.PagesPath(), "page_1.jpg"))
	if string(data) != "page_1.jpg" {
		t.Error("Existing page was overwritten by a failed conversion")
	}
}

func TestWriteJPEGFlattensTransparency(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	img.Set(0, 0, color.NRGBA{0, 0, 0, 0})

	path := filepath.Join(t.TempDir(), "out.jpg")
	if err := writeJPEG(path, img, 90); err != nil {
		t.Fatalf("writeJPEG failed: %v", err)
	}

	decoded, err := decodeImageFile(path)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := decoded.At(4, 4).RGBA()
	if r>>8 < 240 || g>>8 < 240 || b>>8 < 240 {
		t.Errorf("Transparent pixels should become white, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestIsPageExt(t *testing.T) {
	tests := map[string]bool{
		"page_1.jpg":  true,
		"page_1.JPEG": true,
		"scan.png":    true,
		"scan.webp":   false,
		"notes.txt":   false,
	}
	for name, expected := range tests {
		if got := isPageExt(name); got != expected {
			t.Errorf("isPageExt(%q) = %v, want %v", name, got, expected)
		}
	}
}
