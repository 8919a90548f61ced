package main

// PageResource is one page image of the book
type PageResource struct {
	Index       int    // 0-based position in the book
	ResourceRef string // Path or URL of the page image
	IsCover     bool   // First or last page
}

// PageSet is the immutable, ordered list of pages together with the
// intrinsic size of a full double-page spread
type PageSet struct {
	pages      []PageResource
	baseWidth  float64
	baseHeight float64
}

// NewPageSet builds a PageSet from ordered resource references.
// The first and last pages are flagged as covers; a single page is both.
func NewPageSet(refs []string, baseWidth, baseHeight float64) *PageSet {
	pages := make([]PageResource, len(refs))
	for i, ref := range refs {
		pages[i] = PageResource{
			Index:       i,
			ResourceRef: ref,
			IsCover:     i == 0 || i == len(refs)-1,
		}
	}
	return &PageSet{
		pages:      pages,
		baseWidth:  baseWidth,
		baseHeight: baseHeight,
	}
}

// Len returns the number of pages
func (s *PageSet) Len() int {
	return len(s.pages)
}

// Page returns the page with the given 1-based number
func (s *PageSet) Page(number int) (PageResource, bool) {
	if number < 1 || number > len(s.pages) {
		return PageResource{}, false
	}
	return s.pages[number-1], true
}

// Pages returns a copy of all pages in order
func (s *PageSet) Pages() []PageResource {
	result := make([]PageResource, len(s.pages))
	copy(result, s.pages)
	return result
}

// AspectRatio is width/height of the full double-page spread
func (s *PageSet) AspectRatio() float64 {
	return s.baseWidth / s.baseHeight
}

// spreadFor returns the 1-based pages shown side by side for the given
// page in double mode. A zero means that side is empty.
// The front cover sits alone on the right; after it pages pair up as
// [even, odd].
func spreadFor(page, total int) (left, right int) {
	if total <= 0 {
		return 0, 0
	}
	if page <= 1 {
		return 0, 1
	}
	left = page
	if left%2 != 0 {
		left--
	}
	right = left + 1
	if right > total {
		right = 0
	}
	return left, right
}
