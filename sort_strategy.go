package main

import (
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// SortStrategy defines the interface for ordering page image names
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(names []string) []string
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

// DigitsSortStrategy orders names by the integer formed by all of their digits,
// so "page_2.jpg" comes before "page_10.jpg". If any name has no digit at all
// the whole list is sorted lexically instead.
type DigitsSortStrategy struct{}

// digitKey returns the digits of name without leading zeros.
// Fullwidth digits count as their ASCII equivalents.
func digitKey(name string) (string, bool) {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '０' && r <= '９':
			b.WriteRune('0' + (r - '０'))
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	key := strings.TrimLeft(b.String(), "0")
	if key == "" {
		key = "0"
	}
	return key, true
}

// lessDigitKey compares two digit keys as unbounded integers
func lessDigitKey(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func (s *DigitsSortStrategy) Sort(names []string) []string {
	if len(names) == 0 {
		return []string{}
	}

	keys := make(map[string]string, len(names))
	for _, name := range names {
		key, ok := digitKey(name)
		if !ok {
			return (&SimpleSortStrategy{}).Sort(names)
		}
		keys[name] = key
	}

	result := make([]string, len(names))
	copy(result, names)

	sort.SliceStable(result, func(i, j int) bool {
		ki, kj := keys[result[i]], keys[result[j]]
		if ki != kj {
			return lessDigitKey(ki, kj)
		}
		return result[i] < result[j]
	})

	return result
}

func (s *DigitsSortStrategy) Name() string {
	return "Digits"
}

func (s *DigitsSortStrategy) ID() int {
	return SortDigits
}

// NaturalSortStrategy implements natural sorting using maruel/natural
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(names []string) []string {
	if len(names) == 0 {
		return []string{}
	}

	// Create a copy to avoid modifying the original
	result := make([]string, len(names))
	copy(result, names)

	sort.Slice(result, func(i, j int) bool {
		return natural.Less(result[i], result[j])
	})

	return result
}

func (s *NaturalSortStrategy) Name() string {
	return "Natural"
}

func (s *NaturalSortStrategy) ID() int {
	return SortNatural
}

// SimpleSortStrategy implements lexicographical sorting
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(names []string) []string {
	if len(names) == 0 {
		return []string{}
	}

	result := make([]string, len(names))
	copy(result, names)

	sort.Strings(result)

	return result
}

func (s *SimpleSortStrategy) Name() string {
	return "Simple"
}

func (s *SimpleSortStrategy) ID() int {
	return SortSimple
}

// EntryOrderSortStrategy preserves the original order
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(names []string) []string {
	if len(names) == 0 {
		return []string{}
	}

	result := make([]string, len(names))
	copy(result, names)

	return result
}

func (s *EntryOrderSortStrategy) Name() string {
	return "Entry Order"
}

func (s *EntryOrderSortStrategy) ID() int {
	return SortEntryOrder
}

// GetSortStrategy returns the appropriate strategy based on the sort method ID
func GetSortStrategy(sortMethod int) SortStrategy {
	switch sortMethod {
	case SortDigits:
		return &DigitsSortStrategy{}
	case SortNatural:
		return &NaturalSortStrategy{}
	case SortSimple:
		return &SimpleSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &DigitsSortStrategy{} // Default fallback
	}
}

// knownSortMethod reports whether id names one of the strategies
func knownSortMethod(id int) bool {
	for _, strategy := range GetAllSortStrategies() {
		if strategy.ID() == id {
			return true
		}
	}
	return false
}

// GetAllSortStrategies returns all available sort strategies
func GetAllSortStrategies() []SortStrategy {
	return []SortStrategy{
		&DigitsSortStrategy{},
		&NaturalSortStrategy{},
		&SimpleSortStrategy{},
		&EntryOrderSortStrategy{},
	}
}
