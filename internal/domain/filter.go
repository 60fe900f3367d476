package domain

// SortKey selects the ordering of a word listing.
type SortKey string

const (
	SortAlphabetical SortKey = "alphabetical"
	SortReverse      SortKey = "reverse"
	SortFrequency    SortKey = "frequency"
)

// ParseSortKey maps a query value to a SortKey. Clients send
// "word" for alphabetical order; anything unknown falls back to it too.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortReverse:
		return SortReverse
	case SortFrequency:
		return SortFrequency
	default:
		return SortAlphabetical
	}
}

// WordFilter defines a page over active words.
type WordFilter struct {
	// Search is a case-insensitive substring filter on the word text.
	// Empty means no filter.
	Search string

	SortBy SortKey

	Limit  int
	Offset int
}
