package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Source tells where a word record came from.
type Source string

const (
	SourcePreloaded Source = "preloaded"
	SourceEnriched  Source = "enriched"
	SourceExternal  Source = "external"
)

// IsValid reports whether s is a known source tag.
func (s Source) IsValid() bool {
	switch s {
	case SourcePreloaded, SourceEnriched, SourceExternal:
		return true
	}
	return false
}

// Completeness is computed on every write from the merged definitional fields.
type Completeness string

const (
	// CompletenessPlaceholder: meaning is absent or a placeholder.
	CompletenessPlaceholder Completeness = "placeholder"
	// CompletenessPartial: real meaning, but example or part of speech is missing.
	CompletenessPartial Completeness = "partial"
	// CompletenessComplete: meaning, example and part of speech are all real.
	CompletenessComplete Completeness = "complete"
)

// MaxRelatedWords caps synonyms and antonyms.
const MaxRelatedWords = 5

// TargetLanguages is the fixed translation set served to clients.
var TargetLanguages = []string{"es", "hi", "te"}

// HistoricalLanguages were filled by older batch runs and are still accepted as keys.
var HistoricalLanguages = []string{"fr", "de"}

// Translations maps a language code to translated text. A key with an empty
// value means a translation was attempted and failed; an absent key means it
// was never attempted.
type Translations map[string]string

// Missing returns the languages from langs that are absent or empty.
func (t Translations) Missing(langs []string) []string {
	var missing []string
	for _, l := range langs {
		if t[l] == "" {
			missing = append(missing, l)
		}
	}
	return missing
}

// AllEmpty reports whether there is no non-empty translation.
func (t Translations) AllEmpty() bool {
	for _, v := range t {
		if v != "" {
			return false
		}
	}
	return true
}

// Clone returns a copy that never aliases t.
func (t Translations) Clone() Translations {
	out := make(Translations, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Word is the persisted vocabulary record.
type Word struct {
	ID             uuid.UUID
	Word           string
	Meaning        string
	Example        string
	Phonetic       string
	PartOfSpeech   string
	Synonyms       []string
	Antonyms       []string
	Translations   Translations
	Source         Source
	Frequency      int
	LastFetched    time.Time
	IsActive       bool
	Completeness   Completeness
	FailedAttempts int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewExternalWord builds the in-memory record used for a word that is not stored yet.
func NewExternalWord(word string) *Word {
	return &Word{
		Word:         word,
		Synonyms:     []string{},
		Antonyms:     []string{},
		Translations: Translations{},
		Source:       SourceExternal,
		Frequency:    1,
		IsActive:     true,
		Completeness: CompletenessPlaceholder,
	}
}

// Placeholder text patterns. The "for"/"sentence" variants are written by the
// bulk preload, the "of"/"with" variants by the dictionary adapter fallback.
const (
	preloadMeaningPrefix  = "Definition for "
	fallbackMeaningPrefix = "Definition of "
	preloadExamplePrefix  = "Example sentence with "
	fallbackExamplePrefix = "Example with "
)

// PreloadMeaning returns the meaning placeholder written by the bulk preload.
func PreloadMeaning(word string) string { return preloadMeaningPrefix + word }

// PreloadExample returns the example placeholder written by the bulk preload.
func PreloadExample(word string) string { return preloadExamplePrefix + `"` + word + `"` }

// FallbackMeaning returns the meaning used when the dictionary lookup fails.
func FallbackMeaning(word string) string { return fallbackMeaningPrefix + word }

// FallbackExample returns the example used when the dictionary lookup fails.
func FallbackExample(word string) string { return fallbackExamplePrefix + `"` + word + `"` }

// IsPlaceholderMeaning reports whether s is empty or a generated meaning.
func IsPlaceholderMeaning(s string) bool {
	return s == "" || strings.HasPrefix(s, preloadMeaningPrefix) || strings.HasPrefix(s, fallbackMeaningPrefix)
}

// IsPlaceholderExample reports whether s is empty or a generated example.
func IsPlaceholderExample(s string) bool {
	return s == "" || strings.HasPrefix(s, preloadExamplePrefix) || strings.HasPrefix(s, fallbackExamplePrefix)
}

// ComputeCompleteness classifies the definitional fields of w.
func ComputeCompleteness(w *Word) Completeness {
	if IsPlaceholderMeaning(w.Meaning) {
		return CompletenessPlaceholder
	}
	if IsPlaceholderExample(w.Example) || w.PartOfSpeech == "" {
		return CompletenessPartial
	}
	return CompletenessComplete
}

// NeedsEnrichment is the full freshness predicate: any definitional field is
// missing or generated, or no translation is filled in.
func NeedsEnrichment(w *Word) bool {
	return IsPlaceholderMeaning(w.Meaning) ||
		IsPlaceholderExample(w.Example) ||
		w.PartOfSpeech == "" ||
		w.Translations.AllEmpty()
}

// NeedsDefinition reports whether the dictionary should be consulted for w.
// A partial record (real meaning, missing example or part of speech) is only
// retried once its last fetch is older than retryAfter; retryAfter <= 0
// retries on every call.
func (w *Word) NeedsDefinition(now time.Time, retryAfter time.Duration) bool {
	switch ComputeCompleteness(w) {
	case CompletenessPlaceholder:
		return true
	case CompletenessPartial:
		if retryAfter <= 0 || w.LastFetched.IsZero() {
			return true
		}
		return now.Sub(w.LastFetched) >= retryAfter
	default:
		return false
	}
}

// WordPatch is a partial update. Nil fields are left untouched by the store.
//
// Translations merge per key: a non-empty value overwrites, an empty value
// only records the key when it is absent.
type WordPatch struct {
	Meaning        *string
	Example        *string
	Phonetic       *string
	PartOfSpeech   *string
	Synonyms       []string
	Antonyms       []string
	Translations   Translations
	Source         *Source
	Frequency      *int
	LastFetched    *time.Time
	IsActive       *bool
	FailedAttempts *int
}

// IsEmpty reports whether the patch carries no field.
func (p WordPatch) IsEmpty() bool {
	return p.Meaning == nil && p.Example == nil && p.Phonetic == nil && p.PartOfSpeech == nil &&
		p.Synonyms == nil && p.Antonyms == nil && len(p.Translations) == 0 &&
		p.Source == nil && p.Frequency == nil && p.LastFetched == nil &&
		p.IsActive == nil && p.FailedAttempts == nil
}

// SplitTranslations separates the values that overwrite from the keys that
// are only recorded when absent.
func (p WordPatch) SplitTranslations() (values, defaults Translations) {
	values = Translations{}
	defaults = Translations{}
	for k, v := range p.Translations {
		if v == "" {
			defaults[k] = ""
		} else {
			values[k] = v
		}
	}
	return values, defaults
}

// Apply merges p into w in memory using the same rules as the store. It is
// used for records that are not persisted yet and by in-memory test doubles.
func (p WordPatch) Apply(w *Word) {
	if p.Meaning != nil {
		w.Meaning = *p.Meaning
	}
	if p.Example != nil {
		w.Example = *p.Example
	}
	if p.Phonetic != nil {
		w.Phonetic = *p.Phonetic
	}
	if p.PartOfSpeech != nil {
		w.PartOfSpeech = *p.PartOfSpeech
	}
	if p.Synonyms != nil {
		w.Synonyms = CapRelated(p.Synonyms)
	}
	if p.Antonyms != nil {
		w.Antonyms = CapRelated(p.Antonyms)
	}
	if len(p.Translations) > 0 {
		if w.Translations == nil {
			w.Translations = Translations{}
		}
		for k, v := range p.Translations {
			if _, ok := w.Translations[k]; v != "" || !ok {
				w.Translations[k] = v
			}
		}
	}
	if p.Source != nil {
		w.Source = *p.Source
	}
	if p.Frequency != nil {
		w.Frequency = *p.Frequency
	}
	if p.LastFetched != nil {
		w.LastFetched = *p.LastFetched
	}
	if p.IsActive != nil {
		w.IsActive = *p.IsActive
	}
	if p.FailedAttempts != nil {
		w.FailedAttempts = *p.FailedAttempts
	}
	w.Completeness = ComputeCompleteness(w)
}

// CapRelated trims a synonym/antonym list to MaxRelatedWords and never returns nil.
func CapRelated(list []string) []string {
	if len(list) > MaxRelatedWords {
		list = list[:MaxRelatedWords]
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// WordStats summarizes the store for the verify command.
type WordStats struct {
	Total    int
	Enriched int
	Pending  int
	Inactive int
}

// CompletionPercent is the share of enriched words in the store.
func (s WordStats) CompletionPercent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Enriched) / float64(s.Total) * 100
}
