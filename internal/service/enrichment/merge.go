package enrichment

import (
	"time"

	"github.com/heartmarshall/vocab-backend/internal/domain"
	"github.com/heartmarshall/vocab-backend/internal/provider"
)

// definitionPatch builds the store patch for a dictionary result. Stored
// real text is never replaced by a placeholder or an empty value.
func definitionPatch(rec *domain.Word, res provider.DefinitionResult, now time.Time) domain.WordPatch {
	patch := domain.WordPatch{LastFetched: &now}

	patch.Meaning = pickText(rec.Meaning, res.Meaning, domain.IsPlaceholderMeaning)
	patch.Example = pickText(rec.Example, res.Example, domain.IsPlaceholderExample)

	if !res.Found {
		return patch
	}

	if res.Phonetic != "" {
		patch.Phonetic = &res.Phonetic
	}
	if res.PartOfSpeech != "" {
		patch.PartOfSpeech = &res.PartOfSpeech
	}
	if len(res.Synonyms) > 0 {
		patch.Synonyms = res.Synonyms
	}
	if len(res.Antonyms) > 0 {
		patch.Antonyms = res.Antonyms
	}

	src := domain.SourceEnriched
	active := true
	failed := 0
	patch.Source = &src
	patch.IsActive = &active
	patch.FailedAttempts = &failed

	return patch
}

// pickText returns the candidate when it should be written over current:
// real text always, placeholder text only into an empty field.
func pickText(current, candidate string, isPlaceholder func(string) bool) *string {
	if candidate == "" || candidate == current {
		return nil
	}
	if isPlaceholder(candidate) && current != "" {
		return nil
	}
	return &candidate
}
