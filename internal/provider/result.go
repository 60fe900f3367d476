// Package provider holds the results returned by external content providers.
package provider

// DefinitionResult is the normalized output of a dictionary lookup.
//
// Found is false when the lookup failed for any reason; the text fields then
// hold the deterministic fallback placeholders and must not replace stored data.
type DefinitionResult struct {
	Found        bool
	Meaning      string
	Example      string
	Phonetic     string
	PartOfSpeech string
	Synonyms     []string
	Antonyms     []string
}
