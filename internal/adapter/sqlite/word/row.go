package word

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/vocab-backend/internal/domain"
)

const table = "words"

var columns = []string{
	"id", "word", "meaning", "example", "phonetic", "part_of_speech",
	"synonyms", "antonyms", "translations", "source", "frequency",
	"last_fetched", "is_active", "completeness", "failed_attempts",
	"created_at", "updated_at",
}

// jsonList stores a []string as a JSON array in a TEXT column.
type jsonList []string

func (l jsonList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	return string(b), err
}

func (l *jsonList) Scan(src any) error {
	return scanJSON(src, (*[]string)(l))
}

// jsonMap stores translations as a JSON object in a TEXT column.
type jsonMap map[string]string

func (m jsonMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]string(m))
	return string(b), err
}

func (m *jsonMap) Scan(src any) error {
	return scanJSON(src, (*map[string]string)(m))
}

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		return json.Unmarshal([]byte(v), dst)
	case []byte:
		return json.Unmarshal(v, dst)
	default:
		return fmt.Errorf("scan json: unsupported type %T", src)
	}
}

// wordRow is the scan target for a words row.
type wordRow struct {
	ID             uuid.UUID    `db:"id"`
	Word           string       `db:"word"`
	Meaning        string       `db:"meaning"`
	Example        string       `db:"example"`
	Phonetic       string       `db:"phonetic"`
	PartOfSpeech   string       `db:"part_of_speech"`
	Synonyms       jsonList     `db:"synonyms"`
	Antonyms       jsonList     `db:"antonyms"`
	Translations   jsonMap      `db:"translations"`
	Source         string       `db:"source"`
	Frequency      int          `db:"frequency"`
	LastFetched    sql.NullTime `db:"last_fetched"`
	IsActive       bool         `db:"is_active"`
	Completeness   string       `db:"completeness"`
	FailedAttempts int          `db:"failed_attempts"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

func (r wordRow) toDomain() *domain.Word {
	w := &domain.Word{
		ID:             r.ID,
		Word:           r.Word,
		Meaning:        r.Meaning,
		Example:        r.Example,
		Phonetic:       r.Phonetic,
		PartOfSpeech:   r.PartOfSpeech,
		Synonyms:       nonNil(r.Synonyms),
		Antonyms:       nonNil(r.Antonyms),
		Translations:   domain.Translations(r.Translations),
		Source:         domain.Source(r.Source),
		Frequency:      r.Frequency,
		IsActive:       r.IsActive,
		Completeness:   domain.Completeness(r.Completeness),
		FailedAttempts: r.FailedAttempts,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if w.Translations == nil {
		w.Translations = domain.Translations{}
	}
	if r.LastFetched.Valid {
		w.LastFetched = r.LastFetched.Time
	}
	return w
}

func toDomainList(rows []wordRow) []domain.Word {
	out := make([]domain.Word, len(rows))
	for i, r := range rows {
		out[i] = *r.toDomain()
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
