// Package wordlist reads the word lists imported by the bulk preload.
// Pure function: reader in, normalized candidate words out.
package wordlist

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/vocab-backend/internal/domain"
)

// Format selects how a word list is laid out.
type Format string

const (
	// FormatPlain is one word per line.
	FormatPlain Format = "plain"
	// FormatCSV is a CSV file with a header row and the word in the first
	// column, as in the NGSL and NAWL frequency lists.
	FormatCSV Format = "csv"
)

// ParseFormat maps a flag value to a Format. An empty value picks CSV for
// ".csv" paths and plain text otherwise.
func ParseFormat(s, path string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPlain:
		return FormatPlain, nil
	case FormatCSV:
		return FormatCSV, nil
	case "":
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			return FormatCSV, nil
		}
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("unknown word list format %q", s)
	}
}

// Result is the outcome of reading one list.
type Result struct {
	// Words are the distinct preload candidates in list order.
	Words []string
	// Read counts the non-blank entries seen.
	Read int
}

// Read parses r in the given format and keeps the distinct words accepted
// by domain.IsPreloadCandidate.
func Read(r io.Reader, format Format) (Result, error) {
	var (
		res  Result
		seen = make(map[string]struct{})
	)
	add := func(raw string) {
		w := domain.NormalizeWord(raw)
		if w == "" {
			return
		}
		res.Read++
		if !domain.IsPreloadCandidate(w) {
			return
		}
		if _, dup := seen[w]; dup {
			return
		}
		seen[w] = struct{}{}
		res.Words = append(res.Words, w)
	}

	var err error
	switch format {
	case FormatCSV:
		err = readCSV(r, add)
	default:
		err = readPlain(r, add)
	}
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func readPlain(r io.Reader, add func(string)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		add(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read word list: %w", err)
	}
	return nil
}

func readCSV(r io.Reader, add func(string)) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable column count

	// Skip header row.
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("read header: %w", err)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		add(record[0])
	}
}
