// Package store provides fundsim.SeriesProvider implementations backed by
// local storage: the JSON-per-fund data directory and a SQLite cache.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/date"
	"github.com/rs/zerolog/log"
)

// UnavailableFile is the name of the report listing the funds that could not
// be downloaded.
const UnavailableFile = "fondos_no_disponibles.json"

// Document is the content of a fund file: the fund description and its
// history.
type Document struct {
	Fund   fundsim.Fund
	Series fundsim.Series
}

// Files reads and writes fund documents in a data directory. Every fund has
// its own "<symbol>_<name>.json" file, see fundsim.Fund.FileName.
type Files struct {
	Dir string
}

// NewFiles returns a Files store rooted at dir.
func NewFiles(dir string) *Files { return &Files{Dir: dir} }

// Path returns the file holding the fund's history.
//
// The exact file name of the catalog entry is tried first, then any file
// whose name starts with the sanitized symbol.
func (f *Files) Path(fundID string) (string, error) {
	fund := fundsim.Describe(fundID)
	if fund.Name != fund.Symbol {
		exact := filepath.Join(f.Dir, fund.FileName())
		if _, err := os.Stat(exact); err == nil {
			return exact, nil
		}
	}
	pattern := filepath.Join(f.Dir, fundsim.SanitizeFilename(fund.Symbol)+"_*.json")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("cannot search %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", &fundsim.FundError{Fund: fundID, Err: fundsim.ErrNotFound}
	}
	slices.Sort(matches)
	return matches[0], nil
}

// Series implements fundsim.SeriesProvider.
func (f *Files) Series(_ context.Context, fundID string) (fundsim.Series, error) {
	doc, err := f.Load(fundID)
	if err != nil {
		return nil, err
	}
	return doc.Series, nil
}

// Load reads the document of a fund.
func (f *Files) Load(fundID string) (Document, error) {
	path, err := f.Path(fundID)
	if err != nil {
		return Document{}, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, &fundsim.FundError{Fund: fundID, Err: fundsim.ErrNotFound}
		}
		return Document{}, &fundsim.FundError{Fund: fundID, Err: err}
	}
	doc, err := Decode(content)
	if err != nil {
		return Document{}, &fundsim.FundError{Fund: fundID, Err: fmt.Errorf("%s: %w", path, err)}
	}
	log.Debug().Str("fund", fundID).Str("file", path).Int("points", len(doc.Series)).Msg("fund file loaded")
	return doc, nil
}

// List returns the fund documents available in the directory, without
// their history, ordered by file name.
func (f *Files) List() ([]fundsim.Fund, error) {
	matches, err := filepath.Glob(filepath.Join(f.Dir, "*.json"))
	if err != nil {
		return nil, err
	}
	slices.Sort(matches)
	var funds []fundsim.Fund
	for _, path := range matches {
		if filepath.Base(path) == UnavailableFile {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var fund fundsim.Fund
		if err := json.Unmarshal(content, &fund); err != nil || fund.Symbol == "" {
			log.Warn().Str("file", path).Msg("not a fund file, ignored")
			continue
		}
		funds = append(funds, fund)
	}
	return funds, nil
}

var nanLiteral = regexp.MustCompile(`(:\s*)(NaN|-?Infinity)\b`)

// get returns the value at path in jobj, or nil.
func get(path string, jobj any) any {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil
	}
	return jval
}

// Decode parses a fund document.
//
// History entries with no usable "Close" or "Date" are skipped, a missing
// "Dividends" is 0. Entries are sorted by date and a duplicated date keeps
// the last entry.
func Decode(content []byte) (Document, error) {
	// pandas writes missing values as a bare NaN, which is not JSON.
	content = nanLiteral.ReplaceAll(content, []byte("${1}null"))
	var jobj any
	if err := json.Unmarshal(content, &jobj); err != nil {
		return Document{}, err
	}

	var doc Document
	doc.Fund.Name, _ = get("$.nombre", jobj).(string)
	doc.Fund.Symbol, _ = get("$.simbolo", jobj).(string)
	doc.Fund.Description, _ = get("$.descripcion", jobj).(string)

	records, ok := get("$.datos_historicos", jobj).([]any)
	if !ok {
		return Document{}, errors.New("no datos_historicos array")
	}

	byDate := make(map[date.Date]fundsim.PricePoint, len(records))
	for _, rec := range records {
		entry, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		s, _ := entry["Date"].(string)
		day, err := date.Parse(s)
		if err != nil {
			continue
		}
		closing, ok := entry["Close"].(float64)
		if !ok {
			continue
		}
		dividend, _ := entry["Dividends"].(float64)
		byDate[day] = fundsim.PricePoint{Date: day, Close: closing, Dividend: dividend}
	}

	doc.Series = make(fundsim.Series, 0, len(byDate))
	for _, p := range byDate {
		doc.Series = append(doc.Series, p)
	}
	slices.SortFunc(doc.Series, func(a, b fundsim.PricePoint) int { return a.Date.Compare(b.Date) })
	return doc, nil
}

// record is a history entry as persisted in fund files.
type record struct {
	Date      string  `json:"Date"`
	Close     float64 `json:"Close"`
	Dividends float64 `json:"Dividends"`
}

// Encode formats a fund document.
func Encode(doc Document) ([]byte, error) {
	records := make([]record, len(doc.Series))
	for i, p := range doc.Series {
		records[i] = record{Date: p.Date.String(), Close: p.Close, Dividends: p.Dividend}
	}
	return json.MarshalIndent(struct {
		Name        string   `json:"nombre"`
		Symbol      string   `json:"simbolo"`
		Description string   `json:"descripcion"`
		History     []record `json:"datos_historicos"`
	}{doc.Fund.Name, doc.Fund.Symbol, doc.Fund.Description, records}, "", "    ")
}

// Save writes the document in its fund file and returns the file path.
func (f *Files) Save(doc Document) (string, error) {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", err
	}
	content, err := Encode(doc)
	if err != nil {
		return "", err
	}
	path := filepath.Join(f.Dir, doc.Fund.FileName())
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", err
	}
	log.Info().Str("fund", doc.Fund.Symbol).Str("file", path).Int("points", len(doc.Series)).Msg("fund file saved")
	return path, nil
}

// SaveUnavailable writes the report of the funds that could not be
// downloaded. An empty list removes a previous report.
func (f *Files) SaveUnavailable(funds []fundsim.Fund) error {
	path := filepath.Join(f.Dir, UnavailableFile)
	if len(funds) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return err
	}
	content, err := json.MarshalIndent(funds, "", "    ")
	if err != nil {
		return err
	}
	names := make([]string, len(funds))
	for i, fund := range funds {
		names[i] = fund.Symbol
	}
	log.Warn().Str("file", path).Str("funds", strings.Join(names, ",")).Msg("unavailable funds reported")
	return os.WriteFile(path, content, 0o644)
}
