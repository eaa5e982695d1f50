// Package localdata serves the static game dataset shipped with the service.
// The dataset is a CSV with title, console, genre, developer, publisher and a
// day-month-year release date, loaded once at startup and queried in memory.
package localdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vgwingman/wingman/internal/model"
	"github.com/vgwingman/wingman/internal/provider"
)

// Row is one raw dataset entry as it appears in the CSV.
type Row struct {
	Title       string
	Console     string
	Genre       string
	Developer   string
	Publisher   string
	ReleaseDate string // DD-MM-YYYY
}

// Dataset is an in-memory table keyed by normalized title.
type Dataset struct {
	rows    []Row
	byTitle map[string]int
}

// Load reads the CSV at path. The first row is the header; column order is
// resolved by header name so the file layout can vary.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if len(records) == 0 {
		return New(nil), nil
	}

	col := map[string]int{}
	for i, name := range records[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, Row{
			Title:       field(rec, "title"),
			Console:     field(rec, "console"),
			Genre:       field(rec, "genre"),
			Developer:   field(rec, "developer"),
			Publisher:   field(rec, "publisher"),
			ReleaseDate: field(rec, "release_date"),
		})
	}
	return New(rows), nil
}

// New builds a dataset from already-parsed rows. Used by tests and Load.
func New(rows []Row) *Dataset {
	d := &Dataset{rows: rows, byTitle: make(map[string]int, len(rows))}
	for i, row := range rows {
		d.byTitle[provider.Normalize(row.Title)] = i
	}
	return d
}

// Lookup performs an exact case-insensitive title match.
func (d *Dataset) Lookup(title string) (Row, bool) {
	i, ok := d.byTitle[provider.Normalize(title)]
	if !ok {
		return Row{}, false
	}
	return d.rows[i], true
}

// Record converts a row into the provider-agnostic GameRecord shape.
func (r Row) Record() model.GameRecord {
	rec := model.GameRecord{
		Title:  r.Title,
		Source: model.SourceLocal,
	}
	if r.Genre != "" {
		rec.Genres = []string{r.Genre}
	}
	if r.Console != "" {
		rec.Platforms = []string{r.Console}
	}
	if r.Developer != "" {
		rec.Developers = []string{r.Developer}
	}
	if r.Publisher != "" {
		rec.Publishers = []string{r.Publisher}
	}
	if t, err := time.Parse("02-01-2006", r.ReleaseDate); err == nil {
		rec.ReleaseDate = &t
	}
	return rec
}

// Describe renders the fixed local-dataset sentence. The stored date is
// day-month-year; output is month/day/year.
func (r Row) Describe() string {
	return fmt.Sprintf("%s was released on %s for %s. It is a %s game developed by %s and published by %s.",
		r.Title, FormatReleaseDate(r.ReleaseDate), r.Console, r.Genre, r.Developer, r.Publisher)
}

// FormatReleaseDate reorders a DD-MM-YYYY date string as MM/DD/YYYY.
// Inputs that don't split into three parts pass through unchanged.
func FormatReleaseDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[1] + "/" + parts[0] + "/" + parts[2]
}

// Titles returns every title in dataset order.
func (d *Dataset) Titles() []string {
	out := make([]string, 0, len(d.rows))
	for _, r := range d.rows {
		out = append(out, r.Title)
	}
	return out
}
