package localdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadResolvesColumnsByHeader(t *testing.T) {
	// Columns deliberately out of the usual order.
	path := writeCSV(t, "release_date,title,publisher,console,genre,developer\n"+
		"31-01-1997,Final Fantasy VII,Sony,PlayStation,RPG,Square\n")

	d, err := Load(path)
	require.NoError(t, err)

	row, ok := d.Lookup("final fantasy vii")
	require.True(t, ok)
	assert.Equal(t, "Final Fantasy VII", row.Title)
	assert.Equal(t, "PlayStation", row.Console)
	assert.Equal(t, "31-01-1997", row.ReleaseDate)
}

func TestLookupMiss(t *testing.T) {
	d := New([]Row{{Title: "Chrono Trigger"}})
	_, ok := d.Lookup("Chrono Cross")
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	row := Row{
		Title:       "Final Fantasy VII",
		Console:     "PlayStation",
		Genre:       "RPG",
		Developer:   "Square",
		Publisher:   "Sony",
		ReleaseDate: "31-01-1997",
	}
	assert.Equal(t,
		"Final Fantasy VII was released on 01/31/1997 for PlayStation. It is a RPG game developed by Square and published by Sony.",
		row.Describe())
}

func TestFormatReleaseDate(t *testing.T) {
	assert.Equal(t, "01/31/1997", FormatReleaseDate("31-01-1997"))
	// Anything that doesn't split into three parts passes through.
	assert.Equal(t, "1997", FormatReleaseDate("1997"))
}

func TestRowRecord(t *testing.T) {
	row := Row{Title: "Chrono Trigger", Console: "SNES", Genre: "RPG", ReleaseDate: "11-03-1995"}
	rec := row.Record()
	assert.Equal(t, "local", rec.Source)
	assert.Equal(t, []string{"SNES"}, rec.Platforms)
	require.NotNil(t, rec.ReleaseDate)
	assert.Equal(t, "3/11/1995", rec.ReleaseDate.Format("1/2/2006"))
	assert.Empty(t, rec.Developers)
}

func TestTitles(t *testing.T) {
	d := New([]Row{{Title: "A"}, {Title: "B"}})
	assert.Equal(t, []string{"A", "B"}, d.Titles())
}
