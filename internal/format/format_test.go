package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"songbook/internal/models"
	"songbook/internal/testutil"
)

func TestSong(t *testing.T) {
	song := testutil.NewSongBuilder().
		WithID(testutil.TestSongID1).
		WithTitle("Bohemian Rhapsody").
		WithArtist("Queen").
		WithGenre("Rock").
		WithYear(1975).
		WithDuration(355).
		Build()

	want := "\n🎵 Bohemian Rhapsody - Queen\n" +
		"   Genre: Rock | Year: 1975 | Duration: 5:55\n" +
		"   ID: " + testutil.TestSongID1 + "\n"
	assert.Equal(t, want, Song(song))
}

func TestSong_MissingOptionals(t *testing.T) {
	song := testutil.NewSongBuilder().
		WithTitle("Yesterday").
		WithArtist("The Beatles").
		Build()

	want := "\n🎵 Yesterday - The Beatles\n" +
		"   Genre: N/A | Year: N/A | Duration: N/A\n" +
		"   ID: N/A\n"
	assert.Equal(t, want, Song(song))
}

func TestSong_DurationFormatting(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{seconds: 0, want: "0:00"},
		{seconds: 59, want: "0:59"},
		{seconds: 60, want: "1:00"},
		{seconds: 355, want: "5:55"},
		{seconds: 3600, want: "60:00"},
	}

	for _, tt := range tests {
		song := testutil.NewSongBuilder().WithDuration(tt.seconds).Build()
		assert.Contains(t, Song(song), "Duration: "+tt.want, "for %d seconds", tt.seconds)
	}
}

func TestSongList(t *testing.T) {
	songs := []*models.Song{
		testutil.NewSongBuilder().WithTitle("A Kind of Magic").Build(),
		testutil.NewSongBuilder().WithTitle("Under Pressure").Build(),
	}

	out := SongList(songs, "safa")
	assert.True(t, strings.HasPrefix(out, "\n🎵 Songs for safa:"))
	assert.Contains(t, out, "A Kind of Magic")
	assert.Contains(t, out, "Under Pressure")

	out = SongList(songs, "")
	assert.True(t, strings.HasPrefix(out, "\n🎵 Songs:"))
}

func TestSongList_Empty(t *testing.T) {
	assert.Equal(t, "No songs found for safa", SongList(nil, "safa"))
	assert.Equal(t, "No songs found", SongList(nil, ""))
}

func TestSongTable(t *testing.T) {
	songs := []*models.Song{
		testutil.NewSongBuilder().
			WithTitle("Bohemian Rhapsody").
			WithArtist("Queen").
			WithGenre("Rock").
			WithYear(1975).
			WithDuration(355).
			Build(),
	}

	out := SongTable(songs)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "", lines[0])
	assert.Equal(t, "Title                          Artist                    Genre           Year   Duration", lines[1])
	assert.Equal(t, strings.Repeat("-", len(lines[1])), lines[2])
	assert.Contains(t, lines[3], "Bohemian Rhapsody")
	assert.Contains(t, lines[3], "5:55")
}

func TestSongTable_TruncatesLongValues(t *testing.T) {
	songs := []*models.Song{
		testutil.NewSongBuilder().
			WithTitle("An Unreasonably Long Song Title That Keeps Going").
			WithArtist("Short").
			Build(),
	}

	out := SongTable(songs)
	assert.Contains(t, out, "An Unreasonably Long Song T...")
	assert.NotContains(t, out, "Keeps Going")
}

func TestSongTable_Empty(t *testing.T) {
	assert.Equal(t, "No songs found", SongTable(nil))
}

func TestSearchResults(t *testing.T) {
	songs := []*models.Song{testutil.NewSongBuilder().WithTitle("Bohemian Rhapsody").Build()}

	out := SearchResults(songs, "Bohem")
	assert.True(t, strings.HasPrefix(out, "\n🔍 Search results for 'Bohem':"))
	assert.Contains(t, out, "Bohemian Rhapsody")

	assert.Equal(t, "No songs found matching 'Bohem'", SearchResults(nil, "Bohem"))
}

func TestHistoryEntry(t *testing.T) {
	ts := time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		action models.Action
		emoji  string
	}{
		{action: models.ActionAdded, emoji: "➕"},
		{action: models.ActionUpdated, emoji: "✏️"},
		{action: models.ActionDeleted, emoji: "🗑️"},
		{action: models.ActionPlayed, emoji: "▶️"},
		{action: models.ActionViewed, emoji: "👁️"},
	}

	for _, tt := range tests {
		entry := testutil.NewHistoryEntryBuilder().
			WithAction(tt.action).
			WithSong("Bohemian Rhapsody", "Queen").
			WithTimestamp(ts).
			Build()

		want := tt.emoji + " 2024-03-15 14:30:45 - " + string(tt.action) + " 'Bohemian Rhapsody' by Queen"
		assert.Equal(t, want, HistoryEntry(entry))
	}
}

func TestHistoryEntry_UnknownActionFallback(t *testing.T) {
	entry := testutil.NewHistoryEntryBuilder().Build()
	entry.Action = models.Action("archived")

	assert.True(t, strings.HasPrefix(HistoryEntry(entry), "📝 "))
}

func TestHistoryList(t *testing.T) {
	ts := time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC)
	entries := []*models.HistoryEntry{
		testutil.NewHistoryEntryBuilder().WithAction(models.ActionPlayed).WithTimestamp(ts).Build(),
		testutil.NewHistoryEntryBuilder().WithAction(models.ActionAdded).WithTimestamp(ts.Add(-time.Hour)).Build(),
	}

	out := HistoryList(entries, "safa")
	lines := strings.Split(out, "\n")
	assert.Equal(t, "", lines[0])
	assert.Equal(t, "📜 History for safa:", lines[1])
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[2], "played")
	assert.Contains(t, lines[3], "added")
}

func TestHistoryList_Empty(t *testing.T) {
	assert.Equal(t, "No history found for safa", HistoryList(nil, "safa"))
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "✅ done", Success("done"))
	assert.Equal(t, "❌ broke", Error("broke"))
	assert.Equal(t, "⚠️ careful", Warning("careful"))
	assert.Equal(t, "ℹ️ note", Info("note"))
}
