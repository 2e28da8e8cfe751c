// Package format renders songs, history, and status messages for the CLI.
// All functions return strings; callers decide where they go.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"songbook/internal/models"
)

const timestampLayout = "2006-01-02 15:04:05"

var actionEmoji = map[models.Action]string{
	models.ActionAdded:   "➕",
	models.ActionUpdated: "✏️",
	models.ActionDeleted: "🗑️",
	models.ActionPlayed:  "▶️",
	models.ActionViewed:  "👁️",
}

// Song renders a single song as a multi-line card.
func Song(song *models.Song) string {
	id := "N/A"
	if !song.ID.IsZero() {
		id = song.ID.Hex()
	}
	title := song.Title
	if title == "" {
		title = "Unknown"
	}
	artist := song.Artist
	if artist == "" {
		artist = "Unknown"
	}

	return fmt.Sprintf("\n🎵 %s - %s\n   Genre: %s | Year: %s | Duration: %s\n   ID: %s\n",
		title, artist, stringOrNA(song.Genre), intOrNA(song.Year), durationString(song.Duration), id)
}

// SongList renders songs as a headed sequence of cards. Username only labels
// the output; filtering happens upstream.
func SongList(songs []*models.Song, username string) string {
	if len(songs) == 0 {
		if username != "" {
			return fmt.Sprintf("No songs found for %s", username)
		}
		return "No songs found"
	}

	var b strings.Builder
	if username != "" {
		fmt.Fprintf(&b, "\n🎵 Songs for %s:", username)
	} else {
		b.WriteString("\n🎵 Songs:")
	}
	for _, song := range songs {
		b.WriteString(Song(song))
	}
	return b.String()
}

// SongTable renders songs as a fixed-width table, one row per song.
func SongTable(songs []*models.Song) string {
	if len(songs) == 0 {
		return "No songs found"
	}

	header := fmt.Sprintf("%-30s %-25s %-15s %-6s %-8s", "Title", "Artist", "Genre", "Year", "Duration")
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(header)))
	for _, song := range songs {
		genre := "N/A"
		if song.Genre != nil && *song.Genre != "" {
			genre = truncate(*song.Genre, 15)
		}
		fmt.Fprintf(&b, "\n%-30s %-25s %-15s %-6s %-8s",
			truncate(song.Title, 30), truncate(song.Artist, 25), genre,
			intOrNA(song.Year), durationString(song.Duration))
	}
	return b.String()
}

// SearchResults renders a headed list of matches for the given term.
func SearchResults(songs []*models.Song, term string) string {
	if len(songs) == 0 {
		return fmt.Sprintf("No songs found matching '%s'", term)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n🔍 Search results for '%s':", term)
	for _, song := range songs {
		b.WriteString(Song(song))
	}
	return b.String()
}

// HistoryEntry renders one audit line with an emoji for the action.
func HistoryEntry(entry *models.HistoryEntry) string {
	emoji, ok := actionEmoji[entry.Action]
	if !ok {
		emoji = "📝"
	}
	return fmt.Sprintf("%s %s - %s '%s' by %s",
		emoji, entry.Timestamp.Format(timestampLayout), entry.Action, entry.SongTitle, entry.SongArtist)
}

// HistoryList renders the user's audit trail, one entry per line.
func HistoryList(entries []*models.HistoryEntry, username string) string {
	if len(entries) == 0 {
		return fmt.Sprintf("No history found for %s", username)
	}

	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, fmt.Sprintf("\n📜 History for %s:", username))
	for _, entry := range entries {
		lines = append(lines, HistoryEntry(entry))
	}
	return strings.Join(lines, "\n")
}

// Success formats a success message.
func Success(message string) string {
	return "✅ " + message
}

// Error formats an error message.
func Error(message string) string {
	return "❌ " + message
}

// Warning formats a warning message.
func Warning(message string) string {
	return "⚠️ " + message
}

// Info formats an informational message.
func Info(message string) string {
	return "ℹ️ " + message
}

func stringOrNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func intOrNA(n *int) string {
	if n == nil {
		return "N/A"
	}
	return strconv.Itoa(*n)
}

func durationString(seconds *int) string {
	if seconds == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d:%02d", *seconds/60, *seconds%60)
}

// truncate clips s to max display characters, ending in "..." when clipped.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
