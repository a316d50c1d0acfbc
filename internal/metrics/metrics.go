// Package metrics reads and formats pre-computed context-window usage
// records. Display only; nothing here writes metrics.
package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/docdex/docdex/internal/output"
)

// Entry is one session's recorded context usage.
type Entry struct {
	Model               string  `json:"model"`
	Timestamp           string  `json:"timestamp"`
	UsedPercentage      float64 `json:"used_percentage"`
	RemainingPercentage float64 `json:"remaining_percentage"`
	ContextWindowSize   int64   `json:"context_window_size"`
	TotalInputTokens    int64   `json:"total_input_tokens"`
	TotalOutputTokens   int64   `json:"total_output_tokens"`
}

// Load reads the metrics file (session id -> entry).
// Returns (nil, false) when the file does not exist yet.
func Load(path string) (map[string]Entry, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read metrics file: %w", err)
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false, fmt.Errorf("failed to parse metrics file: %w", err)
	}
	return entries, true, nil
}

// Show prints metrics for one session, or for all sessions most recent
// first when sessionID is empty.
func Show(out *output.Writer, entries map[string]Entry, sessionID string) {
	if sessionID != "" {
		entry, ok := entries[sessionID]
		if !ok {
			out.Statusf("", "No metrics for session %s", sessionID)
			return
		}
		printEntry(out, sessionID, entry)
		return
	}

	type record struct {
		id    string
		entry Entry
	}
	sorted := make([]record, 0, len(entries))
	for id, e := range entries {
		sorted = append(sorted, record{id: id, entry: e})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].entry.Timestamp > sorted[j].entry.Timestamp
	})

	for _, r := range sorted {
		printEntry(out, r.id, r.entry)
		out.Newline()
	}
}

func printEntry(out *output.Writer, sessionID string, e Entry) {
	usedTokens := int64(float64(e.ContextWindowSize) * e.UsedPercentage / 100)

	out.Labelf("Session:", "%s", sessionID)
	out.Labelf("Model:", "%s", orUnknown(e.Model))
	out.Labelf("Used:", "%.1f%% (%d / %d tokens)", e.UsedPercentage, usedTokens, e.ContextWindowSize)
	out.Labelf("Remaining:", "%.1f%%", e.RemainingPercentage)
	out.Labelf("Totals:", "%d in / %d out", e.TotalInputTokens, e.TotalOutputTokens)
	out.Labelf("Updated:", "%s", e.Timestamp)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
