// Package tasks implements the work-item subsystem: simple record storage
// over a JSON file with status, priority, and dependency fields.
package tasks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	docerr "github.com/docdex/docdex/internal/errors"
)

// Work item statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusBlocked    = "blocked"
)

// StatusOrder is the display grouping order for listings.
var StatusOrder = []string{StatusInProgress, StatusPending, StatusBlocked, StatusCompleted}

// ValidStatus reports whether s is a known work-item status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	}
	return false
}

// Item is one work item. Field names match the items.json schema.
type Item struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	AcceptanceCriteria []string `json:"acceptanceCriteria"`
	Priority           int      `json:"priority"`
	Status             string   `json:"status"`
	Dependencies       []string `json:"dependencies"`
	Notes              string   `json:"notes"`
}

// List is the items.json document.
type List struct {
	Project    string `json:"project"`
	BranchName string `json:"branchName"`
	WorkItems  []Item `json:"workItems"`
}

// Store reads and writes the work-item file.
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore creates a Store for the given items.json path.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Load reads the item list. A missing file yields an empty list; a legacy
// bare-array file is wrapped into the document form.
func (s *Store) Load() (*List, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &List{Project: "docdex", BranchName: "main"}, nil
	}
	if err != nil {
		return nil, docerr.StoreError("failed to read work items", err)
	}

	var doc List
	if err := json.Unmarshal(data, &doc); err == nil && doc.WorkItems != nil {
		return &doc, nil
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err == nil {
		return &List{Project: "unknown", BranchName: "main", WorkItems: items}, nil
	}

	return nil, docerr.StoreError("work items file is not valid JSON", nil)
}

// Save writes the item list under a file lock.
func (s *Store) Save(doc *List) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return docerr.StoreError("failed to create work directory", err)
	}

	if err := s.lock.Lock(); err != nil {
		return docerr.StoreError("failed to acquire items lock", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return docerr.StoreError("failed to encode work items", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return docerr.StoreError("failed to write work items", err)
	}
	return nil
}

// NextID generates the next sequential work item ID (WI-001, WI-002, ...).
func NextID(items []Item) string {
	maxNum := 0
	for _, it := range items {
		parts := strings.SplitN(it.ID, "-", 2)
		if len(parts) != 2 {
			continue
		}
		if n, err := strconv.Atoi(parts[1]); err == nil && n > maxNum {
			maxNum = n
		}
	}
	return fmt.Sprintf("WI-%03d", maxNum+1)
}

// Find returns the item with the given ID, or nil.
func Find(items []Item, id string) *Item {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

// IsActionable reports whether an item can be worked on: it is pending and
// every dependency is completed.
func IsActionable(item Item, all []Item) bool {
	if item.Status != StatusPending {
		return false
	}
	if len(item.Dependencies) == 0 {
		return true
	}
	completed := make(map[string]struct{})
	for _, it := range all {
		if it.Status == StatusCompleted {
			completed[it.ID] = struct{}{}
		}
	}
	for _, dep := range item.Dependencies {
		if _, ok := completed[dep]; !ok {
			return false
		}
	}
	return true
}

// Next picks the item to work on: the first in-progress item if any,
// otherwise the lowest-priority actionable pending item. Returns nil when
// nothing is actionable.
func Next(items []Item) *Item {
	for i := range items {
		if items[i].Status == StatusInProgress {
			return &items[i]
		}
	}

	var actionable []*Item
	for i := range items {
		if IsActionable(items[i], items) {
			actionable = append(actionable, &items[i])
		}
	}
	if len(actionable) == 0 {
		return nil
	}
	sort.SliceStable(actionable, func(i, j int) bool {
		return actionable[i].Priority < actionable[j].Priority
	})
	return actionable[0]
}

// Create appends a new pending item and returns it.
// A zero priority places the item after the current maximum.
func Create(doc *List, title, description string, priority int, deps []string) *Item {
	if priority == 0 {
		for _, it := range doc.WorkItems {
			if it.Priority >= priority {
				priority = it.Priority + 1
			}
		}
		if priority == 0 {
			priority = 1
		}
	}

	item := Item{
		ID:                 NextID(doc.WorkItems),
		Title:              title,
		Description:        description,
		AcceptanceCriteria: []string{},
		Priority:           priority,
		Status:             StatusPending,
		Dependencies:       deps,
	}
	if item.Dependencies == nil {
		item.Dependencies = []string{}
	}
	doc.WorkItems = append(doc.WorkItems, item)
	return &doc.WorkItems[len(doc.WorkItems)-1]
}

// Normalize fills defaults on imported items so an externally produced array
// becomes a valid work-item list.
func Normalize(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		if it.ID == "" {
			it.ID = fmt.Sprintf("WI-%03d", i+1)
		}
		if it.Title == "" {
			it.Title = "Untitled"
		}
		if it.Priority == 0 {
			it.Priority = i + 1
		}
		if it.Status == "" {
			it.Status = StatusPending
		}
		if it.AcceptanceCriteria == nil {
			it.AcceptanceCriteria = []string{}
		}
		if it.Dependencies == nil {
			it.Dependencies = []string{}
		}
		out[i] = it
	}
	return out
}

// Update describes a partial item update. Nil fields are left untouched.
type Update struct {
	Status      *string
	Notes       *string
	Title       *string
	AddCriteria *string
	Deps        []string
}

// Apply applies the update to item, returning human-readable change notes.
// Completing an item appends a timestamped note.
func (u Update) Apply(item *Item, now time.Time) []string {
	var changed []string

	if u.Status != nil {
		old := item.Status
		item.Status = *u.Status
		changed = append(changed, fmt.Sprintf("status: %s -> %s", old, *u.Status))

		if *u.Status == StatusCompleted {
			stamp := fmt.Sprintf("Completed %s", now.Format("2006-01-02 15:04"))
			item.Notes = strings.TrimSpace(item.Notes + "\n" + stamp)
		}
	}
	if u.Notes != nil {
		item.Notes = *u.Notes
		changed = append(changed, "notes updated")
	}
	if u.Title != nil {
		item.Title = *u.Title
		changed = append(changed, fmt.Sprintf("title: %s", *u.Title))
	}
	if u.AddCriteria != nil {
		item.AcceptanceCriteria = append(item.AcceptanceCriteria, *u.AddCriteria)
		changed = append(changed, "added criterion")
	}
	if u.Deps != nil {
		item.Dependencies = u.Deps
		changed = append(changed, fmt.Sprintf("dependencies: %v", u.Deps))
	}

	return changed
}

// Stats summarizes completion state.
type Stats struct {
	Total      int
	ByStatus   map[string]int
	Actionable int
}

// ComputeStats tallies items by status and counts the currently actionable.
func ComputeStats(items []Item) Stats {
	st := Stats{
		Total:    len(items),
		ByStatus: map[string]int{},
	}
	for _, it := range items {
		st.ByStatus[it.Status]++
	}
	for _, it := range items {
		if IsActionable(it, items) {
			st.Actionable++
		}
	}
	return st
}
