package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/docdex/docdex/internal/config"
	docerr "github.com/docdex/docdex/internal/errors"
	"github.com/docdex/docdex/internal/output"
	"github.com/docdex/docdex/internal/tasks"
)

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Track work items",
		Long: `Manage the project's work-item list: small JSON records with status,
priority, and dependencies, stored in the work directory.`,
	}

	cmd.AddCommand(
		newTasksListCmd(),
		newTasksGetCmd(),
		newTasksNextCmd(),
		newTasksCreateCmd(),
		newTasksInitCmd(),
		newTasksUpdateCmd(),
		newTasksStatsCmd(),
	)

	return cmd
}

func tasksStore(cfg *config.Config, root string) *tasks.Store {
	return tasks.NewStore(cfg.ItemsPath(root))
}

func newTasksListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work items grouped by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTasksList(cmd, status)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only show items with this status")

	return cmd
}

func runTasksList(cmd *cobra.Command, status string) error {
	out := output.New(cmd.OutOrStdout())
	root := projectRoot()
	cfg := loadConfig(root)

	if status != "" && !tasks.ValidStatus(status) {
		return docerr.ValidationError(fmt.Sprintf("unknown status: %s", status), nil)
	}

	doc, err := tasksStore(cfg, root).Load()
	if err != nil {
		return err
	}

	out.Headerf("Work Items: %s", doc.Project)
	out.Newline()

	if len(doc.WorkItems) == 0 {
		out.Status("", "No work items. Create one with 'docdex tasks create'.")
		return nil
	}

	shown := 0
	for _, group := range tasks.StatusOrder {
		if status != "" && group != status {
			continue
		}
		var inGroup []tasks.Item
		for _, it := range doc.WorkItems {
			if it.Status == group {
				inGroup = append(inGroup, it)
			}
		}
		if len(inGroup) == 0 {
			continue
		}
		out.Statusf("", "%s (%d):", strings.ToUpper(group), len(inGroup))
		for _, it := range inGroup {
			line := fmt.Sprintf("  %s [P%d] %s", it.ID, it.Priority, it.Title)
			if len(it.Dependencies) > 0 {
				line += fmt.Sprintf(" (deps: %s)", strings.Join(it.Dependencies, ", "))
			}
			out.Status("", line)
			shown++
		}
	}

	if status != "" && shown == 0 {
		out.Statusf("", "No items with status %q.", status)
	}

	return nil
}

func newTasksGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a work item in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTasksGet(cmd, args[0])
		},
	}
}

func runTasksGet(cmd *cobra.Command, id string) error {
	out := output.New(cmd.OutOrStdout())
	root := projectRoot()
	cfg := loadConfig(root)

	doc, err := tasksStore(cfg, root).Load()
	if err != nil {
		return err
	}

	item := tasks.Find(doc.WorkItems, id)
	if item == nil {
		return docerr.ValidationError(fmt.Sprintf("no work item with id %s", id), nil)
	}

	printItem(out, *item)
	return nil
}

func printItem(out *output.Writer, it tasks.Item) {
	out.Headerf("%s: %s", it.ID, it.Title)
	out.Statusf("", "Status:   %s", it.Status)
	out.Statusf("", "Priority: %d", it.Priority)
	if it.Description != "" {
		out.Statusf("", "Description: %s", it.Description)
	}
	if len(it.AcceptanceCriteria) > 0 {
		out.Status("", "Acceptance criteria:")
		for _, c := range it.AcceptanceCriteria {
			out.Statusf("", "  - %s", c)
		}
	}
	if len(it.Dependencies) > 0 {
		out.Statusf("", "Dependencies: %s", strings.Join(it.Dependencies, ", "))
	}
	if it.Notes != "" {
		out.Statusf("", "Notes: %s", it.Notes)
	}
}

func newTasksNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the next item to work on",
		Long: `Pick the next actionable work item: the first in-progress item, or
the lowest-priority pending item whose dependencies are all completed.`,
		Args: cobra.NoArgs,
		RunE: runTasksNext,
	}
}

func runTasksNext(cmd *cobra.Command, _ []string) error {
	out := output.New(cmd.OutOrStdout())
	root := projectRoot()
	cfg := loadConfig(root)

	doc, err := tasksStore(cfg, root).Load()
	if err != nil {
		return err
	}

	item := tasks.Next(doc.WorkItems)
	if item == nil {
		out.Status("", "Nothing actionable. All items are completed or blocked on dependencies.")
		return nil
	}

	printItem(out, *item)
	return nil
}

func newTasksCreateCmd() *cobra.Command {
	var description string
	var priority int
	var deps string

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new work item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTasksCreate(cmd, strings.Join(args, " "), description, priority, deps)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Item description")
	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "Priority (lower runs first, 0 = append)")
	cmd.Flags().StringVar(&deps, "deps", "", "Comma-separated dependency IDs")

	return cmd
}

func runTasksCreate(cmd *cobra.Command, title, description string, priority int, deps string) error {
	out := output.New(cmd.OutOrStdout())
	root := projectRoot()
	cfg := loadConfig(root)
	st := tasksStore(cfg, root)

	doc, err := st.Load()
	if err != nil {
		return err
	}

	depList := splitFileList(deps)
	for _, dep := range depList {
		if tasks.Find(doc.WorkItems, dep) == nil {
			return docerr.ValidationError(fmt.Sprintf("unknown dependency: %s", dep), nil)
		}
	}

	item := tasks.Create(doc, title, description, priority, depList)
	if err := st.Save(doc); err != nil {
		return err
	}

	out.Successf("Created %s: %s (priority %d)", item.ID, item.Title, item.Priority)
	return nil
}

func newTasksInitCmd() *cobra.Command {
	var branch string
	var file string

	cmd := &cobra.Command{
		Use:   "init <project>",
		Short: "Initialize the work-item list",
		Long: `Create a fresh work-item list for a project. With --file, import an
existing JSON array of items; missing fields are filled with defaults.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTasksInit(cmd, args[0], branch, file)
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "main", "Branch name to record")
	cmd.Flags().StringVar(&file, "file", "", "JSON file with an array of items to import")

	return cmd
}

func runTasksInit(cmd *cobra.Command, project, branch, file string) error {
	out := output.New(cmd.OutOrStdout())
	root := projectRoot()
	cfg := loadConfig(root)
	st := tasksStore(cfg, root)

	doc := &tasks.List{Project: project, BranchName: branch, WorkItems: []tasks.Item{}}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return docerr.IOError(fmt.Sprintf("cannot read %s", file), err)
		}
		var items []tasks.Item
		if err := json.Unmarshal(data, &items); err != nil {
			return docerr.ValidationError(fmt.Sprintf("%s is not a JSON array of items", file), err)
		}
		doc.WorkItems = tasks.Normalize(items)
	}

	if err := st.Save(doc); err != nil {
		return err
	}

	out.Successf("Initialized %s with %d items", project, len(doc.WorkItems))
	return nil
}

func newTasksUpdateCmd() *cobra.Command {
	var status, notes, title, addCriteria, deps string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upd := tasks.Update{}
			if cmd.Flags().Changed("status") {
				upd.Status = &status
			}
			if cmd.Flags().Changed("notes") {
				upd.Notes = &notes
			}
			if cmd.Flags().Changed("title") {
				upd.Title = &title
			}
			if cmd.Flags().Changed("add-criteria") {
				upd.AddCriteria = &addCriteria
			}
			if cmd.Flags().Changed("deps") {
				upd.Deps = splitFileList(deps)
			}
			return runTasksUpdate(cmd, args[0], upd)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New status (pending|in_progress|completed|blocked)")
	cmd.Flags().StringVar(&notes, "notes", "", "Replace the notes field")
	cmd.Flags().StringVar(&title, "title", "", "Replace the title")
	cmd.Flags().StringVar(&addCriteria, "add-criteria", "", "Append an acceptance criterion")
	cmd.Flags().StringVar(&deps, "deps", "", "Replace dependencies (comma-separated IDs)")

	return cmd
}

func runTasksUpdate(cmd *cobra.Command, id string, upd tasks.Update) error {
	out := output.New(cmd.OutOrStdout())
	root := projectRoot()
	cfg := loadConfig(root)
	st := tasksStore(cfg, root)

	if upd.Status != nil && !tasks.ValidStatus(*upd.Status) {
		return docerr.ValidationError(fmt.Sprintf("unknown status: %s", *upd.Status), nil)
	}

	doc, err := st.Load()
	if err != nil {
		return err
	}

	item := tasks.Find(doc.WorkItems, id)
	if item == nil {
		return docerr.ValidationError(fmt.Sprintf("no work item with id %s", id), nil)
	}

	for _, dep := range upd.Deps {
		if dep == id {
			return docerr.ValidationError("an item cannot depend on itself", nil)
		}
		if tasks.Find(doc.WorkItems, dep) == nil {
			return docerr.ValidationError(fmt.Sprintf("unknown dependency: %s", dep), nil)
		}
	}

	changed := upd.Apply(item, time.Now())
	if len(changed) == 0 {
		out.Status("", "Nothing to update.")
		return nil
	}

	if err := st.Save(doc); err != nil {
		return err
	}

	out.Successf("Updated %s: %s", id, strings.Join(changed, "; "))
	return nil
}

func newTasksStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show work-item counts by status",
		Args:  cobra.NoArgs,
		RunE:  runTasksStats,
	}
}

func runTasksStats(cmd *cobra.Command, _ []string) error {
	out := output.New(cmd.OutOrStdout())
	root := projectRoot()
	cfg := loadConfig(root)

	doc, err := tasksStore(cfg, root).Load()
	if err != nil {
		return err
	}

	st := tasks.ComputeStats(doc.WorkItems)

	out.Headerf("Work Items: %s", doc.Project)
	out.Newline()
	out.Statusf("", "Total:      %d", st.Total)
	for _, status := range tasks.StatusOrder {
		if n := st.ByStatus[status]; n > 0 {
			out.Statusf("", "%-11s %d", status+":", n)
		}
	}
	out.Statusf("", "Actionable: %d", st.Actionable)

	if st.Total > 0 {
		done := st.ByStatus[tasks.StatusCompleted]
		out.Newline()
		out.Progress(done, st.Total, "complete")
	}

	return nil
}
