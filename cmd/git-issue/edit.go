package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"git-issue.sh/core/internal/domain"
	"git-issue.sh/core/internal/issuestore"
)

// editableIssue is the subset of an issue's fields the YAML form exposes
// for editing. Assignee is the single primary assignee, as the edit form
// predates the list-valued assignees mutation and still edits one at a
// time; use `assign`/`unassign` directly for the multi-assignee case.
type editableIssue struct {
	Title       string   `yaml:"title"`
	Status      string   `yaml:"status"`
	Priority    string   `yaml:"priority"`
	Labels      []string `yaml:"labels"`
	Assignee    *string  `yaml:"assignee"`
	Description string   `yaml:"description"`
}

func editCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "edit an issue's mutable fields in $EDITOR as YAML",
		ArgsUsage: "<id>",
		Flags:     authorFlags(),
		Action:    runEdit,
	}
}

func runEdit(ctx context.Context, cmd *cli.Command) error {
	id, err := issueIDArg(cmd, 0)
	if err != nil {
		return err
	}

	repo, store, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	author := resolveAuthor(repo, cmd)

	issue, err := store.GetIssue(id)
	if err != nil {
		return err
	}

	before := toEditable(issue)
	after, err := editInEditor(before, configFromCmd(cmd).CLI.Editor)
	if err != nil {
		return err
	}
	if err := validateEditable(after); err != nil {
		return err
	}

	changes, err := applyEdits(store, id, issue, after, author)
	if err != nil {
		return err
	}

	p := printer(cmd)
	if len(changes) == 0 {
		fmt.Println(p.Success(fmt.Sprintf("issue #%d unchanged", id)))
		return nil
	}
	for _, c := range changes {
		fmt.Println(p.Success(c))
	}
	return nil
}

func toEditable(issue domain.Issue) editableIssue {
	var assignee *string
	if a, ok := issue.PrimaryAssignee(); ok {
		email := a.Email
		assignee = &email
	}
	labels := append([]string(nil), issue.Labels...)
	sort.Strings(labels)
	return editableIssue{
		Title:       issue.Title,
		Status:      issue.Status.String(),
		Priority:    issue.Priority.String(),
		Labels:      labels,
		Assignee:    assignee,
		Description: issue.Description,
	}
}

func editInEditor(issue editableIssue, configuredEditor string) (editableIssue, error) {
	data, err := yaml.Marshal(issue)
	if err != nil {
		return editableIssue{}, err
	}
	header := "# Edit the fields below. Save and close to apply changes.\n" +
		"# Leave fields unchanged to keep current values.\n" +
		"# Set assignee to null to unassign.\n\n"

	f, err := os.CreateTemp("", "git-issue-edit-*.yaml")
	if err != nil {
		return editableIssue{}, err
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(header + string(data)); err != nil {
		f.Close()
		return editableIssue{}, err
	}
	if err := f.Close(); err != nil {
		return editableIssue{}, err
	}

	editor := configuredEditor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}
	c := exec.Command(editor, f.Name())
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := c.Run(); err != nil {
		return editableIssue{}, fmt.Errorf("running editor: %w", err)
	}

	edited, err := os.ReadFile(f.Name())
	if err != nil {
		return editableIssue{}, err
	}

	var result editableIssue
	if err := yaml.Unmarshal(edited, &result); err != nil {
		return editableIssue{}, fmt.Errorf("parsing edited YAML: %w", err)
	}
	return result, nil
}

func validateEditable(e editableIssue) error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
	}
	if _, err := domain.ParseStatus(e.Status); err != nil {
		return err
	}
	if _, err := domain.ParsePriority(e.Priority); err != nil {
		return err
	}
	for _, l := range e.Labels {
		trimmed := strings.TrimSpace(l)
		if trimmed != l || trimmed == "" || strings.ContainsAny(trimmed, " \t") {
			return fmt.Errorf("%w: label %q is empty or contains whitespace", domain.ErrValidation, l)
		}
	}
	if e.Assignee != nil && !strings.Contains(*e.Assignee, "@") {
		return fmt.Errorf("%w: invalid assignee email %q", domain.ErrValidation, *e.Assignee)
	}
	return nil
}

// applyEdits diffs edited against original and issues exactly the
// mutations needed to reach the new state, matching the same
// no-op-on-unchanged-value behavior as the individual CLI verbs.
func applyEdits(store *issuestore.Store, id uint64, original domain.Issue, edited editableIssue, author domain.Identity) ([]string, error) {
	var changes []string
	ts := now()

	newTitle := strings.TrimSpace(edited.Title)
	if original.Title != newTitle {
		if err := store.UpdateTitle(id, newTitle, author, ts); err != nil {
			return nil, err
		}
		changes = append(changes, fmt.Sprintf("title: %q -> %q", original.Title, newTitle))
	}

	if original.Description != edited.Description {
		if err := store.UpdateDescription(id, edited.Description, author, ts); err != nil {
			return nil, err
		}
		changes = append(changes, "description updated")
	}

	newStatus, _ := domain.ParseStatus(edited.Status)
	if original.Status != newStatus {
		if err := store.UpdateStatus(id, newStatus, author, ts); err != nil {
			return nil, err
		}
		changes = append(changes, fmt.Sprintf("status: %s -> %s", original.Status, newStatus))
	}

	newPriority, _ := domain.ParsePriority(edited.Priority)
	if original.Priority != newPriority {
		if err := store.UpdatePriority(id, newPriority, author, ts); err != nil {
			return nil, err
		}
		changes = append(changes, fmt.Sprintf("priority: %s -> %s", original.Priority, newPriority))
	}

	newAssignees := original.Assignees
	primary, hasPrimary := original.PrimaryAssignee()
	switch {
	case edited.Assignee == nil:
		newAssignees = nil
	case !hasPrimary || primary.Email != *edited.Assignee:
		newAssignees = []domain.Identity{domain.NewIdentity("", *edited.Assignee)}
	}
	if !domain.IdentitiesEqual(original.Assignees, newAssignees) {
		if err := store.UpdateAssignees(id, newAssignees, author, ts); err != nil {
			return nil, err
		}
		changes = append(changes, "assignee updated")
	}

	originalLabels := map[string]bool{}
	for _, l := range original.Labels {
		originalLabels[l] = true
	}
	newLabels := map[string]bool{}
	for _, l := range edited.Labels {
		newLabels[l] = true
	}
	for _, l := range edited.Labels {
		if !originalLabels[l] {
			if err := store.AddLabel(id, l, author, ts); err != nil {
				return nil, err
			}
			changes = append(changes, "label added: "+l)
		}
	}
	for _, l := range original.Labels {
		if !newLabels[l] {
			if err := store.RemoveLabel(id, l, author, ts); err != nil {
				return nil, err
			}
			changes = append(changes, "label removed: "+l)
		}
	}

	return changes, nil
}
