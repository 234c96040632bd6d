package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"git-issue.sh/core/internal/domain"
)

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "change an issue's status",
		ArgsUsage: "<id> <todo|in-progress|done>",
		Flags:     authorFlags(),
		Action: withIDAnd1Arg("status", func(ctx context.Context, cmd *cli.Command, id uint64, raw string) error {
			to, err := domain.ParseStatus(raw)
			if err != nil {
				return err
			}
			repo, store, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			author := resolveAuthor(repo, cmd)
			if err := store.UpdateStatus(id, to, author, now()); err != nil {
				return err
			}
			fmt.Println(printer(cmd).Success(fmt.Sprintf("issue #%d status set to %s", id, to)))
			return nil
		}),
	}
}

func commentCommand() *cli.Command {
	return &cli.Command{
		Name:      "comment",
		Usage:     "add a comment to an issue",
		ArgsUsage: "<id> <text>",
		Flags:     authorFlags(),
		Action: withIDAnd1Arg("comment text", func(ctx context.Context, cmd *cli.Command, id uint64, text string) error {
			repo, store, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			author := resolveAuthor(repo, cmd)
			if err := store.AddComment(id, text, author, now()); err != nil {
				return err
			}
			fmt.Println(printer(cmd).Success(fmt.Sprintf("commented on issue #%d", id)))
			return nil
		}),
	}
}

func labelCommand() *cli.Command {
	return &cli.Command{
		Name:  "label",
		Usage: "add or remove a label",
		Commands: []*cli.Command{
			{
				Name:      "add",
				ArgsUsage: "<id> <label>",
				Flags:     authorFlags(),
				Action: withIDAnd1Arg("label", func(ctx context.Context, cmd *cli.Command, id uint64, label string) error {
					repo, store, err := openStore(ctx, cmd)
					if err != nil {
						return err
					}
					author := resolveAuthor(repo, cmd)
					if err := store.AddLabel(id, label, author, now()); err != nil {
						return err
					}
					fmt.Println(printer(cmd).Success(fmt.Sprintf("added label %q to issue #%d", label, id)))
					return nil
				}),
			},
			{
				Name:      "remove",
				ArgsUsage: "<id> <label>",
				Flags:     authorFlags(),
				Action: withIDAnd1Arg("label", func(ctx context.Context, cmd *cli.Command, id uint64, label string) error {
					repo, store, err := openStore(ctx, cmd)
					if err != nil {
						return err
					}
					author := resolveAuthor(repo, cmd)
					if err := store.RemoveLabel(id, label, author, now()); err != nil {
						return err
					}
					fmt.Println(printer(cmd).Success(fmt.Sprintf("removed label %q from issue #%d", label, id)))
					return nil
				}),
			},
		},
	}
}

func titleCommand() *cli.Command {
	return &cli.Command{
		Name:      "title",
		Usage:     "change an issue's title",
		ArgsUsage: "<id> <text>",
		Flags:     authorFlags(),
		Action: withIDAnd1Arg("title", func(ctx context.Context, cmd *cli.Command, id uint64, text string) error {
			repo, store, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			author := resolveAuthor(repo, cmd)
			if err := store.UpdateTitle(id, text, author, now()); err != nil {
				return err
			}
			fmt.Println(printer(cmd).Success(fmt.Sprintf("updated issue #%d title", id)))
			return nil
		}),
	}
}

func describeCommand() *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Usage:     "change an issue's description",
		ArgsUsage: "<id> <text>",
		Flags:     authorFlags(),
		Action: withIDAnd1Arg("description", func(ctx context.Context, cmd *cli.Command, id uint64, text string) error {
			repo, store, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			author := resolveAuthor(repo, cmd)
			if err := store.UpdateDescription(id, text, author, now()); err != nil {
				return err
			}
			fmt.Println(printer(cmd).Success(fmt.Sprintf("updated issue #%d description", id)))
			return nil
		}),
	}
}

func assignCommand() *cli.Command {
	return &cli.Command{
		Name:      "assign",
		Usage:     "add one or more emails to an issue's assignees",
		ArgsUsage: "<id> [emails...]",
		Flags:     authorFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := issueIDArg(cmd, 0)
			if err != nil {
				return err
			}
			emails := cmd.Args().Slice()[1:]

			repo, store, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			author := resolveAuthor(repo, cmd)

			issue, err := store.GetIssue(id)
			if err != nil {
				return err
			}

			// Assigning with no emails given defaults to self-assignment.
			if len(emails) == 0 {
				emails = []string{author.Email}
			}

			current := make(map[string]bool, len(issue.Assignees))
			for _, a := range issue.Assignees {
				current[a.Email] = true
			}

			p := printer(cmd)
			newAssignees := append([]domain.Identity(nil), issue.Assignees...)
			var added []string
			for _, email := range emails {
				if !strings.Contains(email, "@") {
					return fmt.Errorf("%w: invalid assignee email %q", domain.ErrValidation, email)
				}
				if current[email] {
					fmt.Println(p.Warning(fmt.Sprintf("%s is already assigned to issue #%d", email, id)))
					continue
				}
				newAssignees = append(newAssignees, domain.NewIdentity("", email))
				current[email] = true
				added = append(added, email)
			}

			if len(added) == 0 {
				return nil
			}
			if err := store.UpdateAssignees(id, newAssignees, author, now()); err != nil {
				return err
			}

			switch {
			case len(added) == 1 && len(cmd.Args().Slice()) <= 1 && added[0] == author.Email:
				fmt.Println(p.Success(fmt.Sprintf("assigned yourself to issue #%d", id)))
			case len(added) == 1:
				fmt.Println(p.Success(fmt.Sprintf("assigned %s to issue #%d", added[0], id)))
			default:
				fmt.Println(p.Success(fmt.Sprintf("assigned %d users to issue #%d: %s", len(added), id, strings.Join(added, ", "))))
			}
			return nil
		},
	}
}

func unassignCommand() *cli.Command {
	return &cli.Command{
		Name:      "unassign",
		Usage:     "remove the given assignees from an issue, or all of them if none given",
		ArgsUsage: "<id> [emails...]",
		Flags:     authorFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := issueIDArg(cmd, 0)
			if err != nil {
				return err
			}
			toRemove := cmd.Args().Slice()[1:]

			repo, store, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			issue, err := store.GetIssue(id)
			if err != nil {
				return err
			}

			var remaining []domain.Identity
			if len(toRemove) == 0 {
				remaining = nil
			} else {
				removeSet := make(map[string]bool, len(toRemove))
				for _, email := range toRemove {
					removeSet[email] = true
				}
				for _, a := range issue.Assignees {
					if !removeSet[a.Email] {
						remaining = append(remaining, a)
					}
				}
			}

			author := resolveAuthor(repo, cmd)
			if err := store.UpdateAssignees(id, remaining, author, now()); err != nil {
				return err
			}
			fmt.Println(printer(cmd).Success(fmt.Sprintf("unassigned issue #%d", id)))
			return nil
		},
	}
}

func priorityCommand() *cli.Command {
	return &cli.Command{
		Name:      "priority",
		Usage:     "change an issue's priority",
		ArgsUsage: "<id> <none|urgent|high|medium|low>",
		Flags:     authorFlags(),
		Action: withIDAnd1Arg("priority", func(ctx context.Context, cmd *cli.Command, id uint64, raw string) error {
			to, err := domain.ParsePriority(raw)
			if err != nil {
				return err
			}
			repo, store, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			author := resolveAuthor(repo, cmd)
			if err := store.UpdatePriority(id, to, author, now()); err != nil {
				return err
			}
			fmt.Println(printer(cmd).Success(fmt.Sprintf("issue #%d priority set to %s", id, to)))
			return nil
		}),
	}
}

func recreateByCommand() *cli.Command {
	return &cli.Command{
		Name:      "recreate-by",
		Usage:     "correct the recorded creator of an issue",
		ArgsUsage: "<id> <name> <email>",
		Flags:     authorFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := issueIDArg(cmd, 0)
			if err != nil {
				return err
			}
			name := cmd.Args().Get(1)
			email := cmd.Args().Get(2)
			if name == "" || email == "" {
				return fmt.Errorf("recreate-by requires a name and an email")
			}

			repo, store, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			author := resolveAuthor(repo, cmd)
			newCreatedBy := domain.NewIdentity(name, email)
			if err := store.UpdateCreatedBy(id, newCreatedBy, author, now()); err != nil {
				return err
			}
			fmt.Println(printer(cmd).Success(fmt.Sprintf("issue #%d creator set to %s", id, newCreatedBy)))
			return nil
		},
	}
}

// withIDAnd1Arg wraps a handler that needs an issue id and exactly one more
// positional string argument, factoring out the argument-count check these
// single-field mutation verbs all share.
func withIDAnd1Arg(argName string, fn func(ctx context.Context, cmd *cli.Command, id uint64, arg string) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		id, err := issueIDArg(cmd, 0)
		if err != nil {
			return err
		}
		arg := cmd.Args().Get(1)
		if arg == "" {
			return fmt.Errorf("missing %s argument", argName)
		}
		return fn(ctx, cmd, id, arg)
	}
}
