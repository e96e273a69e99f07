package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/taskman/internal/export"
	"github.com/idilsaglam/taskman/internal/model"
	"github.com/idilsaglam/taskman/internal/store"
	"github.com/idilsaglam/taskman/internal/tui"
	"github.com/idilsaglam/taskman/internal/ui"
)

// -------------- interactive ----------------

func (a *app) uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive list (default)",
		Args:  cobra.NoArgs,
		RunE:  a.runUI,
	}
}

// runUI loads once, hands the store to the TUI, and saves once on exit.
func (a *app) runUI(cmd *cobra.Command, _ []string) error {
	s, err := a.load()
	if err != nil {
		return err
	}
	changed, err := tui.Run(s)
	if err != nil {
		return failure("tui: %w", err)
	}
	if err := a.save(s); err != nil {
		return err
	}
	if changed {
		ui.OK(a.stdout, "saved")
	}
	return nil
}

// -------------- one-shot subcommands ----------------

func (a *app) addCmd() *cobra.Command {
	var description, deadline string
	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Add a task (name can be multiple words)",
		Example: `  taskman add Buy milk -d "2 litres" -D friday
  taskman add "Ship release" --deadline 2026-11-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			s.Add(strings.Join(args, " "), description, deadline)
			if err := a.save(s); err != nil {
				return err
			}
			ui.OK(a.stdout, fmt.Sprintf("added #%d", s.Len()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&deadline, "deadline", "D", "", "task deadline (free text)")
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	var name, description, deadline string
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Change fields of the task at 1-based index",
		Long:  "Change fields of the task at 1-based index. Fields without a flag keep their value.",
		Example: `  taskman edit 2 --deadline monday
  taskman edit 1 -n "Buy oat milk" -d ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseIndex("edit", args[0])
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if !f.Changed("name") && !f.Changed("description") && !f.Changed("deadline") {
				return usage("edit: nothing to change (use --name, --description or --deadline)")
			}

			s, err := a.load()
			if err != nil {
				return err
			}
			cur, ok := s.Get(n - 1)
			if !ok {
				return outOfRange(s, n)
			}
			if f.Changed("name") {
				cur.Name = name
			}
			if f.Changed("description") {
				cur.Description = description
			}
			if f.Changed("deadline") {
				cur.Deadline = deadline
			}
			s.Edit(n-1, cur.Name, cur.Description, cur.Deadline)
			if err := a.save(s); err != nil {
				return err
			}
			ui.OK(a.stdout, fmt.Sprintf("edited #%d", n))
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&deadline, "deadline", "D", "", "new deadline")
	return cmd
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove the task at 1-based index",
		Example: "  taskman rm 3",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseIndex("rm", args[0])
			if err != nil {
				return err
			}
			s, err := a.load()
			if err != nil {
				return err
			}
			if !s.Remove(n - 1) {
				return outOfRange(s, n)
			}
			if err := a.save(s); err != nil {
				return err
			}
			ui.OK(a.stdout, "removed")
			return nil
		},
	}
}

func (a *app) lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Print all tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			ui.Panel(a.stdout, listLines(s.List()))
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the task list as " + strings.Join(export.Formats, " or "),
		Example: `  taskman export > tasks.yaml
  taskman export --format pdf -o tasks.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			b, err := export.Export(s.List(), format)
			if err != nil {
				return usage("export: %w", err)
			}
			if output == "" || output == "-" {
				if _, err := a.stdout.Write(b); err != nil {
					return failure("export: %w", err)
				}
				return nil
			}
			if err := os.WriteFile(output, b, 0o644); err != nil {
				return failure("export: %w", err)
			}
			ui.OK(a.stdout, "exported "+output)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: "+strings.Join(export.Formats, ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func versionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "taskman", version)
			return nil
		},
	}
}

// -------------- helpers ----------------

func parseIndex(verb, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, usage("%s: not a number: %s", verb, arg)
	}
	return n, nil
}

func outOfRange(s *store.Store, got int) error {
	return &exitError{
		code: ExitUsage,
		err:  fmt.Errorf("index out of range: have %d, got %d", s.Len(), got),
		hint: "Hint: run `taskman ls` to see valid indexes",
	}
}

func listLines(tasks []model.Task) []string {
	t := ui.Current()
	lines := []string{
		fmt.Sprintf("%s  %s %d", t.Title.Render("Tasks"), t.Accent.Render("Total"), len(tasks)),
		"",
	}
	if len(tasks) == 0 {
		lines = append(lines, t.Muted.Render("no tasks"))
	}
	for i, task := range tasks {
		line := fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%2d.", i+1)), t.Bullet, ui.Truncate(task.Name, 80))
		if task.Deadline != "" {
			line += "  " + t.Deadline.Render("due "+task.Deadline)
		}
		lines = append(lines, line)
		if task.Description != "" {
			lines = append(lines, "      "+t.Muted.Render(ui.Truncate(task.Description, 76)))
		}
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `taskman add Buy milk -D friday`"))
	return lines
}
