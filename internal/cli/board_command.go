package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"warroom/internal/config"
	"warroom/internal/model"
)

func runBoard(args []string) error {
	if len(args) > 0 && args[0] == "move" {
		return runBoardMove(args[1:])
	}
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		printBoardUsage()
		return nil
	}
	return runBoardList(args)
}

func printBoardUsage() {
	fmt.Println("warroom board: kanban board rollup and card moves")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  board [--column status] [--json]")
	fmt.Println("  board move --id task --to status")
	fmt.Println()
	fmt.Println("Columns: backlog, todo, in_progress, done")
}

func runBoardList(args []string) error {
	fs := flag.NewFlagSet("board", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	column := fs.String("column", "", "show only one column")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *column != "" && !model.IsBoardStatus(*column) {
		return fmt.Errorf("unknown board column %q", *column)
	}

	client, _, err := newAPIClient(*configPath)
	if err != nil {
		return err
	}
	tasks, err := client.ListTasks(context.Background())
	if err != nil {
		return err
	}
	columns, unplaced := model.GroupTasksByColumn(tasks)

	if *asJSON {
		out := map[string]any{"columns": columns}
		if unplaced > 0 {
			out["unplaced"] = unplaced
		}
		return printJSON(out)
	}

	order := model.BoardColumns
	if *column != "" {
		order = []string{*column}
	}
	for _, status := range order {
		cards := columns[status]
		fmt.Printf("%s (%d)\n", model.BoardColumnTitle(status), len(cards))
		for _, t := range cards {
			line := fmt.Sprintf("  [%s] %s", t.ID, t.Title)
			if t.Assignee != "" {
				line += " @" + t.Assignee
			}
			if model.KnownPriority(t.Priority) {
				line += " (" + t.Priority + ")"
			}
			fmt.Println(line)
		}
		fmt.Println()
	}
	if unplaced > 0 {
		fmt.Printf("%d task(s) hidden: unrecognized status\n", unplaced)
	}
	return nil
}

func runBoardMove(args []string) error {
	fs := flag.NewFlagSet("board move", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	id := fs.String("id", "", "task id (required)")
	to := fs.String("to", "", "target column (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("--id is required")
	}
	if !model.IsBoardStatus(*to) {
		return fmt.Errorf("--to must be one of: backlog, todo, in_progress, done (got %q)", *to)
	}

	client, _, err := newAPIClient(*configPath)
	if err != nil {
		return err
	}
	if err := client.MoveTask(context.Background(), model.FlexID(*id), *to); err != nil {
		return err
	}
	fmt.Printf("Moved task %s to %s\n", *id, model.BoardColumnTitle(*to))
	return nil
}
