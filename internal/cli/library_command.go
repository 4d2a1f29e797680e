package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"warroom/internal/config"
	"warroom/internal/model"
)

func runLibrary(args []string) error {
	if len(args) == 0 {
		printLibraryUsage()
		return nil
	}

	switch args[0] {
	case "list":
		return runLibraryList(args[1:])
	case "stats":
		return runLibraryStats(args[1:])
	case "process":
		return runLibraryProcess(args[1:])
	case "show":
		return runLibraryShow(args[1:])
	case "remove":
		return runLibraryRemove(args[1:])
	case "help", "-h", "--help":
		printLibraryUsage()
		return nil
	default:
		printLibraryUsage()
		return fmt.Errorf("unknown library subcommand %q", args[0])
	}
}

func printLibraryUsage() {
	fmt.Println("warroom library: the ingested video library")
	fmt.Println()
	fmt.Println("Subcommands:")
	fmt.Println("  list     [--json]")
	fmt.Println("  stats    [--json]")
	fmt.Println("  process  --url u [--no-wait] [--timeout 15m] [--json]")
	fmt.Println("  show     --id n [--chunks] [--json]")
	fmt.Println("  remove   --id n [--yes]")
}

func runLibraryList(args []string) error {
	fs := flag.NewFlagSet("library list", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, _, err := newAPIClient(*configPath)
	if err != nil {
		return err
	}
	videos, err := client.ListVideos(context.Background())
	if err != nil {
		return err
	}
	if *asJSON {
		return printJSON(videos)
	}
	if len(videos) == 0 {
		fmt.Println("Library is empty.")
		return nil
	}
	fmt.Printf("%-5s %-44s %-18s %8s %6s\n", "ID", "TITLE", "AUTHOR", "LENGTH", "CHUNKS")
	for _, v := range videos {
		fmt.Printf("%-5d %-44s %-18s %8s %6d\n",
			v.ID, truncateRunes(v.Title, 44), truncateRunes(defaultIfEmpty(v.Author, "-"), 18),
			model.FormatDuration(v.Duration), v.ChunkCount)
	}
	return nil
}

func runLibraryStats(args []string) error {
	fs := flag.NewFlagSet("library stats", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, _, err := newAPIClient(*configPath)
	if err != nil {
		return err
	}
	stats, err := client.LibraryStats(context.Background())
	if err != nil {
		return err
	}
	if *asJSON {
		return printJSON(stats)
	}
	fmt.Println(kv("Videos", fmt.Sprintf("%d", stats.TotalVideos)))
	fmt.Println(kv("Chunks", fmt.Sprintf("%d", stats.TotalChunks)))
	fmt.Println(kv("Total runtime", model.FormatDuration(stats.TotalDuration)))
	return nil
}

func runLibraryProcess(args []string) error {
	fs := flag.NewFlagSet("library process", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	videoURL := fs.String("url", "", "video url (required)")
	noWait := fs.Bool("no-wait", false, "submit and exit without polling")
	timeout := fs.Duration("timeout", 15*time.Minute, "max time to wait for ingestion")
	asJSON := fs.Bool("json", false, "print final task snapshot as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*videoURL) == "" {
		return errors.New("--url is required")
	}

	client, settings, err := newAPIClient(*configPath)
	if err != nil {
		return err
	}
	ctx := context.Background()

	task, err := client.ProcessVideo(ctx, *videoURL)
	if err != nil {
		return err
	}
	if *noWait {
		if *asJSON {
			return printJSON(task)
		}
		fmt.Printf("Submitted. Task %s is %s.\n", task.TaskID, task.Status)
		return nil
	}

	deadline := time.Now().Add(*timeout)
	live := stdinIsTTY() && !*asJSON
	for !model.IsTerminalProcessingStatus(task.Status) {
		if time.Now().After(deadline) {
			if live {
				fmt.Print("\r\033[2K")
			}
			return fmt.Errorf("timed out after %s waiting for task %s (last status: %s)", *timeout, task.TaskID, task.Status)
		}
		if live {
			line := task.Status
			if task.Message != "" {
				line += ": " + task.Message
			}
			if task.Progress > 0 {
				line += fmt.Sprintf(" (%.0f%%)", task.Progress)
			}
			fmt.Printf("\r\033[2K%s", truncateRunes(line, 100))
		}
		time.Sleep(settings.PollInterval())

		next, err := client.VideoStatus(ctx, task.TaskID)
		if err != nil {
			// Keep polling through transient blips; the deadline bounds it.
			continue
		}
		if applyErr := task.Apply(next); applyErr != nil {
			break
		}
	}
	if live {
		fmt.Print("\r\033[2K")
	}

	if *asJSON {
		return printJSON(task)
	}
	if task.Status == model.ProcessingError {
		return fmt.Errorf("ingestion failed: %s", defaultIfEmpty(task.Message, "no detail"))
	}
	fmt.Printf("Done: %s\n", defaultIfEmpty(task.Message, "video ingested"))
	return nil
}

func runLibraryShow(args []string) error {
	fs := flag.NewFlagSet("library show", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	id := fs.Int("id", 0, "video id (required)")
	withChunks := fs.Bool("chunks", false, "include transcript chunks")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("--id is required")
	}

	client, _, err := newAPIClient(*configPath)
	if err != nil {
		return err
	}
	ctx := context.Background()

	video, err := client.GetVideo(ctx, *id)
	if err != nil {
		return err
	}
	var chunks []model.VideoChunk
	if *withChunks {
		chunks, err = client.ListVideoChunks(ctx, *id)
		if err != nil {
			return err
		}
	}

	if *asJSON {
		if *withChunks {
			return printJSON(map[string]any{"video": video, "chunks": chunks})
		}
		return printJSON(video)
	}

	fmt.Println(kv("Title", video.Title))
	fmt.Println(kv("Author", defaultIfEmpty(video.Author, "-")))
	fmt.Println(kv("Duration", model.FormatDuration(video.Duration)))
	fmt.Println(kv("Chunks", fmt.Sprintf("%d", video.ChunkCount)))
	fmt.Println(kv("URL", video.URL))
	if thumb := video.Thumbnail(); thumb != "" {
		fmt.Println(kv("Thumbnail", thumb))
	}
	if len(video.TopicTags) > 0 {
		fmt.Println(kv("Topics", strings.Join(video.TopicTags, ", ")))
	}
	for _, c := range chunks {
		fmt.Printf("\n[%d] %s - %s (%d tokens)\n%s\n",
			c.ChunkIndex,
			model.FormatDuration(int(c.StartTime)),
			model.FormatDuration(int(c.EndTime)),
			c.TokenCount,
			c.Text)
	}
	return nil
}

func runLibraryRemove(args []string) error {
	fs := flag.NewFlagSet("library remove", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	id := fs.Int("id", 0, "video id (required)")
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("--id is required")
	}

	client, _, err := newAPIClient(*configPath)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if !*yes {
		video, err := client.GetVideo(ctx, *id)
		if err != nil {
			return err
		}
		ok, err := promptConfirm(fmt.Sprintf("Remove '%s' and its chunks from the library? [y/N] ", video.Title))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := client.DeleteVideo(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("Removed video #%d\n", *id)
	return nil
}
