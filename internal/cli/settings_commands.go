package cli

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"warroom/internal/config"
)

func runSettings(args []string) error {
	if len(args) == 0 {
		printSettingsUsage()
		return nil
	}

	switch args[0] {
	case "show":
		return runSettingsShow(args[1:])
	case "set":
		return runSettingsSet(args[1:])
	case "help", "-h", "--help":
		printSettingsUsage()
		return nil
	default:
		printSettingsUsage()
		return fmt.Errorf("unknown settings subcommand %q", args[0])
	}
}

func printSettingsUsage() {
	fmt.Println("warroom settings: the client settings file")
	fmt.Println()
	fmt.Println("Subcommands:")
	fmt.Println("  show  [--json]")
	fmt.Println("  set   key value")
	fmt.Println()
	fmt.Println("Keys: api_base_url, api_token, poll_interval_seconds, request_timeout_seconds")
}

func runSettingsShow(args []string) error {
	fs := flag.NewFlagSet("settings show", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *asJSON {
		return printJSON(settings)
	}
	fmt.Println(kv("api_base_url", settings.APIBaseURL))
	fmt.Println(kv("api_token", maskToken(settings.APIToken)))
	fmt.Println(kv("poll_interval_seconds", strconv.Itoa(settings.PollIntervalSeconds)))
	fmt.Println(kv("request_timeout_seconds", strconv.Itoa(settings.RequestTimeoutSeconds)))
	return nil
}

func maskToken(token string) string {
	if token == "" {
		return "(unset)"
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func runSettingsSet(args []string) error {
	fs := flag.NewFlagSet("settings set", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) != 2 {
		return fmt.Errorf("usage: settings set key value")
	}
	key, value := rest[0], rest[1]

	settings, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	switch key {
	case "api_base_url":
		settings.APIBaseURL = value
	case "api_token":
		settings.APIToken = value
	case "poll_interval_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("poll_interval_seconds must be a positive integer, got %q", value)
		}
		settings.PollIntervalSeconds = n
	case "request_timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("request_timeout_seconds must be a positive integer, got %q", value)
		}
		settings.RequestTimeoutSeconds = n
	default:
		return fmt.Errorf("unknown settings key %q", key)
	}

	if err := config.Save(*configPath, settings); err != nil {
		return err
	}
	fmt.Printf("Set %s.\n", key)
	return nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	apiURL := fs.String("api-url", "", "gateway base url to store")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, created, err := config.Ensure(*configPath)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("Created %s\n", *configPath)
	} else {
		fmt.Printf("Settings already exist at %s\n", *configPath)
	}

	if url := strings.TrimSpace(*apiURL); url != "" {
		settings.APIBaseURL = url
		if err := config.Save(*configPath, settings); err != nil {
			return err
		}
		fmt.Println("Stored api_base_url.")
	}

	fmt.Println()
	return runDoctor([]string{"--config", *configPath})
}
