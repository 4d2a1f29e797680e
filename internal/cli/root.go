package cli

import "fmt"

func Run(args []string) error {
	if len(args) == 0 {
		printRootUsage()
		return nil
	}

	switch args[0] {
	case "dash":
		return runDash(args[1:])
	case "products":
		return runProducts(args[1:])
	case "board":
		return runBoard(args[1:])
	case "library":
		return runLibrary(args[1:])
	case "doctor":
		return runDoctor(args[1:])
	case "settings":
		return runSettings(args[1:])
	case "init":
		return runInit(args[1:])
	case "help", "-h", "--help":
		printRootUsage()
		return nil
	default:
		printRootUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printRootUsage() {
	fmt.Println("warroom: terminal dashboard for the WAR ROOM API")
	fmt.Println()
	fmt.Println("Quick Start:")
	fmt.Println("  warroom init")
	fmt.Println("  warroom dash")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  dash      interactive dashboard (products, kanban board, video library)")
	fmt.Println("  products  list/add/update/remove products")
	fmt.Println("  board     kanban board rollup and card moves")
	fmt.Println("  library   video library list, stats, ingestion, removal")
	fmt.Println("  doctor    config and API reachability preflight checks")
	fmt.Println("  settings  show/update client settings")
	fmt.Println("  init      create the settings file + run preflight checks")
	fmt.Println()
	fmt.Println("Notes:")
	fmt.Println("  - Use --json on commands for machine-readable output")
	fmt.Println("  - WARROOM_API_URL and WARROOM_API_TOKEN override the settings file")
}
