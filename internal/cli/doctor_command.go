package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"warroom/internal/api"
	"warroom/internal/config"
)

type doctorCheck struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

func runDoctor(args []string) error {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	checks := runDoctorChecks(*configPath)

	if *asJSON {
		if err := printJSON(checks); err != nil {
			return err
		}
	} else {
		for _, c := range checks {
			mark := okStyle.Render("ok")
			if !c.OK {
				mark = errorStyle.Render("FAIL")
			}
			line := fmt.Sprintf("%-4s %s", mark, c.Name)
			if c.Detail != "" {
				line += " — " + c.Detail
			}
			fmt.Println(line)
		}
	}

	for _, c := range checks {
		if !c.OK {
			return fmt.Errorf("%d of %d checks failed", countFailed(checks), len(checks))
		}
	}
	return nil
}

func countFailed(checks []doctorCheck) int {
	n := 0
	for _, c := range checks {
		if !c.OK {
			n++
		}
	}
	return n
}

func runDoctorChecks(configPath string) []doctorCheck {
	checks := make([]doctorCheck, 0, 4)

	settings, err := config.Load(configPath)
	if err != nil {
		checks = append(checks, doctorCheck{Name: "settings file", Detail: err.Error()})
		return checks
	}
	checks = append(checks, doctorCheck{Name: "settings file", OK: true, Detail: configPath})

	checks = append(checks, checkSettingsDirWritable(configPath))
	checks = append(checks, checkAPIHealth(settings))
	return checks
}

func checkSettingsDirWritable(configPath string) doctorCheck {
	check := doctorCheck{Name: "settings dir writable"}
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		check.Detail = err.Error()
		return check
	}
	probe, err := os.CreateTemp(dir, ".warroom-doctor-*")
	if err != nil {
		check.Detail = err.Error()
		return check
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	check.OK = true
	check.Detail = dir
	return check
}

func checkAPIHealth(settings config.Settings) doctorCheck {
	check := doctorCheck{Name: "api reachable"}
	client := api.New(settings.APIBaseURL, settings.APIToken, settings.RequestTimeout())
	report, err := client.Health(context.Background())
	if err != nil {
		check.Detail = settings.APIBaseURL + ": " + err.Error()
		return check
	}

	check.OK = strings.EqualFold(report.Status, "ok")
	parts := make([]string, 0, len(report.Services)+1)
	parts = append(parts, settings.APIBaseURL)
	names := make([]string, 0, len(report.Services))
	for name := range report.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, name+"="+report.Services[name])
		if !strings.EqualFold(report.Services[name], "ok") && !strings.EqualFold(report.Services[name], "healthy") {
			check.OK = false
		}
	}
	check.Detail = strings.Join(parts, " ")
	return check
}
