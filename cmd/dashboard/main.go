package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/climapyg/climapyg-dashboard/internal/app"
	"github.com/climapyg/climapyg-dashboard/internal/config"
	"github.com/climapyg/climapyg-dashboard/internal/logger"
	"github.com/climapyg/climapyg-dashboard/internal/tui"
	"github.com/climapyg/climapyg-dashboard/pkg/request"
)

func main() {
	var apiURL string
	var logFile string

	flag.StringVar(&apiURL, "api", "", "override the API base URL (default from API_BASE_URL)")
	flag.StringVar(&logFile, "log-file", "", "write logs to this file (default is a file under the temp dir)")
	flag.Parse()

	if err := run(apiURL, logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(apiURL, logFile string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiURL != "" {
		if err := cfg.SetAPIBaseURL(apiURL); err != nil {
			return fmt.Errorf("-api: %w", err)
		}
	}

	// The terminal belongs to the UI; logs always go to a file.
	switch {
	case logFile != "":
		cfg.LogFile = logFile
	case cfg.LogFile == "":
		cfg.LogFile = filepath.Join(os.TempDir(), cfg.AppName+".log")
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("dashboard starting", "config", cfg)

	notifier := &tui.Notifier{}
	p, err := app.NewPanels(cfg, log, request.WithObserver(notifier.Notify))
	if err != nil {
		return err
	}

	model := tui.New(context.Background(), p.Catalog, p.Weather, p.Currency, p.Bitcoin)
	program := tea.NewProgram(model, tea.WithAltScreen())
	notifier.Attach(program)

	if _, err := program.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("dashboard requires a real terminal")
		}
		return fmt.Errorf("error running dashboard: %w", err)
	}

	logger.InfoObj("dashboard stopped", "log_file", cfg.LogFile)
	return nil
}
