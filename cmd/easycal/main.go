package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/easycal/easycal/internal/api"
	"github.com/easycal/easycal/internal/config"
	"github.com/easycal/easycal/internal/notify"
	"github.com/easycal/easycal/internal/planner"
	"github.com/easycal/easycal/internal/repl"
	"github.com/easycal/easycal/internal/schedule"
	"github.com/easycal/easycal/internal/ui"
)

func main() {
	// A local .env is a convenience for API keys; absence is fine.
	_ = godotenv.Load()

	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	provider := flag.String("provider", "", "Provider to use (openrouter, deepseek)")
	modelName := flag.String("model", "", "Model name (overrides config)")
	timezone := flag.String("timezone", "", "Planner timezone (overrides config)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	noSave := flag.Bool("no-save", false, "Do not persist the schedule")
	noReminders := flag.Bool("no-reminders", false, "Disable reminder notifications")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Apply CLI flag overrides
	if *provider != "" {
		cfg.Provider = *provider
	}
	if *modelName != "" {
		cfg.OpenRouter.Model = *modelName
		cfg.DeepSeek.Model = *modelName
	}
	if *timezone != "" {
		cfg.Planner.Timezone = *timezone
	}
	if *noColor {
		cfg.UI.ColoredOutput = false
	}
	if *noSave {
		cfg.Session.SaveSchedule = false
	}
	if *noReminders {
		cfg.Reminders.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		switch cfg.Provider {
		case config.ProviderOpenRouter:
			fmt.Fprintf(os.Stderr, "Tip: Set OPENROUTER_API_KEY environment variable or add it to config file\n")
		case config.ProviderDeepSeek:
			fmt.Fprintf(os.Stderr, "Tip: Set DEEPSEEK_API_KEY environment variable or add it to config file\n")
		}
		os.Exit(1)
	}

	providerInstance, err := api.NewProvider(cfg.GetProviderConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating provider: %v\n", err)
		os.Exit(1)
	}
	defer providerInstance.Close()

	var store schedule.Store
	if cfg.Session.SaveSchedule {
		sqlite, err := schedule.NewSQLiteStore(cfg.Session.DBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: schedule persistence unavailable: %v\n", err)
			store = schedule.NewMemoryStore()
		} else {
			store = sqlite
		}
	} else {
		store = schedule.NewMemoryStore()
	}
	defer store.Close()

	var watcher *notify.Watcher
	if cfg.Reminders.Enabled {
		formatter := ui.NewFormatter(cfg.UI.ColoredOutput, cfg.Provider, cfg.Location())
		watcher = notify.NewWatcher(cfg.Location(), func(item planner.ScheduleItem, minutesLeft int) {
			fmt.Println()
			fmt.Println(formatter.FormatInfo(fmt.Sprintf("Reminder: %q starts in %d minute(s).", item.Title, minutesLeft)))
		})
		if err := watcher.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: reminders unavailable: %v\n", err)
			watcher = nil
		} else {
			defer watcher.Stop()
		}
	}

	replInstance, err := repl.New(providerInstance, store, watcher, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating REPL: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// SIGTERM ends the session; SIGINT is handled inside the REPL so it
	// can cancel an in-flight request instead of killing the process.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nTerminated.")
		cancel()
		replInstance.Stop()
	}()

	if err := replInstance.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
