package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"taskmate/pkg/cli"
	"taskmate/pkg/config"
	"taskmate/pkg/notify"
	"taskmate/pkg/session"
	"taskmate/pkg/task"
	"taskmate/pkg/ui"
	"taskmate/pkg/utils"
)

func main() {
	// Parse command line flags
	args := cli.ParseArgs()

	// Initialize logging
	utils.InitLogger(args.Verbose)
	defer utils.CloseLogger()

	// Load configuration
	cfg, styles, err := config.Load(args.ConfigPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Open session-scoped storage
	storage, err := session.Open(cfg.Database)
	if err != nil {
		fmt.Printf("Error opening session storage: %v\n", err)
		os.Exit(1)
	}
	defer storage.Close()

	sess := session.New(storage)
	sess.Resume()

	// An explicit -email replaces whatever identity was resumed
	if args.Email != "" {
		if err := sess.Login(args.Email); err != nil {
			fmt.Printf("Error signing in: %v\n", err)
			os.Exit(1)
		}
	}

	store := task.NewStore(storage)

	// Handle one-shot CLI commands
	if cli.HandleCommands(store, sess, args) {
		return
	}

	// Pick the delivery collaborator: SMTP when configured, otherwise a
	// local trace through the logger
	var mailer notify.Mailer = notify.TraceMailer{}
	if cfg.SMTP.Host != "" {
		mailer = notify.SMTPMailer{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}
	}

	scheduler := notify.NewScheduler(store, sess, mailer)
	defer scheduler.Deactivate()

	// A resumed session is already logged in; start reminders right
	// away. Otherwise the login screen activates the scheduler.
	if sess.LoggedIn() {
		scheduler.Activate()
	}

	// Create and run the Bubble Tea program
	p := tea.NewProgram(ui.NewModel(store, sess, scheduler, cfg, styles), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
