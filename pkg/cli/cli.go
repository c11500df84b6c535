package cli

import (
	"flag"

	"taskmate/pkg/commands"
	"taskmate/pkg/session"
	"taskmate/pkg/task"
)

// Args represents parsed command line arguments
type Args struct {
	ConfigPath string
	Verbose    bool
	Email      string

	// Task operations
	AddTask      string
	DateFlag     string
	PriorityFlag string

	// Session operations
	ResetFlag bool
	YesFlag   bool

	// Import/Export operations
	ImportFile string
	ExportFile string
	TypeFlag   string
}

// ParseArgs parses command line arguments and returns Args struct
func ParseArgs() *Args {
	args := &Args{}

	// Define command line flags
	flag.StringVar(&args.ConfigPath, "config", "", "Path to configuration file")
	flag.BoolVar(&args.Verbose, "verbose", false, "Enable verbose logging")
	flag.StringVar(&args.Email, "email", "", "Sign in as this email, skipping the login screen")

	// Task operations
	flag.StringVar(&args.AddTask, "add", "", "Add a new task (title; description defaults to title)")
	flag.StringVar(&args.DateFlag, "date", "", "Due date for task (YYYY-MM-DD format)")
	flag.StringVar(&args.PriorityFlag, "priority", "medium", "Priority for task (low, medium, high)")

	// Session operations
	flag.BoolVar(&args.ResetFlag, "reset", false, "Clear the stored session (tasks, identity, notification state)")
	flag.BoolVar(&args.YesFlag, "yes", false, "Skip confirmation")

	// Import/Export operations
	flag.StringVar(&args.ImportFile, "import", "", "Import tasks from file")
	flag.StringVar(&args.ExportFile, "export", "", "Export tasks to file")
	flag.StringVar(&args.TypeFlag, "type", "json", "Export file type (json, txt)")

	flag.Parse()
	return args
}

// HandleCommands processes CLI commands and returns true if a command was handled
func HandleCommands(store *task.Store, sess *session.Session, args *Args) bool {
	if args.AddTask != "" {
		commands.HandleAddTask(store, args.AddTask, args.DateFlag, args.PriorityFlag)
		return true
	}

	if args.ResetFlag {
		commands.HandleResetCommand(sess, store, args.YesFlag)
		return true
	}

	if args.ImportFile != "" {
		commands.HandleImportCommand(store, args.ImportFile)
		return true
	}

	if args.ExportFile != "" {
		commands.HandleExportCommand(store, args.ExportFile, args.TypeFlag)
		return true
	}

	// No CLI command was handled
	return false
}
