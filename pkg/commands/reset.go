package commands

import (
	"fmt"
	"os"
	"strings"

	"taskmate/pkg/session"
	"taskmate/pkg/task"
)

// HandleResetCommand processes the --reset command, clearing the stored
// session: identity, task list and notification state
func HandleResetCommand(sess *session.Session, store *task.Store, skipConfirm bool) {
	// Show confirmation unless --yes flag is used
	if !skipConfirm {
		fmt.Print("Are you sure you want to clear the stored session? (y/N): ")
		var response string
		fmt.Scanln(&response)
		if strings.ToLower(response) != "y" && strings.ToLower(response) != "yes" {
			fmt.Println("Operation cancelled.")
			return
		}
	}

	if err := sess.Logout(); err != nil {
		fmt.Printf("Error clearing session: %v\n", err)
		os.Exit(1)
	}
	store.Reset()

	fmt.Println("Session cleared.")
}
