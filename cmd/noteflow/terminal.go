package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

var assumeYes bool

// terminalNotifier prints the transient outcome messages mutations emit.
// Successes go to stdout, failures to stderr.
type terminalNotifier struct{}

func (terminalNotifier) Success(message string) {
	fmt.Println("✓ " + message)
}

func (terminalNotifier) Failure(message string) {
	fmt.Fprintln(os.Stderr, "✗ "+message)
}

// showBusy and clearBusy are the loading affordance the busy gate drives.
// The gate only calls them for operations slow enough to deserve it.
func showBusy() {
	fmt.Fprint(os.Stderr, "working...")
}

func clearBusy() {
	fmt.Fprint(os.Stderr, "\r          \r")
}

// confirmDelete is the yes/no gate in front of destructive actions.
func confirmDelete() bool {
	if assumeYes {
		return true
	}
	fmt.Fprint(os.Stderr, "Delete this note permanently? [y/N] ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
