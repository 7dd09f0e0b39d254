package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner(w io.Writer) {
	fmt.Fprintln(w, `
   _        _ _
  | |_ __ _| | |_   _
  | __/ _`+"`"+` | | | | | |
  | || (_| | | | |_| |
   \__\__,_|_|_|\__, |
                |___/

  String analysis service

  Usage: tally serve            start the HTTP API
         tally mcp              serve MCP tools over stdio
         tally analyze <text>   analyze a string offline
         tally translate <q>    show the filters a phrase maps to
         tally --help`)
}

func main() {
	args := os.Args
	if len(args) < 2 {
		// No args + interactive terminal → show banner and exit
		if isTerminal() {
			printBanner(os.Stdout)
			return
		}
		// Piped stdin with no command → MCP server
		args = append(args, "mcp")
	}

	// A missing .env is normal; anything else is worth reporting.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: .env: %v\n", err)
	}

	var stdin io.Reader
	if !isTerminal() {
		stdin = os.Stdin
	}

	app := newCLIApp(stdin, os.Stdout, os.Stderr)
	if err := app.Run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
