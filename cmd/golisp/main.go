package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/apavazza/lisp-interpreter/pkg/lisp"
	"github.com/apavazza/lisp-interpreter/pkg/repl"
)

func main() {
	var (
		help     = flag.Bool("help", false, "Show help message")
		eval     = flag.String("e", "", "Evaluate code directly instead of reading from a file")
		filename = flag.String("f", "", "File to execute")
		noColor  = flag.Bool("no-color", false, "Disable colored output")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                     # Start interactive REPL\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -f script.lisp      # Execute a file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -e '(+ 1 2 3)'      # Evaluate code directly\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -help               # Show this help message\n", os.Args[0])
	}

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	// Handle -e flag: evaluate code directly
	if *eval != "" {
		output, err := lisp.Evaluate(*eval, readLineFromStdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error evaluating code: %v\n", err)
			os.Exit(1)
		}
		if output != "" {
			fmt.Println(output)
		}
		return
	}

	// Handle -f flag: execute a file
	if *filename != "" {
		runFile(*filename)
		return
	}

	// Check for legacy positional argument (backward compatibility)
	if len(flag.Args()) > 0 {
		runFile(flag.Args()[0])
		return
	}

	// If no arguments provided, start REPL
	session := repl.NewSession()
	if err := repl.REPLWithCompletion(session, !*noColor); err != nil {
		fmt.Fprintf(os.Stderr, "REPL error: %v\n", err)
		os.Exit(1)
	}
}

func runFile(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing file %s: %v\n", path, err)
		os.Exit(1)
	}

	output, err := lisp.Evaluate(string(src), readLineFromStdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing file %s: %v\n", path, err)
		os.Exit(1)
	}
	if output != "" {
		fmt.Println(output)
	}
}

// readLineFromStdin backs the read-line builtin when running a script or a
// one-off -e expression, where there is no REPL loop already reading stdin.
func readLineFromStdin() (string, bool) {
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return "", false
	}
	return scanner.Text(), true
}
