// Command notesctl signs in to the notes API, prefetches the note and user
// lists the way the web client does on entering a protected page, and prints them.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
