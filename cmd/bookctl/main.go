// Command bookctl is the process-level harness around the order book
// core: argument parsing, file I/O, and benchmarking, kept strictly
// outside the core itself.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
