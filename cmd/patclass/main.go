package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/funvibe/patclass/internal/config"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(2)
		}
	}()

	// PATCLASS_TEST_MODE makes hole names deterministic for golden output.
	if os.Getenv("PATCLASS_TEST_MODE") == "1" {
		config.IsTestMode = true
	}

	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
