package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func writeValidationFailure(w io.Writer, path string, errs []string) {
	colorize := shouldColorize(w)
	fmt.Fprintln(w, paint(fmt.Sprintf("Manifest validation failed: %s", path), ansiRed, colorize))
	for i, msg := range errs {
		fmt.Fprintf(w, "%d. %s\n", i+1, msg)
	}
}

func writeValidationWarnings(w io.Writer, warnings []string) {
	colorize := shouldColorize(w)
	for _, msg := range warnings {
		fmt.Fprintln(w, paint("warning: "+msg, ansiYellow, colorize))
	}
}

func writeValidationSuccess(w io.Writer, path string) {
	fmt.Fprintln(w, paint(fmt.Sprintf("Manifest valid: %s", path), ansiGreen, shouldColorize(w)))
}

func paint(line, color string, colorize bool) string {
	if !colorize || color == "" {
		return line
	}
	return color + line + ansiReset
}

func shouldColorize(writer io.Writer) bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
