// Package ux provides plain line-oriented prompts for interactive use when
// stdin is not a terminal capable of richer forms (piped input, dumb
// consoles). The reader and writer are injectable for tests.
package ux

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads answers line by line from In and writes prompts to Out
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter over the given reader and writer
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *Prompter) readLine() string {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

// Confirm prompts for yes/no confirmation with a stated default
func (p *Prompter) Confirm(message string, defaultYes bool) bool {
	suffix := " (y/N): "
	if defaultYes {
		suffix = " (Y/n): "
	}
	fmt.Fprint(p.out, message+suffix)

	response := strings.ToLower(p.readLine())
	if response == "" {
		return defaultYes
	}
	return response == "y" || response == "yes"
}

// Select prompts with a numbered menu and returns the chosen index.
// Empty or invalid input selects the default.
func (p *Prompter) Select(message string, options []string, defaultIdx int) int {
	fmt.Fprintln(p.out, message)
	for i, opt := range options {
		marker := ""
		if i == defaultIdx {
			marker = " (default)"
		}
		fmt.Fprintf(p.out, "%d) %s%s\n", i+1, opt, marker)
	}
	fmt.Fprintf(p.out, "Enter choice (1-%d) [%d]: ", len(options), defaultIdx+1)

	choice, err := strconv.Atoi(p.readLine())
	if err != nil || choice < 1 || choice > len(options) {
		return defaultIdx
	}
	return choice - 1
}

// Int prompts for an integer with a default; invalid input keeps the default
func (p *Prompter) Int(message string, defaultValue int) int {
	fmt.Fprintf(p.out, "%s (default: %d): ", message, defaultValue)

	value, err := strconv.Atoi(p.readLine())
	if err != nil {
		return defaultValue
	}
	return value
}
