// ABOUTME: Line and hidden-input prompts for interactive commands
// ABOUTME: Falls back to plain line reads when stdin is not a terminal

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// prompter reads answers from a reader, echoing labels to out
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // terminal fd for hidden input, -1 when there is none
}

func newPrompter(in io.Reader, out io.Writer, fd int) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// Line prints label and returns the trimmed next line
func (p *prompter) Line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	return p.readLine()
}

// Secret prints label and reads without echo when attached to a terminal
func (p *prompter) Secret(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if p.fd >= 0 && term.IsTerminal(p.fd) {
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
		}
		return string(b), nil
	}
	return p.readLine()
}

func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
