// Package prompt handles operator interaction: yes/no questions, film and
// frame entry, and guessing identifiers from filenames.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// framePattern matches the <film>-<frame>-title.jpg notation, for example
// 123-22-holiday.jpg.
var framePattern = regexp.MustCompile(`^(\d+)-(\d+).*\.jpe?g$`)

// GuessFrame derives a film id and frame id from a filename. Matching is
// case-insensitive and requires a .jpg or .jpeg suffix.
func GuessFrame(filename string) (film, frame string, ok bool) {
	m := framePattern.FindStringSubmatch(strings.ToLower(filename))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// Console prompts on an input/output stream pair, usually stdin/stdout.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole returns a console bound to stdin and stdout.
func NewConsole() *Console {
	return &Console{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// NewConsoleWith returns a console bound to the given streams.
func NewConsoleWith(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// YesNo asks a yes/no question and keeps asking until it gets one of
// y/yes/n/no.
func (c *Console) YesNo(question string) (bool, error) {
	for {
		fmt.Fprintf(c.out, "%s (y/n): ", question)
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(c.out, "Input yes or no")
	}
}

// FilmFrame asks the operator for a film id and then a frame id.
func (c *Console) FilmFrame(filename string) (string, string, error) {
	fmt.Fprintf(c.out, "Enter film ID for %s: ", filename)
	film, err := c.in.ReadString('\n')
	if err != nil && film == "" {
		return "", "", err
	}
	film = strings.TrimSpace(film)

	fmt.Fprintf(c.out, "Enter frame ID for %s: ", film)
	frame, err := c.in.ReadString('\n')
	if err != nil && frame == "" {
		return "", "", err
	}
	return film, strings.TrimSpace(frame), nil
}
