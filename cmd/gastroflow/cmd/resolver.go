package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gastroflow/gastroflow/pkg/categories"
)

// terminalResolver asks the operator to resolve an unmapped category on
// the terminal. A number picks a suggestion, free text becomes the
// resolution, an empty line declines.
type terminalResolver struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalResolver() *terminalResolver {
	return &terminalResolver{in: bufio.NewReader(os.Stdin), out: os.Stderr}
}

// Resolve implements categories.Resolver.
func (r *terminalResolver) Resolve(raw, nameHint string, suggestions []categories.Suggestion) (string, bool) {
	fmt.Fprintf(r.out, "\nUnmapped category: %s\n", raw)
	if nameHint != "" {
		fmt.Fprintf(r.out, "Product: %s\n", nameHint)
	}
	for i, s := range suggestions {
		fmt.Fprintf(r.out, "  %d) %s (%.0f)\n", i+1, s.Category, s.Score)
	}
	fmt.Fprint(r.out, "Choose a number, type a category, or press Enter to keep as-is: ")

	line, err := r.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(suggestions) {
		return suggestions[n-1].Category, true
	}
	return line, true
}
