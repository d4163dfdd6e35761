package emscripten

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Lines renders the configuration with one logical flag per line. Paired
// arguments such as `-s NAME=VALUE` stay on one line.
func (c *LinkerConfig) Lines() []string {
	args := c.Args()
	var lines []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if takesValue(a) && i+1 < len(args) {
			lines = append(lines, a+" "+quoteArg(args[i+1]))
			i++
			continue
		}
		lines = append(lines, quoteArg(a))
	}
	return lines
}

func takesValue(arg string) bool {
	switch arg {
	case "-s", "--llvm-lto", "--memory-init-file", "--closure", "--closure-args":
		return true
	}
	return false
}

// Diff returns a line diff between the rendered flags of a and b. Lines only
// in a are prefixed with "-", lines only in b with "+", shared lines with " ".
func Diff(a, b *LinkerConfig) string {
	textA := strings.Join(a.Lines(), "\n") + "\n"
	textB := strings.Join(b.Lines(), "\n") + "\n"

	dmp := diffmatchpatch.New()
	charsA, charsB, lines := dmp.DiffLinesToChars(textA, textB)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(charsA, charsB, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}
