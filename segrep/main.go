package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/mfroeh/segrep/regex"
	"github.com/mfroeh/segrep/segment"
)

var groupColors = []*color.Color{
	color.New(color.FgRed),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgBlue),
	color.New(color.FgMagenta),
	color.New(color.FgCyan),
}

type cli struct {
	Pattern    string            `arg:"" name:"pattern" help:"Pattern to search for" type:"string"`
	Paths      []string          `arg:"" optional:"" name:"path" help:"Paths to search" type:"path"`
	Segments   bool              `short:"s" help:"Match phonetic segments instead of characters."`
	Multigraph []string          `short:"m" help:"Symbol sequences that form one segment base. Implies --segments."`
	Define     map[string]string `short:"D" help:"Define a special as NAME=alt,alt,... Repeatable."`
	Mode       string            `short:"M" enum:"highlight,replace,split" default:"highlight" help:"Highlight matches, replace them with --template, or print the pieces between them."`
	Template   string            `short:"t" help:"Replacement template for --mode=replace ($N for group N)."`
	Whole      bool              `short:"x" help:"Only report lines the pattern matches entirely."`
	Dump       bool              `help:"Print the compiled automaton and exit."`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("segrep"),
		kong.Description("Recursively searches for lines matching a pattern over characters or phonetic segments."),
		kong.UsageOnError(),
	)

	re, err := c.compile()
	if err != nil {
		log.Fatalf("failed to build pattern: %v", err)
	}

	if c.Dump {
		fmt.Print(re.Dump())
		return
	}

	if len(c.Paths) == 0 {
		c.Paths = []string{"."}
	}

	for _, path := range c.Paths {
		info, err := os.Lstat(path)
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}

		if info.IsDir() {
			err = c.recursivelySearchDir(path, re)
		} else {
			err = c.searchFile(path, re)
		}

		if err != nil {
			log.Fatalf("%v", err)
		}
	}
}

func (c *cli) compile() (regex.Regex, error) {
	specials := make(map[string][]string, len(c.Define))
	for name, alts := range c.Define {
		if name == "" {
			return regex.Regex{}, errors.New("special with empty name")
		}
		specials[name] = strings.Split(alts, ",")
	}

	var f regex.Factory = regex.NewAlphabet(nil, specials)
	if c.Segments || len(c.Multigraph) > 0 {
		f = segment.New(c.Multigraph...).Factory(specials)
	}
	return regex.CompileWith(c.Pattern, f)
}

func (c *cli) recursivelySearchDir(path string, re regex.Regex) error {
	return filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		// symlinks may be broken, in that case, just ignore them
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}

		// symlink may resolve to a directory, in which case we just ignore it
		if info.IsDir() {
			return nil
		}

		return c.searchFile(path, re)
	})
}

func (c *cli) searchFile(path string, re regex.Regex) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	printFileHeader := false
	for i, line := range strings.Split(string(content), "\n") {
		out, ok := c.searchLine(line, re)
		if !ok {
			continue
		}

		if !printFileHeader {
			printFileHeader = true
			fmt.Println(path, ":")
		}
		fmt.Printf("%d:%s\n", i+1, out)
	}

	if printFileHeader {
		fmt.Println()
	}

	return nil
}

// searchLine returns what to print for line and whether line is reported.
func (c *cli) searchLine(line string, re regex.Regex) (string, bool) {
	seq := re.Transform(line)
	if c.Whole && !re.Matches(seq) {
		return "", false
	}

	matches := re.FindAll(seq, -1)
	if len(matches) == 0 {
		return "", false
	}

	switch c.Mode {
	case "replace":
		return re.Replace(seq, c.Template).String(), true
	case "split":
		pieces := re.Split(seq, -1)
		parts := make([]string, len(pieces))
		for i, p := range pieces {
			parts[i] = p.String()
		}
		return strings.Join(parts, " | "), true
	}

	out := strings.Builder{}
	lastMatchEnd := 0
	for _, m := range matches {
		out.WriteString(seq.Sub(lastMatchEnd, m.Start).String())
		writeMatch(&out, seq, m)
		lastMatchEnd = m.End
	}
	out.WriteString(seq.Sub(lastMatchEnd, len(seq)).String())
	return out.String(), true
}

// writeMatch colours every element of m by the innermost group covering it.
func writeMatch(w io.Writer, seq regex.Sequence, m regex.Match) {
	if len(m.Groups) == 1 || len(m.Groups) > len(groupColors) {
		groupColors[0].Fprint(w, seq.Sub(m.Start, m.End).String())
		return
	}

	for i := m.Start; i < m.End; i++ {
		c := 0
		for g := 1; g < len(m.Groups); g++ {
			span := m.Groups[g]
			if !span.Absent() && span.Start <= i && i < span.End {
				c = g
			}
		}
		groupColors[c].Fprint(w, seq[i])
	}
}
