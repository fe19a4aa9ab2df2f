// Command gbsect drives the section engine over a line-oriented
// directive source file and writes the resulting sections to a simple
// object file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ashgb/gbsect/diag"
	"github.com/ashgb/gbsect/expr"
	"github.com/ashgb/gbsect/fstack"
	"github.com/ashgb/gbsect/objwriter"
	"github.com/ashgb/gbsect/options"
	"github.com/ashgb/gbsect/section"
	"github.com/ashgb/gbsect/symtab"
)

const versionString = "gbsect 1.0.0"

func main() {
	var outputFlag = flag.String("o", "", "output object filename (defaults to <input>.o)")
	var includeFlag multiFlag
	flag.Var(&includeFlag, "I", "include search directory (repeatable)")
	var versionFlag = flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(versionString)
		return
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: gbsect [-o out.o] [-I dir]... <source>")
		os.Exit(2)
	}
	inputPath := args[0]

	outputPath := *outputFlag
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, ".asm") + ".o"
	}

	if err := run(inputPath, outputPath, []string(includeFlag)); err != nil {
		fmt.Fprintln(os.Stderr, "gbsect:", err)
		os.Exit(1)
	}
}

func run(inputPath, outputPath string, includeDirs []string) error {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	d := diag.NewStderrSink()
	fs := fstack.NewSimple(inputPath, includeDirs)
	st := symtab.New(expr.Symbol{Name: "@"})
	opts := options.New()
	eng := section.New(d, fs, st, opts)

	interp := &interpreter{engine: eng, symtab: st, diag: d}
	for i, line := range strings.Split(string(src), "\n") {
		fs.SetLine(i + 1)
		if err := interp.run(line); err != nil {
			return err
		}
	}

	if err := eng.Finish(); err != nil {
		return err
	}
	if d.ErrorCount() > 0 {
		return fmt.Errorf("%d error(s), no object file written", d.ErrorCount())
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	return objwriter.Write(out, eng.Registry())
}

// multiFlag collects repeated -I occurrences into a []string.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}
