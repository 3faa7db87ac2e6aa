// Command guardmatch checks JSON subjects against a JSON guard.
//
//	guardmatch -g '{"type":"order","status":["paid","authorized"]}' -s '{"type":"order","status":"paid","id":1}'
//	cat events.jsonl | guardmatch -g '{"type":"order"}' -strict
//	guardmatch -f order.yaml < events.jsonl
//
// Objects in the guard are partial shapes and arrays are alternations.
// Subjects are read from -s, or one per line from stdin. Each result is
// printed as true or false; the exit status is 1 when any subject failed
// to match and 2 on usage or input errors.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/guard"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("guardmatch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		guardJS   = fs.String("g", "", "guard in JSON")
		guardFile = fs.String("f", "", "read the guard from a JSON or YAML file")
		subjectJS = fs.String("s", "", "subject in JSON (default: one per line from stdin)")
		strict    = fs.Bool("strict", false, "require subject keys to equal the guard's keys")
		verbose   = fs.Bool("v", false, "log each decision")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var (
		g   any
		err error
	)
	switch {
	case *guardJS != "" && *guardFile != "":
		logger.Error("flags -g and -f are mutually exclusive")
		return 2
	case *guardJS != "":
		err = json.Unmarshal([]byte(*guardJS), &g)
	case *guardFile != "":
		g, err = loadGuard(*guardFile)
	default:
		logger.Error("missing guard", slog.String("flag", "-g"))
		return 2
	}
	if err != nil {
		logger.Error("parse guard", slog.Any("error", err))
		return 2
	}

	validate := guard.Validate(g)
	if *strict {
		validate = guard.ValidateStrict(g)
	}

	var subjects io.Reader = stdin
	if *subjectJS != "" {
		subjects = bytes.NewBufferString(*subjectJS)
	}

	failed, err := matchLines(subjects, stdout, logger, validate)
	if err != nil {
		logger.Error("read subjects", slog.Any("error", err))
		return 2
	}
	if failed {
		return 1
	}
	return 0
}

// loadGuard reads a guard file. Files ending in .yaml or .yml are decoded
// as YAML, anything else as JSON.
func loadGuard(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var g any
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &g); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return g, nil
	default:
		if err := json.Unmarshal(data, &g); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return g, nil
	}
}

// matchLines checks every non-blank line of r and prints one result per
// line. It reports whether any subject did not match.
func matchLines(r io.Reader, w io.Writer, logger *slog.Logger, validate guard.Predicate) (bool, error) {
	var (
		failed bool
		line   int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		doc, err := guard.ParseJSON(raw)
		if err != nil {
			return failed, fmt.Errorf("line %d: %w", line, err)
		}
		ok := validate(doc.Value())
		logger.Debug("checked subject", slog.Int("line", line), slog.Bool("matched", ok))
		if !ok {
			failed = true
		}
		if _, err := fmt.Fprintln(w, ok); err != nil {
			return failed, err
		}
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.EOF) {
		return failed, err
	}
	return failed, nil
}
