package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/jmespath-community/go-jmespath"

	"github.com/shopdash/shopdash-ui/internal/util"
)

// errUsage marks flag and argument mistakes; the flag set already printed why.
var errUsage = errors.New("usage error")

type outputOptions struct {
	JSON  bool
	Query string
}

func (o *outputOptions) register(fs *flag.FlagSet) {
	fs.BoolVar(&o.JSON, "json", false, "print JSON instead of a table")
	fs.StringVar(&o.Query, "query", "", "JMESPath expression applied to the JSON output (implies --json)")
}

func (o outputOptions) wantsJSON() bool { return o.JSON || o.Query != "" }

func (o outputOptions) validate() error {
	if o.Query == "" {
		return nil
	}
	if _, err := jmespath.Compile(o.Query); err != nil {
		return fmt.Errorf("%w: invalid --query: %w", errUsage, err)
	}
	return nil
}

func newFlagSet(cmdCtx *commandContext, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Err)
	return fs
}

// parseFlags parses args and rejects stray positional arguments.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	return nil
}

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// emit prints v as JSON when requested, otherwise lets table fill a tabwriter.
func emit(w io.Writer, opts outputOptions, v any, table func(tw io.Writer) error) error {
	if opts.wantsJSON() {
		return printJSON(w, v, opts.Query)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := table(tw); err != nil {
		return err
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any, query string) error {
	if query != "" {
		// JMESPath walks plain JSON values, so round-trip through the wire form.
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		var generic any
		if err = json.Unmarshal(raw, &generic); err != nil {
			return fmt.Errorf("decode output: %w", err)
		}
		if v, err = jmespath.Search(query, generic); err != nil {
			return fmt.Errorf("query %q: %w", query, err)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}

func moneyPtr(v *float64) string {
	if v == nil {
		return "-"
	}
	return util.FormatMoney(*v)
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func timestampPtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return timestamp(*t)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// parseOutput parses the output flags plus whatever bind registers.
func parseOutput(cmdCtx *commandContext, name string, args []string, bind func(fs *flag.FlagSet)) (outputOptions, error) {
	var out outputOptions
	fs := newFlagSet(cmdCtx, name)
	out.register(fs)
	if bind != nil {
		bind(fs)
	}
	if err := parseFlags(fs, args); err != nil {
		return out, err
	}
	return out, out.validate()
}
