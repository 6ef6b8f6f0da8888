package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/splicelang/splice/core/types"
	"github.com/splicelang/splice/runtime"
	"github.com/splicelang/splice/runtime/eval"
	"github.com/splicelang/splice/runtime/lexer"
	"github.com/splicelang/splice/runtime/parser"
	"github.com/splicelang/splice/runtime/resolver"
)

func newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively evaluate alias bindings",
		Long: `Repl evaluates alias bindings and expressions with the full
resolution pipeline. "name = expr" adds a binding later lines can
reference; a bare expression prints its kind and value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, noColor := rootFlags(cmd)
			return runRepl(cmd.OutOrStdout(), cmd.ErrOrStderr(), shouldUseColor(noColor))
		},
	}
}

// replSession accumulates alias bindings and evaluates lines against
// them. One session shares one seed, like one invocation would.
type replSession struct {
	env   *types.Environment
	items []string
}

func newReplSession() (*replSession, error) {
	seed, err := runtime.NewSeed()
	if err != nil {
		return nil, err
	}
	return &replSession{env: types.NewEnvironment(types.Global(), seed)}, nil
}

var bindingPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=(?:[^=]|$)`)

// Eval runs one line. A binding returns "name = kind: value" and
// joins the session; a bare expression returns "kind: value" and
// leaves no binding behind.
func (s *replSession) Eval(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}

	if m := bindingPattern.FindStringSubmatch(line); m != nil {
		name := m[1]
		value, err := s.tryItems(append(append([]string(nil), s.items...), line), name)
		if err != nil {
			return "", err
		}
		s.items = append(s.items, line)
		return fmt.Sprintf("%s = %s: %s", name, value.Kind(), value.Render()), nil
	}

	probe := "__it = " + line
	value, err := s.tryItems(append(append([]string(nil), s.items...), probe), "__it")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %s", value.Kind(), value.Render()), nil
}

// Reset drops the session's bindings.
func (s *replSession) Reset() {
	s.items = nil
}

// tryItems builds a synthetic invocation from items and evaluates it,
// returning name's value. Bindings only persist when the whole
// pipeline accepts the trial, so a failed line leaves the session
// untouched.
func (s *replSession) tryItems(items []string, name string) (types.Value, error) {
	src := "splice(" + strings.Join(items, ", ") + " { })"
	toks, source, err := lexer.New("repl", []byte(src)).Lex()
	if err != nil {
		return types.Value{}, err
	}
	segments, err := parser.New(source, nil).ParseFile(toks)
	if err != nil {
		return types.Value{}, err
	}
	if len(segments) != 1 || segments[0].Invocation == nil {
		return types.Value{}, fmt.Errorf("could not read input as a binding or expression")
	}
	spec := segments[0].Invocation.Spec

	scope := resolver.NewScope()
	if err := resolver.New(s.env).ResolveSpec(spec, scope); err != nil {
		return types.Value{}, err
	}
	bindings, err := eval.EvalSpec(eval.NewContext(s.env, scope.Metadata()), spec)
	if err != nil {
		return types.Value{}, err
	}

	value, ok := bindings.Lookup(name)
	if !ok {
		return types.Value{}, types.Internalf("binding %s missing after evaluation", name)
	}
	return value, nil
}

func runRepl(out, errOut io.Writer, useColor bool) error {
	session, err := newReplSession()
	if err != nil {
		return err
	}

	prompt := liner.NewLiner()
	defer func() { _ = prompt.Close() }()
	prompt.SetCtrlCAborts(true)

	names := types.Global().Names()
	prompt.SetCompleter(func(line string) []string {
		word := line
		if i := strings.LastIndexAny(line, " =(,"); i >= 0 {
			word = line[i+1:]
		}
		if word == "" {
			return nil
		}
		var completions []string
		for _, name := range fuzzy.FindFold(word, names) {
			completions = append(completions, line[:len(line)-len(word)]+name)
		}
		return completions
	})

	history := historyPath()
	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = prompt.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if history == "" {
			return
		}
		if f, err := os.Create(history); err == nil {
			_, _ = prompt.WriteHistory(f)
			_ = f.Close()
		}
	}()

	_, _ = fmt.Fprintln(out, "splice repl; :funcs lists functions, :reset drops bindings, :quit exits")
	for {
		input, err := prompt.Prompt("splice> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		prompt.AppendHistory(input)

		switch input {
		case ":quit", ":q":
			return nil
		case ":reset":
			session.Reset()
			continue
		case ":funcs":
			registry := types.Global()
			for _, name := range names {
				_, _ = fmt.Fprintln(out, registry.PrettySignature(name))
			}
			continue
		}

		display, err := session.Eval(input)
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "%s%v\n", colorize("error: ", colorRed, useColor), err)
			continue
		}
		if display != "" {
			_, _ = fmt.Fprintln(out, display)
		}
	}
}

// historyPath places the repl history in the user cache directory, or
// disables history when there is none.
func historyPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "splice_history")
}
