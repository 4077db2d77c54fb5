// Package evalprog is the subprogram of esval that evaluates ESTree documents.
package evalprog

import (
	"context"
	"fmt"
	"io"
	"os"

	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/ast/estree"
	"src.esval.dev/pkg/config"
	"src.esval.dev/pkg/diag"
	"src.esval.dev/pkg/env"
	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/eval/vals"
	"src.esval.dev/pkg/logutil"
	"src.esval.dev/pkg/prog"
	"src.esval.dev/pkg/realm"
	"src.esval.dev/pkg/store"
	"src.esval.dev/pkg/store/storedefs"
	"src.esval.dev/pkg/sys"
)

var logger = logutil.GetLogger("[evalprog] ")

// Program is the evaluation subprogram. It is always suitable, so it should
// come last in a prog.Composite.
type Program struct{}

// Run evaluates the documents named by args, or the document read from stdin
// when there are none. Each document is evaluated in the same realm, so
// global properties created by one are visible to the next. Evaluation stops
// at the first document that fails to decode or completes abruptly.
func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if err := setColor(fds[2], f.Color); err != nil {
		return err
	}
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	var st store.DBStore
	if cfg.History != "" {
		st, err = store.NewStore(cfg.History)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot open history:", err)
		} else {
			defer st.Close()
		}
	}

	if f.ShowHistory > 0 {
		if st == nil {
			return prog.BadUsage("-show-history requires history; set it in the configuration or use -history")
		}
		return showHistory(fds[1], st, f.ShowHistory)
	}

	var docs []document
	if f.Replay > 0 {
		if st == nil {
			return prog.BadUsage("-replay requires history; set it in the configuration or use -history")
		}
		entry, err := st.Entry(f.Replay)
		if err != nil {
			return fmt.Errorf("history entry %d: %w", f.Replay, err)
		}
		docs = []document{{name: entry.Name, text: entry.Document}}
	} else {
		docs, err = readDocuments(fds[0], args)
		if err != nil {
			return err
		}
	}

	interrupts, stopListening := realm.ListenInterrupts()
	defer stopListening()
	ev := &evaluator{
		cfg: cfg, checkOnly: f.CheckOnly,
		stdout: fds[1], stderr: fds[2],
		interrupts: interrupts,
		realm: realm.New(realm.Options{
			MaxCallDepth: cfg.MaxCallDepth,
			Evaler:       &eval.Evaler{MaxDepth: cfg.MaxDepth},
		}),
	}
	if st != nil {
		ev.history = st
	}
	for _, doc := range docs {
		if !ev.run(doc) {
			return prog.Exit(1)
		}
	}
	return nil
}

// Colored diagnostics are used on terminals unless NO_COLOR is set.
func setColor(stderr *os.File, when string) error {
	switch when {
	case "always":
		diag.UseColor(true)
	case "never":
		diag.UseColor(false)
	case "auto", "":
		diag.UseColor(sys.IsATTY(stderr.Fd()) && os.Getenv(env.NO_COLOR) == "")
	default:
		return prog.BadUsage(fmt.Sprintf("invalid value for -color: %q", when))
	}
	return nil
}

// loadConfig loads the configuration file and applies the flags that were
// given on the command line on top of it.
func loadConfig(f *prog.Flags) (*config.Config, error) {
	cfg := config.Default()
	if !f.NoConfig {
		path, ok := f.Config, f.Config != ""
		if !ok {
			path, ok = config.DefaultPath()
		}
		if ok {
			var err error
			cfg, err = config.Load(path)
			if err != nil {
				return nil, err
			}
		}
	}
	if f.IsSet("strict") {
		cfg.Strict = f.Strict
	}
	if f.IsSet("max-steps") {
		cfg.Budget.MaxSteps = f.MaxSteps
	}
	if f.IsSet("timeout") {
		cfg.Budget.Timeout = f.Timeout
	}
	if f.IsSet("max-depth") {
		cfg.MaxDepth = f.MaxDepth
	}
	if f.IsSet("max-call-depth") {
		cfg.MaxCallDepth = f.MaxCallDepth
	}
	if f.IsSet("history") {
		cfg.History = f.History
	}
	if f.NoHistory {
		cfg.History = ""
	}
	if err := cfg.Validate(); err != nil {
		return nil, prog.BadUsage(err.Error())
	}
	return cfg, nil
}

type evaluator struct {
	cfg        *config.Config
	checkOnly  bool
	stdout     io.Writer
	stderr     io.Writer
	interrupts <-chan struct{}
	realm      *realm.Realm
	// Nil when history is off.
	history storedefs.Store
}

// run decodes and evaluates one document, and reports whether it succeeded.
func (ev *evaluator) run(doc document) bool {
	d, err := estree.Decode(doc.name, doc.text)
	if err != nil {
		diag.ShowError(ev.stderr, err)
		return false
	}
	if ev.checkOnly {
		fmt.Fprintln(ev.stdout, ast.Format(d.Root))
		return true
	}

	ctx := context.Background()
	if ev.cfg.Budget.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ev.cfg.Budget.Timeout)
		defer cancel()
	}
	budget := realm.NewBudget(ctx, ev.cfg.Budget.MaxSteps, ev.interrupts)
	strict := ev.cfg.Strict
	if script, ok := d.Root.(*ast.Script); ok && script.Strict {
		strict = true
	}
	c := ev.realm.Evaler().Eval(
		eval.Source{Name: doc.name, Code: d.Source}, d.Root, ev.realm.NewContext(strict, budget))
	logger.Printf("%s: %v completion after %d steps", doc.name, c.Kind, budget.Steps())
	ev.record(doc, c)

	if c.Kind == eval.Normal {
		fmt.Fprintln(ev.stdout, vals.Repr(c.Value))
		return true
	}
	diag.ShowError(ev.stderr, &c)
	return false
}

func (ev *evaluator) record(doc document, c eval.Completion) {
	if ev.history == nil {
		return
	}
	entry := storedefs.Entry{Name: doc.name, Document: doc.text, Kind: c.Kind.String()}
	if c.Kind == eval.Normal {
		entry.Result = vals.Repr(c.Value)
	} else {
		entry.Result = c.Error()
	}
	if _, err := ev.history.AddEntry(entry); err != nil {
		fmt.Fprintln(ev.stderr, "Warning: cannot record history:", err)
	}
}
