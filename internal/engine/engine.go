// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package engine

import (
	"errors"
	"strings"

	"nickandperla.net/golp/internal/eval"
	"nickandperla.net/golp/internal/expr"
	"nickandperla.net/golp/internal/parser"
	"nickandperla.net/golp/internal/record"
)

// Options configures an Engine for one invocation.
type Options struct {
	// Source is the one-pass record producer for the input.
	Source record.Producer
	// Filename is bound into the environment for the program to read.
	Filename string
	// Printer is the initial printer binding, chosen by the output flag.
	Printer eval.PrinterVal
	// Bindings are extra scope-free values, such as the printer palette.
	Bindings map[string]eval.Value
	// RecordSep is the input record separator, used to reconstruct the
	// whole-input text when Source cannot reproduce it verbatim. Empty
	// means newline.
	RecordSep string
}

// Engine runs a user program against one input stream. The input is
// pulled at most once; a replayable sequence buffers produced records so
// the table bindings and the record cursor can share it.
type Engine struct {
	src       record.Producer
	seq       *record.Sequence
	cursor    *record.Cursor
	env       *eval.Env
	arbiter   *Arbiter
	recordSep string
}

// New builds an engine and its environment over the given source.
func New(opts Options) *Engine {
	sep := opts.RecordSep
	if sep == "" {
		sep = "\n"
	}
	e := &Engine{
		src:       opts.Source,
		seq:       record.NewSequence(opts.Source),
		arbiter:   &Arbiter{},
		env:       eval.NewEnv(),
		recordSep: sep,
	}
	e.cursor = record.NewCursor(e.seq.Iter(), func() error {
		return e.arbiter.Observe(RecordScoped, "record")
	})

	for name, fn := range eval.Builtins() {
		e.env.Bind(name, fn)
	}
	for name, v := range opts.Bindings {
		e.env.Bind(name, v)
	}
	e.env.Bind("filename", eval.Str{Value: opts.Filename})
	e.env.Bind("printer", opts.Printer)
	e.env.Bind("header", headerValue(e.seq.Header()))

	e.bindTable("records", func() (eval.Value, error) {
		return e.recordSeq(), nil
	})
	e.bindTable("lines", func() (eval.Value, error) {
		return e.lineSeq(), nil
	})
	for _, name := range []string{"contents", "file"} {
		e.bindTable(name, e.wholeInput)
	}

	e.bindRecord("record", "", func(r record.Record) eval.Value {
		return eval.RecordVal{Rec: r}
	})
	e.bindRecord("fields", "fields", func(r record.Record) eval.Value {
		items := make([]eval.Value, len(r.Fields))
		for i, f := range r.Fields {
			items[i] = eval.Str{Value: f}
		}
		return eval.List{Items: items}
	})
	e.bindRecord("line", "line", func(r record.Record) eval.Value {
		return eval.Str{Value: r.Raw}
	})
	return e
}

// Scope reports the scope the program locked in, Undecided until a
// scope-tagged binding is first accessed.
func (e *Engine) Scope() ScopeState {
	return e.arbiter.State()
}

// Run parses and evaluates the program, then hands the final result to
// the printer binding. A record-scoped program yields a lazy sequence of
// per-record results that the printer drives; exhaustion of the input
// before the first record produces no output and no error.
func (e *Engine) Run(src string) error {
	prog, err := parser.Parse(src)
	if err != nil {
		return &UserProgramError{Err: err}
	}

	r0, err := eval.Evaluate(prog, e.env)
	if err != nil {
		if errors.Is(err, record.ErrNoMoreRecords) {
			return nil
		}
		var mixed *MixedScopeError
		if errors.As(err, &mixed) {
			return mixed
		}
		return &UserProgramError{Err: err}
	}

	result := r0
	if e.arbiter.State() == RecordScoped {
		result = e.resultSeq(prog, r0)
	}
	return e.print(result)
}

// resultSeq is the lazy per-record result stream: the trial round's value
// first, then one more round per remaining record. It is one-shot; the
// input underneath is already partially consumed.
func (e *Engine) resultSeq(prog *expr.Program, first eval.Value) eval.Seq {
	delivered := false
	done := false
	return eval.NewOneShotSeq(func() (eval.Value, error) {
		if done {
			return nil, record.ErrNoMoreRecords
		}
		if !delivered {
			delivered = true
			return first, nil
		}
		if err := e.cursor.Advance(); err != nil {
			done = true
			if errors.Is(err, record.ErrNoMoreRecords) {
				return nil, record.ErrNoMoreRecords
			}
			return nil, err
		}
		v, err := eval.Evaluate(prog, e.env)
		if err != nil {
			done = true
			if errors.Is(err, record.ErrNoMoreRecords) {
				return nil, record.ErrNoMoreRecords
			}
			return nil, &UserProgramError{Err: err}
		}
		return v, nil
	})
}

// print resolves the printer binding at the very end of the run, since
// the program may have reassigned it, and checks the contract before any
// output is emitted.
func (e *Engine) print(result eval.Value) error {
	bound, ok := e.env.Peek("printer")
	if !ok {
		return &PrinterContractError{Value: "nothing"}
	}
	pv, isPrinter := bound.(eval.PrinterVal)
	if !isPrinter {
		return &PrinterContractError{Value: eval.Repr(bound)}
	}
	return pv.P.PrintResult(result, e.headerOverride())
}

func (e *Engine) headerOverride() []string {
	v, ok := e.env.Peek("header")
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case eval.List:
		out := make([]string, len(t.Items))
		for i, item := range t.Items {
			out[i] = eval.Display(item)
		}
		return out
	case eval.RecordVal:
		return t.Rec.Fields
	}
	return nil
}

func (e *Engine) bindTable(name string, produce func() (eval.Value, error)) {
	e.env.BindLazy(name, eval.NewLazy(produce, true, func() error {
		return e.arbiter.Observe(TableScoped, name)
	}))
}

// bindRecord exposes the shared cursor under an alias. The cursor fires
// its own observer on Get; aliases with a distinct name observe under it
// as well so a scope conflict reports the binding actually written.
func (e *Engine) bindRecord(name, observed string, view func(record.Record) eval.Value) {
	var onAccess func() error
	if observed != "" {
		onAccess = func() error {
			return e.arbiter.Observe(RecordScoped, observed)
		}
	}
	e.env.BindLazy(name, eval.NewLazy(func() (eval.Value, error) {
		r, err := e.cursor.Get()
		if err != nil {
			return nil, err
		}
		return view(r), nil
	}, false, onAccess))
}

func (e *Engine) recordSeq() eval.Value {
	return eval.NewSeq(func() eval.IterFunc {
		it := e.seq.Iter()
		return func() (eval.Value, error) {
			r, err := it.Next()
			if err != nil {
				return nil, err
			}
			return eval.RecordVal{Rec: r}, nil
		}
	})
}

func (e *Engine) lineSeq() eval.Value {
	return eval.NewSeq(func() eval.IterFunc {
		it := e.seq.Iter()
		return func() (eval.Value, error) {
			r, err := it.Next()
			if err != nil {
				return nil, err
			}
			return eval.Str{Value: r.Raw}, nil
		}
	})
}

// wholeInput yields the input text. The stream is drained through the
// sequence first, so the one-pass invariant holds and a raw-capturing
// producer has seen every byte; producers without raw capture fall back
// to rejoining record text with the configured separator.
func (e *Engine) wholeInput() (eval.Value, error) {
	recs, err := e.seq.All()
	if err != nil {
		return nil, err
	}
	if rp, ok := e.src.(record.RawProducer); ok {
		return eval.Str{Value: rp.Contents()}, nil
	}
	raws := make([]string, len(recs))
	for i, r := range recs {
		raws[i] = r.Raw
	}
	return eval.Str{Value: strings.Join(raws, e.recordSep)}, nil
}

func headerValue(names []string) eval.Value {
	if names == nil {
		return eval.Null{}
	}
	items := make([]eval.Value, len(names))
	for i, n := range names {
		items[i] = eval.Str{Value: n}
	}
	return eval.List{Items: items}
}
