package expand

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/rstexpand/pkg/render"
	"github.com/yaklabco/rstexpand/pkg/resolve"
	"github.com/yaklabco/rstexpand/pkg/rst"
)

// Policy decides how resolution and recursion failures propagate.
type Policy string

const (
	// PolicyLenient recovers locally: failed blocks stay in the output
	// unexpanded and the failure becomes a warning diagnostic.
	PolicyLenient Policy = "lenient"

	// PolicyStrict aborts the whole parse on the first resolution or
	// recursion failure.
	PolicyStrict Policy = "strict"
)

// IsValid reports whether the policy is one of the known values.
func (p Policy) IsValid() bool {
	switch p {
	case PolicyLenient, PolicyStrict, "":
		return true
	default:
		return false
	}
}

// OptionMembers is the directive option requesting member rendering.
const OptionMembers = "members"

// Options configures an Engine.
type Options struct {
	// Policy selects lenient (default) or strict failure handling.
	Policy Policy

	// MaxDepth bounds recursion levels beyond the initial directive.
	// Zero means DefaultMaxDepth.
	MaxDepth int

	// Renderer formats resolved objects. Nil means render.New().
	Renderer *render.Renderer
}

// Result is the outcome of one engine run over one document.
type Result struct {
	// Lines is the expanded line sequence.
	Lines []string

	// Diagnostics lists every reported problem, in scan order.
	Diagnostics []Diagnostic

	// Blocks is the number of directive blocks successfully expanded,
	// nested expansions included.
	Blocks int
}

// HasErrors reports whether any diagnostic carries error severity.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Engine expands auto directives in line buffers. It holds only immutable
// configuration; every Expand call gets fresh per-parse state, so one
// engine can serve many documents sequentially.
type Engine struct {
	resolver resolve.Resolver
	renderer *render.Renderer
	policy   Policy
	maxDepth int
}

// NewEngine creates an Engine over the given resolver.
func NewEngine(resolver resolve.Resolver, opts Options) *Engine {
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.New()
	}
	policy := opts.Policy
	if policy == "" {
		policy = PolicyLenient
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Engine{
		resolver: resolver,
		renderer: renderer,
		policy:   policy,
		maxDepth: maxDepth,
	}
}

// Expand runs the engine over buf, mutating it in place, and returns the
// expanded lines plus diagnostics. Under strict policy the first failure
// aborts with an error; the buffer is still left in a consistent state and
// the partial result is returned alongside the error.
func (e *Engine) Expand(ctx context.Context, buf *rst.Buffer) (*Result, error) {
	run := &run{
		engine:   e,
		resolver: resolve.Cached(e.resolver),
	}
	err := run.expand(ctx, buf, newExpansionContext(e.maxDepth), docContext{})

	result := &Result{
		Lines:       buf.Lines(),
		Diagnostics: run.diags,
		Blocks:      run.blocks,
	}
	return result, err
}

// run is the state of a single engine run. It exists for one document and
// is discarded afterwards.
type run struct {
	engine   *Engine
	resolver resolve.Resolver
	diags    []Diagnostic
	blocks   int
}

// engineState is the scanner position in the expansion state machine.
type engineState int

const (
	stateScanning engineState = iota
	stateDelimiting
	stateResolving
	stateSplicing
	stateDone
)

// expand walks buf through the SCANNING / DELIMITING / RESOLVING /
// SPLICING states until no directive marker remains. It is re-entered for
// rendered output with an incremented depth on ec.
func (r *run) expand(ctx context.Context, buf *rst.Buffer, ec *expansionContext, dc docContext) error {
	state := stateScanning
	index := 0
	var block *rst.DirectiveBlock
	var rendered []string

	for state != stateDone {
		switch state {
		case stateScanning:
			if index >= buf.Len() {
				state = stateDone
				continue
			}
			marker, ok := rst.ParseMarker(buf.At(index).Text)
			if ok {
				dc.observe(marker)
				if rst.IsAutoDirective(marker.Name) {
					state = stateDelimiting
					continue
				}
			}
			index++

		case stateDelimiting:
			blk, err := rst.Delimit(buf, index)
			if err != nil {
				// Recovered locally: skip the marker line, keep scanning.
				r.report(Diagnostic{
					Kind:    KindMalformedDirective,
					Line:    buf.At(index).Pos,
					Message: err.Error(),
				})
				index++
				state = stateScanning
				continue
			}
			block = blk
			state = stateResolving

		case stateResolving:
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("expansion cancelled: %w", err)
			}
			lines, expanded, err := r.resolveBlock(ctx, buf, block, ec, dc)
			if err != nil {
				return err
			}
			if !expanded {
				// Block stays as-is; resume scanning right after it.
				index = block.End
				state = stateScanning
				continue
			}
			rendered = lines
			state = stateSplicing

		case stateSplicing:
			buf.Splice(block.Start, block.End, rendered)
			index = block.Start + len(rendered)
			r.blocks++
			state = stateScanning
		}
	}
	return nil
}

// resolveBlock produces the replacement lines for a directive block.
// expanded is false when the block must be left untouched (lenient
// resolution failure); err is non-nil only under strict policy or
// cancellation.
func (r *run) resolveBlock(
	ctx context.Context,
	buf *rst.Buffer,
	block *rst.DirectiveBlock,
	ec *expansionContext,
	dc docContext,
) (lines []string, expanded bool, err error) {
	pos := buf.At(block.Start).Pos

	if ec.atLimit() {
		diag := Diagnostic{
			Kind:      KindRecursionLimit,
			Line:      pos,
			Directive: block.Name,
			Name:      block.Arg,
			Message:   fmt.Sprintf("expansion depth limit reached at %q", block.Arg),
		}
		if err := r.report(diag); err != nil {
			return nil, false, err
		}
		return []string{truncationLine(block.Indent, "depth limit reached: "+block.Arg)}, true, nil
	}

	if block.Name == rst.DirectiveAutosummary {
		return r.resolveSummary(ctx, block, pos)
	}

	obj, resErr := r.resolveQualified(ctx, block.Arg, dc)
	if resErr != nil {
		diag := Diagnostic{
			Kind:      KindResolutionError,
			Line:      pos,
			Directive: block.Name,
			Name:      block.Arg,
			Message:   resErr.Error(),
		}
		if err := r.report(diag); err != nil {
			return nil, false, fmt.Errorf("line %d: %w", pos, resErr)
		}
		return nil, false, nil
	}

	if !ec.enter(obj.Name) {
		diag := Diagnostic{
			Kind:      KindCircularReference,
			Line:      pos,
			Directive: block.Name,
			Name:      obj.Name,
			Message:   fmt.Sprintf("circular reference to %q", obj.Name),
		}
		if err := r.report(diag); err != nil {
			return nil, false, err
		}
		return []string{truncationLine(block.Indent, "circular reference to "+obj.Name)}, true, nil
	}
	defer ec.leave(obj.Name)

	lines = r.engine.renderer.Lines(obj, block.Indent, block.HasOption(OptionMembers))

	// Rendered documentation may itself contain auto directives; expand
	// them one level down with the same run state.
	sub := rst.NewBuffer(lines)
	ec.depth++
	subErr := r.expand(ctx, sub, ec, dc)
	ec.depth--
	if subErr != nil {
		return nil, false, subErr
	}
	return sub.Lines(), true, nil
}

// resolveSummary renders an autosummary block: one summary line per named
// object, in input order. Names that fail to resolve keep their original
// form in the output and produce a diagnostic each.
func (r *run) resolveSummary(ctx context.Context, block *rst.DirectiveBlock, pos int) ([]string, bool, error) {
	names := block.Args
	if len(names) == 0 && block.Arg != "" {
		names = []string{block.Arg}
	}

	lines := make([]string, 0, len(names))
	for _, name := range names {
		obj, resErr := r.resolver.Resolve(ctx, name)
		if resErr != nil {
			diag := Diagnostic{
				Kind:      KindResolutionError,
				Line:      pos,
				Directive: block.Name,
				Name:      name,
				Message:   resErr.Error(),
			}
			if err := r.report(diag); err != nil {
				return nil, false, fmt.Errorf("line %d: %w", pos, resErr)
			}
			lines = append(lines, pad(block.Indent, name))
			continue
		}
		lines = append(lines, r.engine.renderer.SummaryLine(obj, block.Indent))
	}
	return lines, true, nil
}

// resolveQualified tries the document-context qualifications of a name in
// most-specific-first order and returns the first success. The returned
// error is the failure for the name exactly as written.
func (r *run) resolveQualified(ctx context.Context, name string, dc docContext) (*resolve.Object, error) {
	var lastErr error
	for _, candidate := range dc.candidates(name) {
		obj, err := r.resolver.Resolve(ctx, candidate)
		if err == nil {
			return obj, nil
		}
		if candidate == name || lastErr == nil {
			lastErr = err
		}
	}
	if lastErr == nil {
		lastErr = &resolve.ResolutionError{Name: name, Reason: "empty name"}
	}
	return nil, lastErr
}

// report records a diagnostic. Under strict policy the diagnostic is
// escalated to error severity and an abort error is returned; under
// lenient policy it is recorded as a warning and expansion continues.
func (r *run) report(diag Diagnostic) error {
	if r.engine.policy == PolicyStrict {
		diag.Severity = SeverityError
		r.diags = append(r.diags, diag)
		return errors.New(diag.String())
	}
	diag.Severity = SeverityWarning
	r.diags = append(r.diags, diag)
	return nil
}

// truncationLine is the marker spliced in place of a block that could not
// be expanded further. It is a comment line, so re-running expansion on
// the output leaves it alone.
func truncationLine(indent int, reason string) string {
	return pad(indent, ".. expansion truncated: "+reason)
}

func pad(indent int, text string) string {
	if text == "" {
		return ""
	}
	padding := make([]byte, indent)
	for i := range padding {
		padding[i] = ' '
	}
	return string(padding) + text
}
