package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"coursechat/internal/metrics"
	"coursechat/internal/telemetry"
)

// Registry holds the invocable tools and isolates their failures: Dispatch
// always yields a result, so one bad call cannot abort a multi-tool round.
type Registry struct {
	mu    sync.Mutex
	tools map[string]Tool
	order []string
	last  []Citation
}

// DispatchResult is the outcome of one tool invocation. Citations travel with
// the result so callers can do per-query bookkeeping without shared state.
type DispatchResult struct {
	Content   string
	IsError   bool
	Citations []Citation
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool under its definition name. Registering a duplicate name
// keeps the newer tool and surfaces a configuration warning, since silent
// shadowing is a likely source of bugs.
func (r *Registry) Register(t Tool) {
	name := t.Definition().Name
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; exists {
		fmt.Fprintf(os.Stderr, "warning: tool %q registered twice; keeping the newer registration\n", name)
		telemetry.Emit("tool_shadowed", map[string]any{"tool_name": name})
	} else {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
}

// Definitions returns every registered tool's definition in registration order.
func (r *Registry) Definitions() []ToolDefinition {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].Definition())
	}
	return out
}

// Dispatch runs the named tool. Unknown names and execution faults come back
// as error results, never as escaping errors or panics.
func (r *Registry) Dispatch(ctx context.Context, name string, input json.RawMessage) DispatchResult {
	r.mu.Lock()
	t, ok := r.tools[name]
	r.mu.Unlock()

	queryID, _ := telemetry.QueryIDFromContext(ctx)
	start := time.Now()

	if !ok {
		r.emitExec(name, queryID, start, len(input), "", "tool not found")
		return DispatchResult{Content: fmt.Sprintf("Tool '%s' not found", name), IsError: true}
	}

	content, citations, err := runTool(ctx, t, input)
	if err != nil {
		r.emitExec(name, queryID, start, len(input), "", err.Error())
		return DispatchResult{Content: fmt.Sprintf("Tool execution failed: %s", err), IsError: true}
	}
	r.emitExec(name, queryID, start, len(input), content, "")

	r.mu.Lock()
	r.last = append(r.last, citations...)
	r.mu.Unlock()

	return DispatchResult{Content: content, Citations: citations}
}

// runTool isolates tool panics as ordinary errors.
func runTool(ctx context.Context, t Tool, input json.RawMessage) (content string, citations []Citation, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()
	return t.Execute(ctx, input)
}

func (r *Registry) emitExec(name, queryID string, start time.Time, inputSize int, output, errStr string) {
	feats := metrics.CountOutput(output)
	fields := map[string]any{
		"tool_name":    name,
		"query_id":     queryID,
		"duration_ms":  time.Since(start).Milliseconds(),
		"input_size":   inputSize,
		"output_bytes": feats.Bytes,
		"output_words": feats.Words,
	}
	if errStr != "" {
		fields["error"] = errStr
	} else {
		fields["error"] = nil
	}
	telemetry.Emit("tool_exec", fields)
}

// LastCitations returns a copy of the citations gathered since the last reset.
func (r *Registry) LastCitations() []Citation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Citation, len(r.last))
	copy(out, r.last)
	return out
}

// ResetCitations clears the citation slot. Safe to call repeatedly; callers
// must reset after reading so the next query starts clean.
func (r *Registry) ResetCitations() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = nil
}
