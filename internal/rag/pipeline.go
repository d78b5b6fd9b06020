package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"coursechat/internal/provider"
	"coursechat/internal/rounds"
	"coursechat/internal/telemetry"
	"coursechat/internal/vectorstore"
	"coursechat/session"
	"coursechat/tools"
)

// systemPrompt steers the model's tool choice. Prior conversation, when
// present, is appended under a "Previous conversation:" block.
const systemPrompt = `You are an assistant for a library of course materials, with tools to search course content and fetch course outlines.

Tool use:
- Use search_course_content for questions about specific course material.
- Use get_course_outline when asked for a course's structure, lesson list, or links.
- Up to two sequential tool calls are available per query; let an earlier result inform whether another lookup is needed.
- Answer general-knowledge questions directly, without tools.
- If the tools return nothing relevant, say so plainly instead of guessing.

Answers must be brief, accurate, and free of meta-commentary: no mention of tools, searches, or reasoning steps. Provide only the direct answer to what was asked.`

// Options configures a Pipeline. Zero values select the defaults.
type Options struct {
	Model      anthropic.Model
	MaxRounds  int
	MaxHistory int // exchanges kept per session
}

// Pipeline composes the session store, tool registry, and round controller
// into the one externally callable query operation.
type Pipeline struct {
	controller *rounds.Controller
	registry   *tools.Registry
	sessions   *session.Store
	store      vectorstore.Store
	maxRounds  int
}

func New(client *anthropic.Client, store vectorstore.Store, opts Options) *Pipeline {
	model := opts.Model
	if model == "" {
		model = provider.DefaultModel
	}
	maxRounds := opts.MaxRounds
	if maxRounds <= 0 {
		maxRounds = provider.DefaultMaxRounds
	}

	registry := tools.NewRegistry()
	registry.Register(tools.NewContentSearch(store))
	registry.Register(tools.NewCourseOutline(store))

	return &Pipeline{
		controller: rounds.New(client, model),
		registry:   registry,
		sessions:   session.NewStore(opts.MaxHistory),
		store:      store,
		maxRounds:  maxRounds,
	}
}

// Query answers one question, optionally continuing the given session.
// Completion-service faults propagate unchanged; there is no retry here.
func (p *Pipeline) Query(ctx context.Context, text, sessionID string) (string, []tools.Citation, error) {
	ctx = telemetry.WithQueryID(ctx, fmt.Sprintf("query-%d", time.Now().UnixNano()))

	system := systemPrompt
	if sessionID != "" {
		if history, ok := p.sessions.History(sessionID); ok {
			system = fmt.Sprintf("%s\n\nPrevious conversation:\n%s", systemPrompt, history)
		}
	}

	prompt := fmt.Sprintf("Answer this question about course materials: %s", text)
	res, err := p.controller.Run(ctx, prompt, system, p.registry.Definitions(), p.registry, p.maxRounds)
	if err != nil {
		return "", nil, err
	}

	// Citations come back with the run; the registry slot is reset so the
	// next query starts clean.
	p.registry.ResetCitations()

	if sessionID != "" {
		p.sessions.AddExchange(sessionID, text, res.Answer)
	}
	return res.Answer, res.Citations, nil
}

// CourseStats summarizes the loaded corpus.
type CourseStats struct {
	TotalCourses int      `json:"total_courses"`
	CourseTitles []string `json:"course_titles"`
}

func (p *Pipeline) Analytics() CourseStats {
	return CourseStats{
		TotalCourses: p.store.CourseCount(),
		CourseTitles: p.store.CourseTitles(),
	}
}

// NewSession allocates a session id for follow-up continuity.
func (p *Pipeline) NewSession() string { return p.sessions.New() }

// ClearSession drops all history for id; unknown ids are a no-op.
func (p *Pipeline) ClearSession(id string) { p.sessions.Clear(id) }

// Sessions exposes the underlying store for persistence at the CLI edge.
func (p *Pipeline) Sessions() *session.Store { return p.sessions }

// Registry exposes the tool catalog, mainly for wiring checks and tests.
func (p *Pipeline) Registry() *tools.Registry { return p.registry }
