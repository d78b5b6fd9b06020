package rounds

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"golang.org/x/sync/errgroup"

	"coursechat/internal/provider"
	"coursechat/internal/telemetry"
	"coursechat/tools"
)

// Fallback answers for rounds that stall without usable text.
const (
	noToolResultsFallback = "Tool execution failed"
	noTextFallback        = "No response generated"
)

// Controller drives the bounded multi-round protocol with the model:
// send the log, dispatch any requested tools, fold results back in, repeat.
// Termination is guaranteed: at most maxRounds tool rounds, then one forced
// tool-free call whose text is final even if the model asks for more tools.
type Controller struct {
	Client    *anthropic.Client
	Model     anthropic.Model
	MaxTokens int64
}

func New(client *anthropic.Client, model anthropic.Model) *Controller {
	return &Controller{Client: client, Model: model, MaxTokens: provider.MaxTokens}
}

// Result carries the final answer plus everything observed on the way there.
type Result struct {
	Answer    string
	Citations []tools.Citation
	Log       []anthropic.MessageParam
	Calls     int
}

// Run executes up to maxRounds tool rounds for one query. defs is the tool set
// advertised to the model (may be empty); reg dispatches the requests. Service
// faults are not masked; they propagate to the caller unchanged.
func (c *Controller) Run(ctx context.Context, query, system string, defs []tools.ToolDefinition, reg *tools.Registry, maxRounds int) (Result, error) {
	if maxRounds <= 0 {
		maxRounds = provider.DefaultMaxRounds
	}

	res := Result{
		Log: []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(query))},
	}
	queryID, _ := telemetry.QueryIDFromContext(ctx)

	msg, err := c.call(ctx, system, res.Log, defs)
	if err != nil {
		return Result{}, err
	}
	res.Calls++

	round := 0
	for {
		requests := toolUses(msg)
		telemetry.Emit("round_complete", map[string]any{
			"query_id":      queryID,
			"round":         round,
			"stop_reason":   string(msg.StopReason),
			"tool_requests": len(requests),
		})

		if msg.StopReason != anthropic.StopReasonToolUse {
			res.Answer = textOr(msg, noTextFallback)
			return res, nil
		}
		if len(requests) == 0 {
			// The model signalled tool use but carried no dispatchable
			// request; return the best partial text instead of looping.
			res.Answer = textOr(msg, noToolResultsFallback)
			return res, nil
		}

		res.Log = append(res.Log, msg.ToParam())
		blocks, citations := dispatchAll(ctx, reg, requests)
		res.Citations = append(res.Citations, citations...)
		res.Log = append(res.Log, anthropic.NewUserMessage(blocks...))
		round++

		if round >= maxRounds {
			// One forced tool-free call so the model must produce a terminal
			// answer; if it still asks for tools, only its text is used.
			final, err := c.call(ctx, system, res.Log, nil)
			if err != nil {
				return Result{}, err
			}
			res.Calls++
			res.Answer = textOr(final, noTextFallback)
			return res, nil
		}

		msg, err = c.call(ctx, system, res.Log, defs)
		if err != nil {
			return Result{}, err
		}
		res.Calls++
	}
}

func (c *Controller) call(ctx context.Context, system string, log []anthropic.MessageParam, defs []tools.ToolDefinition) (*anthropic.Message, error) {
	params := anthropic.MessageNewParams{
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: anthropic.Float(provider.Temperature),
		Messages:    log,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if len(defs) > 0 {
		params.Tools = anthropicTools(defs)
		params.ToolChoice = anthropic.ToolChoiceUnionParam{OfAuto: &anthropic.ToolChoiceAutoParam{}}
	}
	return c.Client.Messages.New(ctx, params)
}

// dispatchAll executes every request of one round through the registry.
// Requests are independent within a round, so they run concurrently; results
// are reassembled in request order for correlation with the message log.
func dispatchAll(ctx context.Context, reg *tools.Registry, requests []anthropic.ToolUseBlock) ([]anthropic.ContentBlockParamUnion, []tools.Citation) {
	results := make([]tools.DispatchResult, len(requests))
	g, gctx := errgroup.WithContext(ctx)
	for i, req := range requests {
		g.Go(func() error {
			input := json.RawMessage(req.JSON.Input.Raw())
			results[i] = reg.Dispatch(gctx, req.Name, input)
			return nil
		})
	}
	// Dispatch never returns an error; faults arrive as error results.
	_ = g.Wait()

	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(requests))
	var citations []tools.Citation
	for i, req := range requests {
		blocks = append(blocks, anthropic.NewToolResultBlock(req.ID, results[i].Content, results[i].IsError))
		citations = append(citations, results[i].Citations...)
	}
	return blocks, citations
}

func anthropicTools(defs []tools.ToolDefinition) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(defs))
	for _, d := range defs {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        d.Name,
			Description: anthropic.String(d.Description),
			InputSchema: d.InputSchema,
		}})
	}
	return out
}

func toolUses(msg *anthropic.Message) []anthropic.ToolUseBlock {
	var out []anthropic.ToolUseBlock
	for _, block := range msg.Content {
		if tu, ok := block.AsAny().(anthropic.ToolUseBlock); ok {
			out = append(out, tu)
		}
	}
	return out
}

// textOr joins the message's text blocks, or returns fallback when there are none.
func textOr(msg *anthropic.Message, fallback string) string {
	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok && tb.Text != "" {
			parts = append(parts, tb.Text)
		}
	}
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, "\n")
}
