// Package rounds coordinates message exchange with the Anthropic Messages API
// and dispatches tool calls through the registry.
//
// Invariants:
//   - The message log alternates user -> assistant -> user within one query
//     and never reorders or drops earlier entries.
//   - Every tool_use block gets exactly one tool_result before the next call.
//   - Total service calls per query never exceed maxRounds + 1; the final call
//     at the limit advertises no tools, so termination is unconditional.
//
// Flow:
//
//	user(query) -> assistant(tool_use...) -> user(tool_result...) -> assistant(text)
package rounds
