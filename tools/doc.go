// Package tools defines the retrieval tool contracts and implementations.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema.
//   - Tool: the capability the registry dispatches to (structured arguments
//     in, formatted text out, citations as a by-product).
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - Retrieval tools: search_course_content, get_course_outline.
//   - Registry: ordered catalog with fault-isolating dispatch.
package tools
