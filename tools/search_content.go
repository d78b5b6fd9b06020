package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"coursechat/internal/vectorstore"
)

type ContentSearchInput struct {
	Query        string `json:"query" jsonschema_description:"What to search for in the course content."`
	CourseName   string `json:"course_name,omitempty" jsonschema_description:"Course title to scope the search to; partial names are resolved."`
	LessonNumber *int   `json:"lesson_number,omitempty" jsonschema_description:"Lesson number to scope the search to (e.g. 0 for the first lesson)."`
}

var ContentSearchInputSchema = GenerateSchema[ContentSearchInput]()

// ContentSearch searches course materials and cites every chunk it returns.
type ContentSearch struct {
	store vectorstore.Store
}

func NewContentSearch(store vectorstore.Store) *ContentSearch {
	return &ContentSearch{store: store}
}

func (t *ContentSearch) Definition() ToolDefinition {
	return ToolDefinition{
		Name:        "search_course_content",
		Description: "Search course materials for specific content, optionally scoped to one course and/or one lesson.",
		InputSchema: ContentSearchInputSchema,
	}
}

func (t *ContentSearch) Execute(ctx context.Context, input json.RawMessage) (string, []Citation, error) {
	var in ContentSearchInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(in.Query) == "" {
		return "", nil, fmt.Errorf("query is required")
	}

	courseTitle := ""
	if in.CourseName != "" {
		resolved, ok := t.store.ResolveCourseName(in.CourseName)
		if !ok {
			return fmt.Sprintf("No course found matching '%s'", in.CourseName), nil, nil
		}
		courseTitle = resolved
	}

	matches, err := t.store.Search(ctx, in.Query, courseTitle, in.LessonNumber)
	if err != nil {
		// Surface the backend's own message so the model can react to it.
		return err.Error(), nil, nil
	}
	if len(matches) == 0 {
		return noContentMessage(in.CourseName, in.LessonNumber), nil, nil
	}

	sections := make([]string, 0, len(matches))
	citations := make([]Citation, 0, len(matches))
	for _, m := range matches {
		label := m.CourseTitle
		if m.LessonNumber != nil {
			label = fmt.Sprintf("%s - Lesson %d", m.CourseTitle, *m.LessonNumber)
		}
		sections = append(sections, fmt.Sprintf("[%s]\n%s", label, m.Content))
		citations = append(citations, Citation{Text: label, URL: t.resolveLink(m)})
	}
	return strings.Join(sections, "\n\n"), citations, nil
}

// resolveLink is best-effort: a failed lookup leaves the citation without a
// link rather than failing the search.
func (t *ContentSearch) resolveLink(m vectorstore.Match) string {
	var (
		link string
		err  error
	)
	if m.LessonNumber != nil {
		link, err = t.store.LessonLink(m.CourseTitle, *m.LessonNumber)
	} else {
		link, err = t.store.CourseLink(m.CourseTitle)
	}
	if err != nil {
		return ""
	}
	return link
}

// noContentMessage names whichever filters were active on an empty result.
func noContentMessage(courseName string, lessonNumber *int) string {
	var b strings.Builder
	b.WriteString("No relevant content found")
	if courseName != "" {
		fmt.Fprintf(&b, " in course '%s'", courseName)
	}
	if lessonNumber != nil {
		fmt.Fprintf(&b, " in lesson %d", *lessonNumber)
	}
	b.WriteString(".")
	return b.String()
}
