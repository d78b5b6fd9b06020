package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"coursechat/internal/vectorstore"
)

type CourseOutlineInput struct {
	CourseTitle string `json:"course_title" jsonschema_description:"Course title to outline; partial names are resolved."`
}

var CourseOutlineInputSchema = GenerateSchema[CourseOutlineInput]()

// CourseOutline returns a course's title, link, and numbered lesson list.
type CourseOutline struct {
	store vectorstore.Store
}

func NewCourseOutline(store vectorstore.Store) *CourseOutline {
	return &CourseOutline{store: store}
}

func (t *CourseOutline) Definition() ToolDefinition {
	return ToolDefinition{
		Name:        "get_course_outline",
		Description: "Get a course outline: the course title, its link, and every lesson number and title.",
		InputSchema: CourseOutlineInputSchema,
	}
}

func (t *CourseOutline) Execute(ctx context.Context, input json.RawMessage) (string, []Citation, error) {
	var in CourseOutlineInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(in.CourseTitle) == "" {
		return "", nil, fmt.Errorf("course_title is required")
	}

	title, ok := t.store.ResolveCourseName(in.CourseTitle)
	if !ok {
		return fmt.Sprintf("No course found matching '%s'", in.CourseTitle), nil, nil
	}
	course, ok := t.store.Outline(title)
	if !ok {
		return fmt.Sprintf("No course found matching '%s'", in.CourseTitle), nil, nil
	}

	// One line per lesson, numbered; the model pattern-matches this layout.
	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\n", course.Title)
	if course.Link != "" {
		fmt.Fprintf(&b, "Link: %s\n", course.Link)
	}
	fmt.Fprintf(&b, "Lessons (%d):\n", len(course.Lessons))
	for _, l := range course.Lessons {
		fmt.Fprintf(&b, "  %d. %s\n", l.Number, l.Title)
	}

	return strings.TrimRight(b.String(), "\n"), []Citation{{Text: course.Title, URL: course.Link}}, nil
}
