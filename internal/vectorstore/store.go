package vectorstore

import "context"

// Lesson is one numbered entry in a course outline.
type Lesson struct {
	Number int    `json:"lesson_number"`
	Title  string `json:"title"`
	Link   string `json:"lesson_link,omitempty"`
}

// Course is the metadata recorded for one course.
type Course struct {
	Title      string   `json:"title"`
	Link       string   `json:"course_link,omitempty"`
	Instructor string   `json:"instructor,omitempty"`
	Lessons    []Lesson `json:"lessons"`
}

// Chunk is one indexed piece of course content.
type Chunk struct {
	Content      string `json:"content"`
	CourseTitle  string `json:"course_title"`
	LessonNumber *int   `json:"lesson_number,omitempty"`
}

// Match is one scored chunk returned from a search, ordered best-first.
type Match struct {
	Content      string
	CourseTitle  string
	LessonNumber *int // nil when the chunk is not tied to a particular lesson
	Score        float64
}

// Store is the retrieval backend the tools query. Implementations may sit on a
// real vector engine; MemStore is the in-process lexical one used by the CLI
// and tests.
type Store interface {
	// Search returns matches for query, optionally scoped to one course and/or
	// lesson. courseTitle, when non-empty, must be canonical (see
	// ResolveCourseName). A nil lessonNumber means unfiltered.
	Search(ctx context.Context, query, courseTitle string, lessonNumber *int) ([]Match, error)

	// ResolveCourseName maps a partial or fuzzy course name to its canonical
	// title. The second return is false when nothing matches.
	ResolveCourseName(partial string) (string, bool)

	// Outline returns the full course metadata for a canonical title.
	Outline(courseTitle string) (Course, bool)

	LessonLink(courseTitle string, lessonNumber int) (string, error)
	CourseLink(courseTitle string) (string, error)

	CourseCount() int
	CourseTitles() []string
}
