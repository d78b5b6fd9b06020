package vectorstore_test

import (
	"context"
	"testing"

	"coursechat/internal/vectorstore"
)

func intptr(n int) *int { return &n }

func testStore(t *testing.T) *vectorstore.MemStore {
	t.Helper()
	s := vectorstore.NewMemStore()
	s.AddCourse(vectorstore.Course{
		Title:      "Test Course: Machine Learning Basics",
		Link:       "https://example.com/course",
		Instructor: "Dr. Test",
		Lessons: []vectorstore.Lesson{
			{Number: 0, Title: "Introduction", Link: "https://example.com/lesson0"},
			{Number: 1, Title: "Basic Concepts", Link: "https://example.com/lesson1"},
			{Number: 2, Title: "Advanced Topics"},
		},
	}, []vectorstore.Chunk{
		{Content: "This is an introduction to machine learning. We'll cover basic concepts and terminology.", CourseTitle: "Test Course: Machine Learning Basics", LessonNumber: intptr(0)},
		{Content: "Basic concepts include supervised and unsupervised learning methods.", CourseTitle: "Test Course: Machine Learning Basics", LessonNumber: intptr(1)},
		{Content: "Advanced topics cover neural networks and deep learning architectures.", CourseTitle: "Test Course: Machine Learning Basics", LessonNumber: intptr(2)},
		{Content: "Course overview content about machine learning in general.", CourseTitle: "Test Course: Machine Learning Basics"},
	})
	s.AddCourse(vectorstore.Course{
		Title: "Advanced Deep Learning",
		Lessons: []vectorstore.Lesson{
			{Number: 1, Title: "Transformers"},
		},
	}, []vectorstore.Chunk{
		{Content: "Transformers rely on attention mechanisms.", CourseTitle: "Advanced Deep Learning", LessonNumber: intptr(1)},
	})
	return s
}

func TestMemStore_Search_Basic(t *testing.T) {
	s := testStore(t)
	matches, err := s.Search(context.Background(), "introduction", "", nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}
	if matches[0].CourseTitle != "Test Course: Machine Learning Basics" {
		t.Fatalf("unexpected course: %q", matches[0].CourseTitle)
	}
	if matches[0].LessonNumber == nil || *matches[0].LessonNumber != 0 {
		t.Fatalf("expected lesson 0, got %v", matches[0].LessonNumber)
	}
}

func TestMemStore_Search_CourseFilter(t *testing.T) {
	s := testStore(t)
	matches, err := s.Search(context.Background(), "learning", "Advanced Deep Learning", nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, m := range matches {
		if m.CourseTitle != "Advanced Deep Learning" {
			t.Fatalf("course filter leaked: got match from %q", m.CourseTitle)
		}
	}
}

func TestMemStore_Search_LessonFilter(t *testing.T) {
	s := testStore(t)
	matches, err := s.Search(context.Background(), "learning", "", intptr(2))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected a lesson 2 match")
	}
	for _, m := range matches {
		if m.LessonNumber == nil || *m.LessonNumber != 2 {
			t.Fatalf("lesson filter leaked: got %v", m.LessonNumber)
		}
	}
}

func TestMemStore_Search_NoMatches(t *testing.T) {
	s := testStore(t)
	matches, err := s.Search(context.Background(), "quantum chromodynamics", "", nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}
}

func TestMemStore_Search_EmptyQuery_ReturnsError(t *testing.T) {
	s := testStore(t)
	if _, err := s.Search(context.Background(), "   ", "", nil); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestMemStore_ResolveCourseName(t *testing.T) {
	s := testStore(t)
	cases := []struct {
		partial string
		want    string
		ok      bool
	}{
		{"Test Course: Machine Learning Basics", "Test Course: Machine Learning Basics", true},
		{"machine learning", "Test Course: Machine Learning Basics", true},
		{"basics machine", "Test Course: Machine Learning Basics", true},
		{"deep learning", "Advanced Deep Learning", true},
		{"underwater basket weaving", "", false},
		{"  ", "", false},
	}
	for _, c := range cases {
		got, ok := s.ResolveCourseName(c.partial)
		if ok != c.ok || got != c.want {
			t.Fatalf("resolve %q: got (%q, %t) want (%q, %t)", c.partial, got, ok, c.want, c.ok)
		}
	}
}

func TestMemStore_Links(t *testing.T) {
	s := testStore(t)

	link, err := s.LessonLink("Test Course: Machine Learning Basics", 0)
	if err != nil {
		t.Fatalf("lesson link: %v", err)
	}
	if link != "https://example.com/lesson0" {
		t.Fatalf("unexpected lesson link: %q", link)
	}

	// Lesson exists but has no recorded link.
	if _, err := s.LessonLink("Test Course: Machine Learning Basics", 2); err == nil {
		t.Fatal("expected error for linkless lesson")
	}
	if _, err := s.LessonLink("Test Course: Machine Learning Basics", 9); err == nil {
		t.Fatal("expected error for unknown lesson")
	}

	link, err = s.CourseLink("Test Course: Machine Learning Basics")
	if err != nil {
		t.Fatalf("course link: %v", err)
	}
	if link != "https://example.com/course" {
		t.Fatalf("unexpected course link: %q", link)
	}
	if _, err := s.CourseLink("Advanced Deep Learning"); err == nil {
		t.Fatal("expected error for linkless course")
	}
}

func TestMemStore_Analytics(t *testing.T) {
	s := testStore(t)
	if got := s.CourseCount(); got != 2 {
		t.Fatalf("course count: got %d want 2", got)
	}
	titles := s.CourseTitles()
	if len(titles) != 2 || titles[0] != "Test Course: Machine Learning Basics" || titles[1] != "Advanced Deep Learning" {
		t.Fatalf("unexpected titles: %v", titles)
	}
}

func TestMemStore_Outline(t *testing.T) {
	s := testStore(t)
	c, ok := s.Outline("Test Course: Machine Learning Basics")
	if !ok {
		t.Fatal("expected outline")
	}
	if len(c.Lessons) != 3 {
		t.Fatalf("lesson count: got %d want 3", len(c.Lessons))
	}
	if _, ok := s.Outline("Nope"); ok {
		t.Fatal("expected no outline for unknown course")
	}
}
