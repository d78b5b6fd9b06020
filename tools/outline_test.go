package tools_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"coursechat/tools"
)

func TestCourseOutline_Layout(t *testing.T) {
	tool := tools.NewCourseOutline(&fakeStore{})

	out, citations, err := tool.Execute(context.Background(), json.RawMessage(`{"course_title":"machine learning"}`))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	lines := strings.Split(out, "\n")
	want := []string{
		"Course: Test Course: Machine Learning Basics",
		"Link: https://example.com/course",
		"Lessons (3):",
		"  0. Introduction",
		"  1. Basic Concepts",
		"  2. Advanced Topics",
	}
	if len(lines) != len(want) {
		t.Fatalf("line count: got %d want %d\n%s", len(lines), len(want), out)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: got %q want %q", i, lines[i], want[i])
		}
	}

	if len(citations) != 1 {
		t.Fatalf("citations: got %d want 1", len(citations))
	}
	if citations[0].Text != fixtureCourse || citations[0].URL != "https://example.com/course" {
		t.Fatalf("unexpected citation: %+v", citations[0])
	}
}

func TestCourseOutline_StableAcrossCalls(t *testing.T) {
	tool := tools.NewCourseOutline(&fakeStore{})
	in := json.RawMessage(`{"course_title":"machine learning"}`)

	first, _, err := tool.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	second, _, err := tool.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if first != second {
		t.Fatalf("layout not stable:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestCourseOutline_UnknownCourse(t *testing.T) {
	store := &fakeStore{resolveFn: func(string) (string, bool) { return "", false }}
	tool := tools.NewCourseOutline(store)

	out, citations, err := tool.Execute(context.Background(), json.RawMessage(`{"course_title":"Nope"}`))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "No course found matching 'Nope'") {
		t.Fatalf("unexpected output: %q", out)
	}
	if len(citations) != 0 {
		t.Fatalf("expected no citations, got %d", len(citations))
	}
}

func TestCourseOutline_MissingTitle_ReturnsError(t *testing.T) {
	tool := tools.NewCourseOutline(&fakeStore{})
	if _, _, err := tool.Execute(context.Background(), json.RawMessage(`{}`)); err == nil {
		t.Fatal("expected error for missing course_title")
	}
}
