package tools_test

import (
	"context"
	"fmt"

	"coursechat/internal/vectorstore"
)

func intptr(n int) *int { return &n }

// fakeStore lets each test script store behaviour via function fields.
// Unset fields fall back to the shared fixture behaviour.
type fakeStore struct {
	searchFn     func(ctx context.Context, query, courseTitle string, lessonNumber *int) ([]vectorstore.Match, error)
	resolveFn    func(partial string) (string, bool)
	lessonLinkFn func(courseTitle string, lessonNumber int) (string, error)
	courseLinkFn func(courseTitle string) (string, error)
	outlineFn    func(courseTitle string) (vectorstore.Course, bool)
}

const fixtureCourse = "Test Course: Machine Learning Basics"

func (f *fakeStore) Search(ctx context.Context, query, courseTitle string, lessonNumber *int) ([]vectorstore.Match, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, query, courseTitle, lessonNumber)
	}
	return []vectorstore.Match{{
		Content:      "This is an introduction to machine learning.",
		CourseTitle:  fixtureCourse,
		LessonNumber: intptr(0),
		Score:        0.9,
	}}, nil
}

func (f *fakeStore) ResolveCourseName(partial string) (string, bool) {
	if f.resolveFn != nil {
		return f.resolveFn(partial)
	}
	return fixtureCourse, true
}

func (f *fakeStore) Outline(courseTitle string) (vectorstore.Course, bool) {
	if f.outlineFn != nil {
		return f.outlineFn(courseTitle)
	}
	return vectorstore.Course{
		Title: fixtureCourse,
		Link:  "https://example.com/course",
		Lessons: []vectorstore.Lesson{
			{Number: 0, Title: "Introduction"},
			{Number: 1, Title: "Basic Concepts"},
			{Number: 2, Title: "Advanced Topics"},
		},
	}, true
}

func (f *fakeStore) LessonLink(courseTitle string, lessonNumber int) (string, error) {
	if f.lessonLinkFn != nil {
		return f.lessonLinkFn(courseTitle, lessonNumber)
	}
	return fmt.Sprintf("https://example.com/lesson%d", lessonNumber), nil
}

func (f *fakeStore) CourseLink(courseTitle string) (string, error) {
	if f.courseLinkFn != nil {
		return f.courseLinkFn(courseTitle)
	}
	return "https://example.com/course", nil
}

func (f *fakeStore) CourseCount() int       { return 1 }
func (f *fakeStore) CourseTitles() []string { return []string{fixtureCourse} }
