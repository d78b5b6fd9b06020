package vectorstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// defaultMaxResults caps how many matches one search returns.
const defaultMaxResults = 5

// MemStore is an in-process Store over registered courses and chunks. Scoring
// is lexical (query-term overlap), which is enough for the CLI's local corpus
// and for test fixtures; anything heavier belongs behind the Store interface.
type MemStore struct {
	mu         sync.RWMutex
	courses    map[string]Course // keyed by canonical title
	order      []string          // registration order of titles
	chunks     []Chunk
	maxResults int
}

func NewMemStore() *MemStore {
	return &MemStore{
		courses:    make(map[string]Course),
		maxResults: defaultMaxResults,
	}
}

// AddCourse registers course metadata and its searchable chunks. Re-adding a
// title replaces its metadata but keeps previously added chunks.
func (s *MemStore) AddCourse(c Course, chunks []Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.courses[c.Title]; !exists {
		s.order = append(s.order, c.Title)
	}
	s.courses[c.Title] = c
	s.chunks = append(s.chunks, chunks...)
}

func (s *MemStore) Search(ctx context.Context, query, courseTitle string, lessonNumber *int) ([]Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	terms := tokens(query)
	if len(terms) == 0 {
		return nil, fmt.Errorf("empty search query")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Match
	for _, ch := range s.chunks {
		if courseTitle != "" && ch.CourseTitle != courseTitle {
			continue
		}
		if lessonNumber != nil && (ch.LessonNumber == nil || *ch.LessonNumber != *lessonNumber) {
			continue
		}
		score := overlap(terms, ch.Content)
		if score == 0 {
			continue
		}
		out = append(out, Match{
			Content:      ch.Content,
			CourseTitle:  ch.CourseTitle,
			LessonNumber: ch.LessonNumber,
			Score:        score,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > s.maxResults {
		out = out[:s.maxResults]
	}
	return out, nil
}

// overlap scores content by the fraction of query terms it contains.
func overlap(terms []string, content string) float64 {
	lc := strings.ToLower(content)
	hits := 0
	for _, t := range terms {
		if strings.Contains(lc, t) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}

func tokens(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// ResolveCourseName tries, in order: exact case-insensitive match, substring
// match, then titles containing every token of the partial name.
func (s *MemStore) ResolveCourseName(partial string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(partial))
	if want == "" {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, title := range s.order {
		if strings.ToLower(title) == want {
			return title, true
		}
	}
	for _, title := range s.order {
		if strings.Contains(strings.ToLower(title), want) {
			return title, true
		}
	}
	for _, title := range s.order {
		lt := strings.ToLower(title)
		all := true
		for _, tok := range strings.Fields(want) {
			if !strings.Contains(lt, tok) {
				all = false
				break
			}
		}
		if all {
			return title, true
		}
	}
	return "", false
}

func (s *MemStore) Outline(courseTitle string) (Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.courses[courseTitle]
	return c, ok
}

func (s *MemStore) LessonLink(courseTitle string, lessonNumber int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.courses[courseTitle]
	if !ok {
		return "", fmt.Errorf("unknown course %q", courseTitle)
	}
	for _, l := range c.Lessons {
		if l.Number == lessonNumber {
			if l.Link == "" {
				return "", fmt.Errorf("no link recorded for lesson %d of %q", lessonNumber, courseTitle)
			}
			return l.Link, nil
		}
	}
	return "", fmt.Errorf("no lesson %d in %q", lessonNumber, courseTitle)
}

func (s *MemStore) CourseLink(courseTitle string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.courses[courseTitle]
	if !ok {
		return "", fmt.Errorf("unknown course %q", courseTitle)
	}
	if c.Link == "" {
		return "", fmt.Errorf("no link recorded for %q", courseTitle)
	}
	return c.Link, nil
}

func (s *MemStore) CourseCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *MemStore) CourseTitles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
