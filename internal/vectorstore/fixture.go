package vectorstore

import (
	"encoding/json"
	"errors"
	"os"
)

// CourseDocument pairs course metadata with its indexed chunks, as stored in a
// courses JSON file.
type CourseDocument struct {
	Course
	Chunks []Chunk `json:"chunks"`
}

// LoadCourses reads course documents from a JSON file. A missing file is not
// an error; it loads as an empty corpus.
func LoadCourses(path string) ([]CourseDocument, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var docs []CourseDocument
	if err := json.Unmarshal(b, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// SaveCourses writes course documents to a JSON file.
func SaveCourses(path string, docs []CourseDocument) error {
	b, err := json.MarshalIndent(docs, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
