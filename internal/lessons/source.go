package lessons

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/asynkron/codexterm/internal/logx"
)

// DefaultAPIURL is the course API base used when none is configured.
const DefaultAPIURL = "http://localhost:1337"

// ErrCourseRequired is returned when an API source has no course id.
var ErrCourseRequired = errors.New("course id required")

// Source supplies the ordered lesson list for a course.
type Source interface {
	Lessons(ctx context.Context) ([]Lesson, error)
}

// FileSource reads lessons from a YAML file holding either a list of
// {title, content} records or a document with a top-level "lessons" list.
type FileSource struct {
	Path string
}

// Lessons reads and parses the file.
func (f FileSource) Lessons(ctx context.Context) ([]Lesson, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read lessons: %w", err)
	}
	var list []Lesson
	if err := yaml.Unmarshal(data, &list); err != nil {
		var doc struct {
			Lessons []Lesson `yaml:"lessons"`
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse lessons %s: %w", f.Path, err)
		}
		list = doc.Lessons
	}
	logx.Ctx(ctx).Debug("lessons loaded", "path", f.Path, "count", len(list))
	return list, nil
}

// HTTPSource fetches lessons for a course from the content API at
// {BaseURL}/api/courses/{Course}?populate=lessons.
type HTTPSource struct {
	BaseURL    string
	Course     string
	HTTPClient *http.Client
}

// Lessons performs a single GET and decodes data.lessons.
func (h HTTPSource) Lessons(ctx context.Context) ([]Lesson, error) {
	if strings.TrimSpace(h.Course) == "" {
		return nil, ErrCourseRequired
	}
	endpoint := fmt.Sprintf("%s/api/courses/%s?populate=lessons", apiBase(h.BaseURL), url.PathEscape(h.Course))

	var payload struct {
		Data *struct {
			Lessons []Lesson `json:"lessons"`
		} `json:"data"`
	}
	if err := getJSON(ctx, h.HTTPClient, endpoint, "lessons", &payload); err != nil {
		return nil, err
	}
	if payload.Data == nil {
		return nil, nil
	}
	logx.Ctx(ctx).Debug("lessons fetched", "course", h.Course, "count", len(payload.Data.Lessons))
	return payload.Data.Lessons, nil
}

// Course is one entry of the course catalogue. DocumentID is the id that
// HTTPSource.Course expects.
type Course struct {
	DocumentID  string   `json:"documentId"`
	Title       string   `json:"Title"`
	Description string   `json:"Description"`
	Lessons     []Lesson `json:"lessons"`
}

// CourseCatalog lists the courses published by the content API at
// {BaseURL}/api/courses?populate=lessons.
type CourseCatalog struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Courses performs a single GET and decodes the data list.
func (c CourseCatalog) Courses(ctx context.Context) ([]Course, error) {
	endpoint := apiBase(c.BaseURL) + "/api/courses?populate=lessons"

	var payload struct {
		Data []Course `json:"data"`
	}
	if err := getJSON(ctx, c.HTTPClient, endpoint, "courses", &payload); err != nil {
		return nil, err
	}
	logx.Ctx(ctx).Debug("courses fetched", "count", len(payload.Data))
	return payload.Data, nil
}

func apiBase(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		base = DefaultAPIURL
	}
	return base
}

func getJSON(ctx context.Context, client *http.Client, endpoint, what string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", what, err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", what, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fetch %s: HTTP error! status: %d", what, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", what, err)
	}
	return nil
}
