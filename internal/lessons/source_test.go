package lessons

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/pslog"
)

func TestFileSourceList(t *testing.T) {
	path := writeLessons(t, `
- title: Hello
  content: print("hello")
- title: Bye
  content: print("bye")
`)
	got, err := FileSource{Path: path}.Lessons(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Hello" || got[1].Content != `print("bye")` {
		t.Fatalf("unexpected lessons %+v", got)
	}
}

func TestFileSourceDocument(t *testing.T) {
	path := writeLessons(t, `
lessons:
  - title: Only
    content: one lesson
`)
	got, err := FileSource{Path: path}.Lessons(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Only" {
		t.Fatalf("unexpected lessons %+v", got)
	}
}

func TestFileSourceMissing(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "nope.yaml")}.Lessons(context.Background())
	if err == nil || !strings.Contains(err.Error(), "read lessons") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestHTTPSourceFetchesCourse(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data":{"lessons":[{"Title":"Intro","Content":"Welcome"}]}}`))
	}))
	defer srv.Close()

	got, err := HTTPSource{BaseURL: srv.URL + "/", Course: "python-101"}.Lessons(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotPath != "/api/courses/python-101" || gotQuery != "populate=lessons" {
		t.Fatalf("unexpected request %s?%s", gotPath, gotQuery)
	}
	if len(got) != 1 || got[0].Title != "Intro" || got[0].Content != "Welcome" {
		t.Fatalf("unexpected lessons %+v", got)
	}
}

func TestHTTPSourceMissingData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	got, err := HTTPSource{BaseURL: srv.URL, Course: "1"}.Lessons(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no lessons, got %+v", got)
	}
}

func TestHTTPSourceStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := HTTPSource{BaseURL: srv.URL, Course: "1"}.Lessons(context.Background())
	if err == nil || !strings.Contains(err.Error(), "status: 404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestHTTPSourceRequiresCourse(t *testing.T) {
	_, err := HTTPSource{}.Lessons(context.Background())
	if !errors.Is(err, ErrCourseRequired) {
		t.Fatalf("expected ErrCourseRequired, got %v", err)
	}
}

func TestFileSourceLogsBothLayouts(t *testing.T) {
	for name, content := range map[string]string{
		"list":     "- title: A\n  content: a\n",
		"document": "lessons:\n  - title: A\n    content: a\n",
	} {
		var buf bytes.Buffer
		logger := pslog.NewWithOptions(&buf, pslog.Options{Mode: pslog.ModeStructured, NoColor: true, MinLevel: pslog.DebugLevel})
		ctx := pslog.ContextWithLogger(context.Background(), logger)
		got, err := FileSource{Path: writeLessons(t, content)}.Lessons(ctx)
		if err != nil {
			t.Fatalf("%s: load: %v", name, err)
		}
		if len(got) != 1 {
			t.Fatalf("%s: unexpected lessons %+v", name, got)
		}
		if !strings.Contains(buf.String(), "lessons loaded") {
			t.Fatalf("%s: expected load to be logged, got %q", name, buf.String())
		}
	}
}

func TestCourseCatalogListsCourses(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data":[
			{"documentId":"abc123","Title":"Python Basics","Description":"Start here","lessons":[{"Title":"Intro"},{"Title":"Loops"}]},
			{"documentId":"def456"}
		]}`))
	}))
	defer srv.Close()

	got, err := CourseCatalog{BaseURL: srv.URL + "/"}.Courses(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotPath != "/api/courses" || gotQuery != "populate=lessons" {
		t.Fatalf("unexpected request %s?%s", gotPath, gotQuery)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 courses, got %+v", got)
	}
	if got[0].DocumentID != "abc123" || got[0].Title != "Python Basics" || got[0].Description != "Start here" || len(got[0].Lessons) != 2 {
		t.Fatalf("unexpected first course %+v", got[0])
	}
	if got[1].DocumentID != "def456" || got[1].Title != "" {
		t.Fatalf("unexpected second course %+v", got[1])
	}
}

func TestCourseCatalogStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := CourseCatalog{BaseURL: srv.URL}.Courses(context.Background())
	if err == nil || !strings.Contains(err.Error(), "fetch courses: HTTP error! status: 500") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func writeLessons(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lessons.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o600); err != nil {
		t.Fatalf("write lessons: %v", err)
	}
	return path
}
