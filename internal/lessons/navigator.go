// Package lessons tracks the current position in an externally supplied list
// of lessons and loads those lists from files or a course API.
package lessons

// Lesson is a single titled piece of lesson content.
type Lesson struct {
	Title   string `yaml:"title" json:"Title"`
	Content string `yaml:"content" json:"Content"`
}

// Placeholder is shown when a course has no lessons.
var Placeholder = Lesson{Title: "Sample Lesson", Content: "This is a sample lesson content."}

// Navigator is an index into a fixed lesson list, clamped to its bounds.
// It knows nothing about execution; moving between lessons never touches a
// running session.
type Navigator struct {
	lessons []Lesson
	index   int
}

// NewNavigator starts at the first lesson.
func NewNavigator(lessons []Lesson) *Navigator {
	return &Navigator{lessons: append([]Lesson(nil), lessons...)}
}

// Next moves forward one lesson. It is a no-op on the last lesson.
func (n *Navigator) Next() {
	if n.index < len(n.lessons)-1 {
		n.index++
	}
}

// Previous moves back one lesson. It is a no-op on the first lesson.
func (n *Navigator) Previous() {
	if n.index > 0 {
		n.index--
	}
}

// Index returns the current position.
func (n *Navigator) Index() int { return n.index }

// Len returns the number of lessons.
func (n *Navigator) Len() int { return len(n.lessons) }

// AtStart reports whether Previous would be a no-op.
func (n *Navigator) AtStart() bool { return n.index == 0 }

// AtEnd reports whether Next would be a no-op.
func (n *Navigator) AtEnd() bool { return n.index >= len(n.lessons)-1 }

// Current returns the lesson at the current position, or Placeholder for an
// empty list.
func (n *Navigator) Current() Lesson {
	if len(n.lessons) == 0 {
		return Placeholder
	}
	return n.lessons[n.index]
}
