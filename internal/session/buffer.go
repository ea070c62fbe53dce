package session

// Buffer holds the editable source text. Only the editor writes to it.
type Buffer struct {
	code string
}

// SetCode replaces the buffer contents unconditionally.
func (b *Buffer) SetCode(code string) {
	b.code = code
}

// Code returns the current contents.
func (b *Buffer) Code() string {
	return b.code
}
