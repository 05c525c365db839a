// internal/models/message.go
// Package models defines the message shapes shared between the retrieval
// layer, the extraction pipeline and the risk scorer.
package models

import "time"

// MessagePart is one node of a MIME part tree. A part with no child Parts is
// a leaf. The extractor only reads parts; the tree stays owned by whoever
// supplied the message.
type MessagePart struct {
	ContentType string         `json:"contentType,omitempty"`
	Body        string         `json:"body,omitempty"`
	Name        string         `json:"name,omitempty"`
	Filename    string         `json:"filename,omitempty"`
	PartName    string         `json:"partName,omitempty"`
	Size        int64          `json:"size,omitempty"`
	Parts       []*MessagePart `json:"parts,omitempty"`
}

// IsLeaf reports whether the part has no children.
func (p *MessagePart) IsLeaf() bool {
	return p == nil || len(p.Parts) == 0
}

// RawMessage is the normalized shape a retrieval collaborator hands to the
// analysis engine: header values are always slices keyed by lower-cased
// header name, never scalars, so the engine has a single canonical shape to
// read.
type RawMessage struct {
	ID        string              `json:"id"`
	MessageID string              `json:"messageId,omitempty"`
	ThreadID  string              `json:"threadId,omitempty"`
	Subject   string              `json:"subject,omitempty"`
	Author    string              `json:"author,omitempty"`
	Date      time.Time           `json:"date,omitempty"`
	Headers   map[string][]string `json:"headers"`
	Parts     []*MessagePart      `json:"parts,omitempty"`

	// Body is the top-level fallback body used when no text/plain leaf
	// exists anywhere in the part tree.
	Body string `json:"body,omitempty"`
}

// Header returns all values for a header name (case-insensitive key).
func (m *RawMessage) Header(name string) []string {
	if m == nil || m.Headers == nil {
		return nil
	}
	return m.Headers[normalizeHeaderKey(name)]
}

func normalizeHeaderKey(name string) string {
	b := []byte(name)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
