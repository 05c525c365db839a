// internal/models/record.go
package models

import "time"

// Link is a single hyperlink recovered from a message body.
type Link struct {
	Href string `json:"href"`
	// Text is the anchor text for HTML-derived links, nil for links found
	// in plain text or when the anchor had no visible text.
	Text *string `json:"text"`
	// ContextSnippet is at most 200 characters of anchor text, or up to
	// 200 characters of surrounding plain-text context.
	ContextSnippet *string `json:"contextSnippet"`
}

// AttachmentMeta describes a part that looks like an attachment. Every field
// is optional; classification is heuristic and deliberately permissive.
type AttachmentMeta struct {
	PartName    *string `json:"partName"`
	Name        *string `json:"name"`
	ContentType *string `json:"contentType"`
	Size        *int64  `json:"size"`
}

// EmailRecord is the normalized result of extraction. It is built once per
// analysis request and never mutated afterwards; the JSON shape doubles as
// the audit export format.
type EmailRecord struct {
	ID        string    `json:"id,omitempty"`
	MessageID string    `json:"messageId,omitempty"`
	ThreadID  string    `json:"threadId,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Author    string    `json:"author,omitempty"`
	To        []string  `json:"to,omitempty"`
	Cc        []string  `json:"cc,omitempty"`
	Bcc       []string  `json:"bcc,omitempty"`
	Date      time.Time `json:"date,omitempty"`

	Headers      map[string][]string `json:"headers"`
	PlainText    string              `json:"plainText"`
	HTML         string              `json:"html"`
	TextFromHTML string              `json:"textFromHtml"`
	Links        []Link              `json:"links"`
	Attachments  []AttachmentMeta    `json:"attachments"`

	// RawSnippet is the first 1200 characters of PlainText, or of
	// TextFromHTML when no plain text part exists.
	RawSnippet string `json:"rawSnippet"`

	FetchedAt time.Time `json:"fetchedAt,omitempty"`
}
