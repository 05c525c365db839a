// internal/extract/extract.go
// Package extract recovers text, links and attachment metadata from a MIME
// part tree and assembles the immutable EmailRecord the risk scorer consumes.
// Extraction never fails: malformed or absent parts degrade to empty results.
package extract

import (
	"strings"

	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/htmltext"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/models"
)

const rawSnippetMax = 1200

// PlainFromParts returns the body of the first text/plain leaf with a
// non-empty body, depth-first in array order, or "" when none exists. The
// search short-circuits at the first match, not the best one.
func PlainFromParts(parts []*models.MessagePart) string {
	return firstBody(parts, "text/plain")
}

// HTMLFromParts returns the body of the first text/html leaf with a
// non-empty body, searched independently over the same tree.
func HTMLFromParts(parts []*models.MessagePart) string {
	return firstBody(parts, "text/html")
}

func firstBody(parts []*models.MessagePart, prefix string) string {
	for _, p := range parts {
		if p == nil {
			continue
		}
		if strings.HasPrefix(p.ContentType, prefix) && p.Body != "" {
			return p.Body
		}
		if !p.IsLeaf() {
			if body := firstBody(p.Parts, prefix); body != "" {
				return body
			}
		}
	}
	return ""
}

// CollectAttachments walks the whole tree and classifies a part as an
// attachment when it carries a name or filename, or a content type outside
// text/. The heuristic is intentionally permissive: inline non-text parts
// without filenames may be misclassified, which beats missing a real
// attachment. Output order is traversal order, no deduplication.
func CollectAttachments(parts []*models.MessagePart) []models.AttachmentMeta {
	var out []models.AttachmentMeta
	collectAttachments(parts, &out)
	return out
}

func collectAttachments(parts []*models.MessagePart, out *[]models.AttachmentMeta) {
	for _, p := range parts {
		if p == nil {
			continue
		}
		if p.Name != "" || p.Filename != "" || (p.ContentType != "" && !strings.HasPrefix(p.ContentType, "text/")) {
			*out = append(*out, attachmentMeta(p))
		}
		if !p.IsLeaf() {
			collectAttachments(p.Parts, out)
		}
	}
}

func attachmentMeta(p *models.MessagePart) models.AttachmentMeta {
	var meta models.AttachmentMeta
	if p.PartName != "" {
		meta.PartName = strPtr(p.PartName)
	}
	name := p.Name
	if name == "" {
		name = p.Filename
	}
	if name != "" {
		meta.Name = strPtr(name)
	}
	if p.ContentType != "" {
		meta.ContentType = strPtr(p.ContentType)
	}
	if p.Size != 0 {
		size := p.Size
		meta.Size = &size
	}
	return meta
}

// BuildRecord runs the full extraction pipeline over a message. The result
// is a pure function of the input, so repeated calls on the same immutable
// message yield identical records. FetchedAt stays zero here; the retrieval
// layer stamps it when a record leaves the process.
func BuildRecord(msg *models.RawMessage) *models.EmailRecord {
	if msg == nil {
		return &models.EmailRecord{Headers: map[string][]string{}}
	}

	plain := PlainFromParts(msg.Parts)
	if plain == "" {
		plain = msg.Body
	}
	htmlBody := HTMLFromParts(msg.Parts)

	textFromHTML := htmltext.Text(htmlBody)

	snippetSource := plain
	if snippetSource == "" {
		snippetSource = textFromHTML
	}

	rec := &models.EmailRecord{
		ID:           msg.ID,
		MessageID:    firstHeader(msg, "message-id"),
		ThreadID:     msg.ThreadID,
		Subject:      msg.Subject,
		Author:       author(msg),
		To:           msg.Header("to"),
		Cc:           msg.Header("cc"),
		Bcc:          msg.Header("bcc"),
		Date:         msg.Date,
		Headers:      lowerHeaders(msg.Headers),
		PlainText:    plain,
		HTML:         htmlBody,
		TextFromHTML: textFromHTML,
		Links:        htmltext.ExtractLinks(htmlBody, plain),
		Attachments:  CollectAttachments(msg.Parts),
		RawSnippet:   htmltext.Snippet(snippetSource, rawSnippetMax),
	}
	return rec
}

func author(msg *models.RawMessage) string {
	if msg.Author != "" {
		return msg.Author
	}
	return firstHeader(msg, "from")
}

func firstHeader(msg *models.RawMessage, name string) string {
	if vals := msg.Header(name); len(vals) > 0 {
		return vals[0]
	}
	return ""
}

func lowerHeaders(h map[string][]string) map[string][]string {
	out := make(map[string][]string, len(h))
	for k, v := range h {
		out[strings.ToLower(k)] = v
	}
	return out
}

func strPtr(s string) *string { return &s }
