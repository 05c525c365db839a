// internal/email/parse.go
// Package email is the message-retrieval collaborator: it fetches raw
// messages over IMAP and normalizes them into the RawMessage shape the
// analysis engine reads. The engine itself never touches the network.
package email

import (
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"

	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/models"
)

// ParseMessage reads a full RFC 822 message and normalizes it: header names
// are lower-cased into array-valued entries and the MIME structure becomes a
// MessagePart tree. Unknown charsets degrade to the raw bytes instead of
// failing the whole message.
func ParseMessage(r io.Reader) (*models.RawMessage, error) {
	entity, err := message.Read(r)
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	msg := &models.RawMessage{
		Headers: headerMap(entity.Header),
	}

	if subj := msg.Header("subject"); len(subj) > 0 {
		msg.Subject = subj[0]
	}
	if from := msg.Header("from"); len(from) > 0 {
		msg.Author = from[0]
	}
	if mid := msg.Header("message-id"); len(mid) > 0 {
		msg.MessageID = mid[0]
	}
	if dates := msg.Header("date"); len(dates) > 0 {
		if d, err := mail.ParseDate(dates[0]); err == nil {
			msg.Date = d
		}
	}

	root := buildPart(entity, "1")
	if root != nil {
		if len(root.Parts) > 0 {
			msg.Parts = root.Parts
		} else {
			// Single-part message: expose the one part as the tree and
			// keep its body as the top-level fallback.
			msg.Parts = []*models.MessagePart{root}
			msg.Body = root.Body
		}
	}

	return msg, nil
}

func headerMap(h message.Header) map[string][]string {
	out := make(map[string][]string)
	fields := h.Fields()
	for fields.Next() {
		key := strings.ToLower(fields.Key())
		val, err := fields.Text()
		if err != nil {
			val = fields.Value()
		}
		out[key] = append(out[key], val)
	}
	return out
}

func buildPart(entity *message.Entity, partName string) *models.MessagePart {
	if entity == nil {
		return nil
	}

	part := &models.MessagePart{PartName: partName}

	if ct, params, err := entity.Header.ContentType(); err == nil {
		part.ContentType = ct
		if name := params["name"]; name != "" {
			part.Name = name
		}
	}
	if _, params, err := entity.Header.ContentDisposition(); err == nil {
		if filename := params["filename"]; filename != "" {
			part.Filename = filename
		}
	}

	if mr := entity.MultipartReader(); mr != nil {
		child := 1
		for {
			sub, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				// Keep whatever parsed so far; extraction degrades
				// gracefully on truncated trees.
				break
			}
			childName := fmt.Sprintf("%s.%d", partName, child)
			if p := buildPart(sub, childName); p != nil {
				part.Parts = append(part.Parts, p)
			}
			child++
		}
		return part
	}

	body, err := io.ReadAll(entity.Body)
	if err == nil {
		part.Body = string(body)
		part.Size = int64(len(body))
	}
	return part
}
