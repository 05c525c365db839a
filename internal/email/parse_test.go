package email

import (
	"strings"
	"testing"
	"time"
)

func crlf(lines ...string) string {
	return strings.Join(lines, "\r\n")
}

func TestParseMessageMultipart(t *testing.T) {
	raw := crlf(
		`From: Alice <alice@example.com>`,
		`To: bob@example.com`,
		`Subject: Quarterly report`,
		`Message-ID: <abc123@example.com>`,
		`Date: Mon, 02 Jan 2006 15:04:05 -0700`,
		`Authentication-Results: mx.example.com; spf=pass`,
		`MIME-Version: 1.0`,
		`Content-Type: multipart/mixed; boundary="outer"`,
		``,
		`--outer`,
		`Content-Type: multipart/alternative; boundary="inner"`,
		``,
		`--inner`,
		`Content-Type: text/plain; charset=utf-8`,
		``,
		`plain body here`,
		`--inner`,
		`Content-Type: text/html; charset=utf-8`,
		``,
		`<p>html body here</p>`,
		`--inner--`,
		`--outer`,
		`Content-Type: application/pdf`,
		`Content-Disposition: attachment; filename="report.pdf"`,
		``,
		`%PDF-1.4 fake`,
		`--outer--`,
		``,
	)

	msg, err := ParseMessage(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}

	if msg.Subject != "Quarterly report" {
		t.Fatalf("Subject = %q", msg.Subject)
	}
	if msg.Author != "Alice <alice@example.com>" {
		t.Fatalf("Author = %q", msg.Author)
	}
	if msg.MessageID != "<abc123@example.com>" {
		t.Fatalf("MessageID = %q", msg.MessageID)
	}
	wantDate := time.Date(2006, 1, 2, 15, 4, 5, 0, time.FixedZone("", -7*3600))
	if !msg.Date.Equal(wantDate) {
		t.Fatalf("Date = %v, want %v", msg.Date, wantDate)
	}

	if got := msg.Header("authentication-results"); len(got) != 1 || !strings.Contains(got[0], "spf=pass") {
		t.Fatalf("lower-cased header lookup failed: %v", got)
	}

	if len(msg.Parts) != 2 {
		t.Fatalf("expected 2 top-level parts, got %d", len(msg.Parts))
	}

	alt := msg.Parts[0]
	if !strings.HasPrefix(alt.ContentType, "multipart/alternative") {
		t.Fatalf("first part content type = %q", alt.ContentType)
	}
	if alt.PartName != "1.1" {
		t.Fatalf("first part name = %q", alt.PartName)
	}
	if len(alt.Parts) != 2 {
		t.Fatalf("expected 2 alternative parts, got %d", len(alt.Parts))
	}
	plain, html := alt.Parts[0], alt.Parts[1]
	if plain.Body != "plain body here" || !strings.HasPrefix(plain.ContentType, "text/plain") {
		t.Fatalf("plain part = %+v", plain)
	}
	if plain.PartName != "1.1.1" || html.PartName != "1.1.2" {
		t.Fatalf("part names = %q, %q", plain.PartName, html.PartName)
	}
	if html.Body != "<p>html body here</p>" {
		t.Fatalf("html body = %q", html.Body)
	}

	pdf := msg.Parts[1]
	if pdf.ContentType != "application/pdf" {
		t.Fatalf("attachment content type = %q", pdf.ContentType)
	}
	if pdf.Filename != "report.pdf" {
		t.Fatalf("attachment filename = %q", pdf.Filename)
	}
	if pdf.Size != int64(len("%PDF-1.4 fake")) {
		t.Fatalf("attachment size = %d", pdf.Size)
	}
}

func TestParseMessageSinglePart(t *testing.T) {
	raw := crlf(
		`From: x@example.com`,
		`Subject: hi`,
		`Content-Type: text/plain; charset=utf-8`,
		``,
		`just text`,
	)

	msg, err := ParseMessage(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if msg.Body != "just text" {
		t.Fatalf("Body = %q", msg.Body)
	}
	if len(msg.Parts) != 1 {
		t.Fatalf("expected the single part exposed in the tree, got %d parts", len(msg.Parts))
	}
	if msg.Parts[0].PartName != "1" || msg.Parts[0].Body != "just text" {
		t.Fatalf("part = %+v", msg.Parts[0])
	}
}

func TestParseMessageRepeatedHeaders(t *testing.T) {
	raw := crlf(
		`Received: from a.example by b.example`,
		`Received: from c.example by d.example`,
		`From: x@example.com`,
		``,
		`body`,
	)

	msg, err := ParseMessage(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if got := msg.Header("received"); len(got) != 2 {
		t.Fatalf("expected 2 received headers, got %v", got)
	}
}
