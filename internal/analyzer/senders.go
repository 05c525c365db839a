// internal/analyzer/senders.go
package analyzer

import (
	"strings"

	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/models"
)

var angleStripper = strings.NewReplacer("<", "", ">", "")

// SenderDomains holds the domains recovered from the sender-identity
// headers of a single message.
type SenderDomains struct {
	From    string
	ReplyTo string
	Return  string
}

// ExtractSenderDomains pulls the domains out of the from, reply-to and
// return-path headers. The from header falls back to the record's author
// field when missing. Each value is reduced to its last whitespace token,
// angle brackets are stripped, and the substring after the last "@" becomes
// the domain; no "@" means an empty domain.
func ExtractSenderDomains(rec *models.EmailRecord) SenderDomains {
	if rec == nil {
		return SenderDomains{}
	}

	from := firstValue(rec.Headers, "from")
	if from == "" {
		from = rec.Author
	}

	return SenderDomains{
		From:    addressDomain(from),
		ReplyTo: addressDomain(firstValue(rec.Headers, "reply-to")),
		Return:  addressDomain(firstValue(rec.Headers, "return-path")),
	}
}

func firstValue(headers map[string][]string, name string) string {
	if vals := headers[name]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

func addressDomain(addr string) string {
	fields := strings.Fields(addr)
	if len(fields) == 0 {
		return ""
	}
	last := angleStripper.Replace(fields[len(fields)-1])

	at := strings.LastIndex(last, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(last[at+1:]))
}
