// internal/email/client.go
package email

import (
	"errors"
	"fmt"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"

	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/models"
)

var (
	ErrNotFound    = errors.New("message not found")
	ErrFetchFailed = errors.New("failed to fetch message")
)

// Client wraps an authenticated IMAP connection used to retrieve messages
// for analysis.
type Client struct {
	imap *client.Client
}

// NewClient dials the server over TLS and logs in.
func NewClient(server string, port int, email, password string) (*Client, error) {
	c, err := client.DialTLS(fmt.Sprintf("%s:%d", server, port), nil)
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}

	if err := c.Login(email, password); err != nil {
		c.Logout()
		return nil, fmt.Errorf("login error: %w", err)
	}

	return &Client{imap: c}, nil
}

// Close logs out of the IMAP session.
func (c *Client) Close() error {
	return c.imap.Logout()
}

// FetchFolders lists the mailbox folders available for analysis sweeps.
func (c *Client) FetchFolders() ([]string, error) {
	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)

	go func() {
		done <- c.imap.List("", "*", mailboxes)
	}()

	var folders []string
	for m := range mailboxes {
		folders = append(folders, m.Name)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("error fetching folders: %w", err)
	}

	return folders, nil
}

// FetchMessage retrieves one message by UID, including the full body
// section, and normalizes it into a RawMessage.
func (c *Client) FetchMessage(folder string, uid uint32) (*models.RawMessage, error) {
	if _, err := c.imap.Select(folder, true); err != nil {
		return nil, fmt.Errorf("error selecting folder %s: %w", folder, err)
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{
		imap.FetchEnvelope,
		imap.FetchUid,
		section.FetchItem(),
	}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- c.imap.UidFetch(seqSet, items, messages)
	}()

	var raw *models.RawMessage
	for msg := range messages {
		if msg == nil {
			continue
		}
		body := msg.GetBody(section)
		if body == nil {
			continue
		}

		parsed, err := ParseMessage(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
		}
		fillEnvelope(parsed, msg)
		parsed.ID = fmt.Sprintf("%s/%d", folder, msg.Uid)
		raw = parsed
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if raw == nil {
		return nil, ErrNotFound
	}

	return raw, nil
}

// FetchRecentUIDs returns up to limit of the newest message UIDs in a
// folder, oldest first.
func (c *Client) FetchRecentUIDs(folder string, limit uint32) ([]uint32, error) {
	mbox, err := c.imap.Select(folder, true)
	if err != nil {
		return nil, fmt.Errorf("error selecting folder %s: %w", folder, err)
	}
	if mbox.Messages == 0 {
		return nil, nil
	}

	from := uint32(1)
	if mbox.Messages > limit {
		from = mbox.Messages - limit + 1
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddRange(from, mbox.Messages)

	messages := make(chan *imap.Message, limit)
	done := make(chan error, 1)
	go func() {
		done <- c.imap.Fetch(seqSet, []imap.FetchItem{imap.FetchUid}, messages)
	}()

	var uids []uint32
	for msg := range messages {
		uids = append(uids, msg.Uid)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return uids, nil
}

func fillEnvelope(raw *models.RawMessage, msg *imap.Message) {
	env := msg.Envelope
	if env == nil {
		return
	}
	if raw.Subject == "" {
		raw.Subject = env.Subject
	}
	raw.Date = env.Date
	if raw.MessageID == "" {
		raw.MessageID = env.MessageId
	}
	if raw.Author == "" && len(env.From) > 0 {
		raw.Author = formatAddress(env.From[0])
	}
}

func formatAddress(addr *imap.Address) string {
	mailbox := addr.MailboxName + "@" + addr.HostName
	if addr.PersonalName != "" {
		return fmt.Sprintf("%s <%s>", addr.PersonalName, mailbox)
	}
	return mailbox
}
