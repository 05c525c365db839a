// handlers/api/analyze.go
package api

import (
	"bytes"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/config"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/analyzer"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/cache"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/email"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/extract"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/models"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/pkg/concurrent"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/storage"
)

// AnalysisHandler wires the retrieval collaborator, the extraction pipeline
// and the scorer behind the HTTP surface.
type AnalysisHandler struct {
	store    *session.Store
	config   *config.Config
	verdicts *cache.VerdictCache
	exports  *storage.RecordStore
}

func NewAnalysisHandler(store *session.Store, config *config.Config, verdicts *cache.VerdictCache, exports *storage.RecordStore) *AnalysisHandler {
	return &AnalysisHandler{
		store:    store,
		config:   config,
		verdicts: verdicts,
		exports:  exports,
	}
}

// HandleAnalyzeUpload scores a raw RFC 822 message posted in the request
// body. No mailbox session is needed; the engine runs entirely on the
// supplied bytes. A message that cannot be parsed degrades to an analysis
// of its raw text rather than an error.
func (h *AnalysisHandler) HandleAnalyzeUpload(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no message supplied")
	}

	msg, err := email.ParseMessage(bytes.NewReader(body))
	if err != nil {
		msg = &models.RawMessage{
			Headers: map[string][]string{},
			Body:    string(body),
		}
	}

	record := extract.BuildRecord(msg)
	record.FetchedAt = time.Now().UTC()
	analysis := analyzer.Analyze(record)

	return c.JSON(fiber.Map{
		"record":   record,
		"analysis": analysis,
	})
}

// HandleAnalyzeMessage fetches one message by folder and UID, analyzes it
// and caches the verdict under the message id.
func (h *AnalysisHandler) HandleAnalyzeMessage(c *fiber.Ctx) error {
	record, analysis, err := h.FetchAndAnalyze(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"id":       record.ID,
		"record":   record,
		"analysis": analysis,
	})
}

// HandleMessageRecord returns the extracted record without a verdict, the
// shape used for raw inspection and audit.
func (h *AnalysisHandler) HandleMessageRecord(c *fiber.Ctx) error {
	record, err := h.fetchRecord(c)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

// HandleExportRecord writes the extracted record to the export directory
// and returns the file path.
func (h *AnalysisHandler) HandleExportRecord(c *fiber.Ctx) error {
	record, err := h.fetchRecord(c)
	if err != nil {
		return err
	}

	path, err := h.exports.Save(record.ID, record)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to export record")
	}

	return c.JSON(fiber.Map{"id": record.ID, "path": path})
}

// HandleAnalyzeFolder sweeps the newest messages of a folder: retrieval is
// sequential over the single IMAP connection, scoring runs on the worker
// pool.
func (h *AnalysisHandler) HandleAnalyzeFolder(c *fiber.Ctx) error {
	limit := h.config.Analysis.BatchLimit
	if q := c.Query("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= h.config.Analysis.BatchLimit {
			limit = n
		}
	}

	client, err := h.imapClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	folder := c.Params("name")
	uids, err := client.FetchRecentUIDs(folder, uint32(limit))
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "error listing folder")
	}

	var records []*models.EmailRecord
	for _, uid := range uids {
		msg, err := client.FetchMessage(folder, uid)
		if err != nil {
			continue
		}
		records = append(records, extract.BuildRecord(msg))
	}

	results := make([]models.AnalysisResult, len(records))
	jobs := make([]concurrent.Job, len(records))
	for i, record := range records {
		jobs[i] = &concurrent.AnalyzeJob{Record: record, Result: &results[i]}
	}
	concurrent.RunAll(c.Context(), h.config.Analysis.Workers, jobs)

	type verdict struct {
		ID         string           `json:"id"`
		Subject    string           `json:"subject"`
		Author     string           `json:"author"`
		TrustScore float64          `json:"trustScore"`
		RiskLevel  models.RiskLevel `json:"riskLevel"`
		Reasons    []string         `json:"reasons"`
	}

	verdicts := make([]verdict, len(records))
	for i, record := range records {
		h.verdicts.Set(record.ID, results[i])
		verdicts[i] = verdict{
			ID:         record.ID,
			Subject:    record.Subject,
			Author:     record.Author,
			TrustScore: results[i].TrustScore,
			RiskLevel:  results[i].RiskLevel,
			Reasons:    results[i].Reasons,
		}
	}

	return c.JSON(fiber.Map{"folder": folder, "verdicts": verdicts})
}

// HandleFolders lists the available mailbox folders.
func (h *AnalysisHandler) HandleFolders(c *fiber.Ctx) error {
	client, err := h.imapClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	folders, err := client.FetchFolders()
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "error fetching folders")
	}
	return c.JSON(fiber.Map{"folders": folders})
}

// AnalyzeRecord runs extraction output through the scorer, serving cached
// verdicts while they are fresh.
func (h *AnalysisHandler) AnalyzeRecord(record *models.EmailRecord) models.AnalysisResult {
	if record.ID != "" {
		if cached, err := h.verdicts.Get(record.ID); err == nil {
			return cached
		}
	}
	analysis := analyzer.Analyze(record)
	if record.ID != "" {
		h.verdicts.Set(record.ID, analysis)
	}
	return analysis
}

// FetchAndAnalyze retrieves the message named by the route parameters and
// scores it; the web layer reuses it to render the banner page.
func (h *AnalysisHandler) FetchAndAnalyze(c *fiber.Ctx) (*models.EmailRecord, models.AnalysisResult, error) {
	record, err := h.fetchRecord(c)
	if err != nil {
		return nil, models.AnalysisResult{}, err
	}
	return record, h.AnalyzeRecord(record), nil
}

func (h *AnalysisHandler) fetchRecord(c *fiber.Ctx) (*models.EmailRecord, error) {
	uid, err := strconv.ParseUint(c.Params("uid"), 10, 32)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid message UID")
	}

	client, err := h.imapClient(c)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	msg, err := client.FetchMessage(c.Params("name"), uint32(uid))
	if err != nil {
		if err == email.ErrNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "no message selected")
		}
		return nil, fiber.NewError(fiber.StatusBadGateway, "error retrieving message")
	}

	record := extract.BuildRecord(msg)
	record.FetchedAt = time.Now().UTC()
	return record, nil
}

func (h *AnalysisHandler) imapClient(c *fiber.Ctx) (*email.Client, error) {
	creds, err := GetCredentials(c, h.store, h.config.Session.EncryptionKey)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
	}

	client, err := email.NewClient(creds.Server, creds.Port, creds.Email, creds.Password)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, "error connecting to email server")
	}
	return client, nil
}
