package concurrent

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/models"
)

type countJob struct {
	counter *int64
}

func (j *countJob) Do(ctx context.Context) error {
	atomic.AddInt64(j.counter, 1)
	return nil
}

func TestRunAllExecutesEveryJob(t *testing.T) {
	var counter int64
	jobs := make([]Job, 20)
	for i := range jobs {
		jobs[i] = &countJob{counter: &counter}
	}

	errs := RunAll(context.Background(), 4, jobs)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := atomic.LoadInt64(&counter); got != 20 {
		t.Fatalf("ran %d jobs, want 20", got)
	}
}

func TestRunAllClampsWorkerCount(t *testing.T) {
	var counter int64
	jobs := []Job{&countJob{counter: &counter}}

	if errs := RunAll(context.Background(), 0, jobs); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if counter != 1 {
		t.Fatalf("ran %d jobs, want 1", counter)
	}
}

func TestRunAllEmpty(t *testing.T) {
	if errs := RunAll(context.Background(), 3, nil); len(errs) != 0 {
		t.Fatalf("unexpected errors for empty job list: %v", errs)
	}
}

func TestAnalyzeJobsInParallel(t *testing.T) {
	records := []*models.EmailRecord{
		{
			Headers: map[string][]string{
				"authentication-results": {"spf=fail dkim=none dmarc=fail"},
				"from":                   {"a@evil.ru"},
			},
		},
		{
			Headers: map[string][]string{"from": {"b@google.com"}},
		},
	}

	results := make([]models.AnalysisResult, len(records))
	jobs := make([]Job, len(records))
	for i, rec := range records {
		jobs[i] = &AnalyzeJob{Record: rec, Result: &results[i]}
	}

	if errs := RunAll(context.Background(), 2, jobs); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if results[0].RiskLevel != models.RiskMedium {
		t.Fatalf("first record risk = %q, want medium", results[0].RiskLevel)
	}
	if results[1].RiskLevel != models.RiskLow || results[1].TrustScore != 1.0 {
		t.Fatalf("second record = %+v, want clean low-risk verdict", results[1])
	}
}
