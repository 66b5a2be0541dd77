// Package stamp overlays the attribution block onto every page of a submitted
// PDF: who recorded the document and when, rendered bottom-right in bold red
// so it is unambiguous against arbitrary page content.
package stamp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// DefaultBatchSize is the number of pages stamped per pass over the document.
// Bounded batches keep a single synchronous call from spiking on very large
// documents; the batch size is a tuning parameter, not part of the contract.
const DefaultBatchSize = 10

// timestampLayout renders a locale-independent, human-readable date+time,
// e.g. "Mar 4, 2025, 10:32 AM".
const timestampLayout = "Jan 2, 2006, 3:04 PM"

// stampDesc positions the watermark at a fixed offset from the bottom-right
// corner, Helvetica-Bold in red, unrotated and unscaled.
const stampDesc = "fontname:Helvetica-Bold, points:11, scale:1 abs, pos:br, off:-30 40, fillcolor:#cc0000, rot:0, aligntext:left, opacity:1"

// ParseError reports input bytes that could not be read as a PDF document.
// Nothing was stamped and no output was produced.
type ParseError struct {
	err error
}

// NewParseError wraps a low-level reader error as a ParseError.
func NewParseError(err error) *ParseError {
	return &ParseError{err: err}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse pdf document: %v", e.err)
}

func (e *ParseError) Unwrap() error { return e.err }

// Options carries the submission metadata rendered into the stamp.
// For trustee uploads with both names present the attribution reads
// "{TrusteeName} on behalf of {ClientName}"; otherwise SubmitterName is used.
type Options struct {
	SubmitterName   string
	IsTrusteeUpload bool
	TrusteeName     string
	ClientName      string
}

// Attribution resolves the name of record for the stamp. It never fails:
// a missing name falls back to "Unknown".
func Attribution(o Options) string {
	if o.IsTrusteeUpload && o.TrusteeName != "" && o.ClientName != "" {
		return o.TrusteeName + " on behalf of " + o.ClientName
	}
	if o.SubmitterName != "" {
		return o.SubmitterName
	}
	return "Unknown"
}

// Stamper applies attribution stamps to PDF documents. It holds no per-call
// state; concurrent calls with independent buffers are safe.
type Stamper struct {
	batchSize int
	now       func() time.Time
}

// New constructs a Stamper with the given page batch size; values < 1 fall
// back to DefaultBatchSize.
func New(batchSize int) *Stamper {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Stamper{batchSize: batchSize, now: time.Now}
}

// Stamp returns new PDF bytes with the attribution block drawn on every page.
//
// The attribution text and display timestamp are resolved once per call, so
// all pages carry identical stamps. Pages are processed in batches; a batch
// that fails to stamp is logged and skipped rather than failing the document,
// unless every page fails. Stamping is not idempotent: stamping already
// stamped output succeeds and visibly duplicates the block.
//
// Corrupt or unreadable input yields a *ParseError and no output. Encrypted
// documents are read with relaxed validation; the output is a freshly
// serialized document.
func (s *Stamper) Stamp(pdf []byte, o Options) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	// Skip object streams and xref streams on write for maximum viewer
	// compatibility of the recorded artifact.
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false

	pageCount, err := api.PageCount(bytes.NewReader(pdf), conf)
	if err != nil {
		return nil, NewParseError(err)
	}

	text := fmt.Sprintf("Recorded by:\n%s\nRecorded on:\n%s", Attribution(o), s.now().Format(timestampLayout))
	wm, err := api.TextWatermark(text, stampDesc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("build stamp watermark: %w", err)
	}

	current := pdf
	failed := 0
	for start := 1; start <= pageCount; start += s.batchSize {
		end := start + s.batchSize - 1
		if end > pageCount {
			end = pageCount
		}

		var buf bytes.Buffer
		sel := []string{fmt.Sprintf("%d-%d", start, end)}
		if err := api.AddWatermarks(bytes.NewReader(current), &buf, sel, wm, conf); err != nil {
			// Keep going: most pages succeeding still has evidentiary value.
			failed += end - start + 1
			logBatchError(start, end, err)
			continue
		}
		current = buf.Bytes()
	}

	if failed == pageCount {
		return nil, fmt.Errorf("stamp document: all %d pages failed", pageCount)
	}
	return current, nil
}

func logBatchError(start, end int, err error) {
	entry := map[string]any{
		"ts":         time.Now().UTC().Format(time.RFC3339Nano),
		"level":      "error",
		"msg":        "stamp_batch_failed",
		"page_start": start,
		"page_end":   end,
		"error":      err.Error(),
	}
	if b, err := json.Marshal(entry); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
