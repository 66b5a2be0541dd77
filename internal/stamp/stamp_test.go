package stamp

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF assembles a minimal valid PDF with the given number of blank
// letter-sized pages, computing the xref table offsets as it writes.
func buildPDF(t *testing.T, pages int) []byte {
	t.Helper()

	var buf bytes.Buffer
	total := 2*pages + 3 // catalog, page tree, n pages, n content streams
	offsets := make([]int, total)

	write := func(objNum int, body string) {
		offsets[objNum] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", objNum, body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, pages)
	for i := 0; i < pages; i++ {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	write(1, "<< /Type /Catalog /Pages 2 0 R >>")
	write(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))

	const content = "BT ET\n"
	for i := 0; i < pages; i++ {
		write(i+3, fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R >>", pages+3+i))
	}
	for i := 0; i < pages; i++ {
		write(pages+3+i, fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(content), content))
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", total)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i < total; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", total, xrefPos)

	return buf.Bytes()
}

// pageCount parses out as a PDF and returns its page count.
func pageCount(t *testing.T, out []byte) int {
	t.Helper()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(bytes.NewReader(out), conf)
	require.NoError(t, err)
	return n
}

// containsText reports whether the literal text appears anywhere in the
// document, searching both raw bytes and decoded stream content (the stamp is
// drawn inside compressed form XObject streams).
func containsText(t *testing.T, out []byte, want string) bool {
	t.Helper()

	if bytes.Contains(out, []byte(want)) {
		return true
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadContext(bytes.NewReader(out), conf)
	require.NoError(t, err)

	for _, entry := range ctx.Table {
		if entry == nil || entry.Object == nil {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if err := sd.Decode(); err != nil {
			continue
		}
		if bytes.Contains(sd.Content, []byte(want)) {
			return true
		}
	}
	return false
}

func TestAttribution(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "plain submitter",
			opts: Options{SubmitterName: "Jane Doe"},
			want: "Jane Doe",
		},
		{
			name: "trustee upload composes both parties",
			opts: Options{IsTrusteeUpload: true, TrusteeName: "Acme Co", ClientName: "John Smith"},
			want: "Acme Co on behalf of John Smith",
		},
		{
			name: "trustee upload missing client falls back to submitter",
			opts: Options{IsTrusteeUpload: true, TrusteeName: "Acme Co", SubmitterName: "Jane Doe"},
			want: "Jane Doe",
		},
		{
			name: "no name never crashes",
			opts: Options{},
			want: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Attribution(tt.opts))
		})
	}
}

func TestStampPreservesPageCount(t *testing.T) {
	s := New(DefaultBatchSize)
	in := buildPDF(t, 3)

	out, err := s.Stamp(in, Options{SubmitterName: "Jane Doe"})

	require.NoError(t, err)
	assert.Equal(t, 3, pageCount(t, out))
}

func TestStampRendersAttributionBlock(t *testing.T) {
	s := New(DefaultBatchSize)
	in := buildPDF(t, 1)

	out, err := s.Stamp(in, Options{SubmitterName: "Jane Doe"})

	require.NoError(t, err)
	assert.True(t, containsText(t, out, "Recorded by:"))
	assert.True(t, containsText(t, out, "Jane Doe"))
	assert.True(t, containsText(t, out, "Recorded on:"))
}

func TestStampRendersTrusteeAttribution(t *testing.T) {
	s := New(DefaultBatchSize)
	in := buildPDF(t, 1)

	out, err := s.Stamp(in, Options{
		IsTrusteeUpload: true,
		TrusteeName:     "Acme Co",
		ClientName:      "John Smith",
	})

	require.NoError(t, err)
	assert.True(t, containsText(t, out, "Acme Co on behalf of John Smith"))
}

func TestStampCorruptInput(t *testing.T) {
	s := New(DefaultBatchSize)

	out, err := s.Stamp([]byte("definitely not a pdf"), Options{SubmitterName: "Jane Doe"})

	require.Error(t, err)
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Nil(t, out)
}

func TestStampTwiceIsAllowed(t *testing.T) {
	// Stamping is not idempotent: re-stamping must succeed and simply adds a
	// second block rather than erroring.
	s := New(DefaultBatchSize)
	in := buildPDF(t, 2)

	once, err := s.Stamp(in, Options{SubmitterName: "Jane Doe"})
	require.NoError(t, err)

	twice, err := s.Stamp(once, Options{SubmitterName: "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, 2, pageCount(t, twice))
}

func TestStampAllPagesInBatches(t *testing.T) {
	s := New(10)
	fixed := time.Date(2025, 3, 4, 10, 32, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	in := buildPDF(t, 25)

	out, err := s.Stamp(in, Options{SubmitterName: "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, 25, pageCount(t, out))

	// The timestamp is computed once per call, so every page carries the
	// same string.
	assert.True(t, containsText(t, out, "Mar 4, 2025, 10:32 AM"))

	// First and last page content must both invoke the stamp form.
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	dir := t.TempDir()
	err = api.ExtractContent(bytes.NewReader(out), dir, "stamped", []string{"1", "25"}, conf)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		content, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		assert.Contains(t, string(content), " Do", "%s missing stamp form invocation", e.Name())
	}
}

func TestNewBatchSizeFallback(t *testing.T) {
	assert.Equal(t, DefaultBatchSize, New(0).batchSize)
	assert.Equal(t, DefaultBatchSize, New(-5).batchSize)
	assert.Equal(t, 3, New(3).batchSize)
}
