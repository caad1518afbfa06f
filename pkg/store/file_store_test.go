package store

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<<>>\n%%EOF\n")

func TestSavePDF(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalFileStore(dir)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	path, err := s.SavePDF("Baptism Cert.pdf", bytes.NewReader(samplePDF))
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "1700000000000-Baptism_Cert.pdf")), path)

	rc, err := s.Open(path)
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, samplePDF, got)
}

func TestSavePDFRejectsOtherContent(t *testing.T) {
	s := NewLocalFileStore(t.TempDir())

	_, err := s.SavePDF("fake.pdf", strings.NewReader("<html><body>not a pdf</body></html>"))
	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestSavePDFRejectsLargeFiles(t *testing.T) {
	s := NewLocalFileStore(t.TempDir())

	big := append(append([]byte{}, samplePDF...), make([]byte, MaxUploadBytes)...)
	_, err := s.SavePDF("big.pdf", bytes.NewReader(big))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestOpenOutsideStore(t *testing.T) {
	s := NewLocalFileStore(t.TempDir())

	_, err := s.Open("../../etc/passwd")
	assert.ErrorIs(t, err, ErrOutsideStore)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "passwd.pdf", sanitize("../../etc/passwd"))
	assert.Equal(t, "certificate.pdf", sanitize("..."))
	assert.Equal(t, "a_b.PDF", sanitize("a b.PDF"))
}

func TestRemove(t *testing.T) {
	s := NewLocalFileStore(t.TempDir())

	path, err := s.SavePDF("old.pdf", bytes.NewReader(samplePDF))
	require.NoError(t, err)
	require.NoError(t, s.Remove(path))

	_, err = s.Open(path)
	assert.Error(t, err)
	assert.NoError(t, s.Remove(path), "removing twice is fine")
	assert.ErrorIs(t, s.Remove("../../etc/passwd"), ErrOutsideStore)
}
