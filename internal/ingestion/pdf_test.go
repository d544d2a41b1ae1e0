package ingestion

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractResumeText_PlainText(t *testing.T) {
	text, err := ExtractResumeText("resume.txt", []byte("Ada   Lovelace\r\nAnalyst\n"))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace\nAnalyst", text)
}

func TestExtractResumeText_Docx(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document><w:body><w:p><w:r><w:t>Ada Lovelace</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Ana</w:t></w:r><w:r><w:t>lyst</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	text, err := ExtractResumeText("resume.DOCX", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace\nAnalyst", text)
}

func TestExtractResumeText_Errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
	}{
		{name: "unsupported extension", filename: "resume.odt", data: []byte("x")},
		{name: "corrupt pdf", filename: "resume.pdf", data: []byte("not a pdf")},
		{name: "corrupt docx", filename: "resume.docx", data: []byte("not a zip")},
		{name: "empty text", filename: "resume.txt", data: []byte("  \n ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractResumeText(tt.filename, tt.data)
			var parseErr *types.ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestReadResumeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.md")
	require.NoError(t, os.WriteFile(path, []byte("# Ada\n- Go"), 0o644))

	text, err := ReadResumeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Ada\n- Go", text)

	_, err = ReadResumeFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
