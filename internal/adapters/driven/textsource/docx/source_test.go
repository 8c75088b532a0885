package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestDOCX creates a minimal valid DOCX file on disk.
func writeTestDOCX(t *testing.T, dir, name, documentXML string) string {
	t.Helper()

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	// Add [Content_Types].xml (required for valid DOCX)
	contentTypes, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))
	require.NoError(t, err)

	if documentXML != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = doc.Write([]byte(documentXML))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
	return path
}

func TestSource_Extensions(t *testing.T) {
	s := New()
	assert.Equal(t, []string{".docx", ".doc"}, s.Extensions())
}

func TestSource_Extract_Success(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Tumour Microenvironment Remodelling</w:t></w:r></w:p>
<w:p><w:r><w:t>Zhang Wei</w:t><w:t>, Li Na</w:t></w:r></w:p>
</w:body>
</w:document>`

	path := writeTestDOCX(t, t.TempDir(), "paper.docx", docXML)

	doc, err := New().Extract(context.Background(), path, 5)

	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "paper.docx", doc.Name)
	assert.Equal(t, "Tumour Microenvironment Remodelling\nZhang Wei, Li Na", doc.Text)
	assert.Zero(t, doc.Pages)
}

func TestSource_Extract_NoDocumentXML(t *testing.T) {
	path := writeTestDOCX(t, t.TempDir(), "hollow.docx", "")

	doc, err := New().Extract(context.Background(), path, 0)

	require.NoError(t, err)
	assert.Empty(t, doc.Text)
}

func TestSource_Extract_MalformedXML(t *testing.T) {
	path := writeTestDOCX(t, t.TempDir(), "broken.docx", "<not-closed")

	doc, err := New().Extract(context.Background(), path, 0)

	require.NoError(t, err)
	assert.Empty(t, doc.Text)
}

func TestSource_Extract_LegacyDocIsNotAnArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.doc")
	require.NoError(t, os.WriteFile(path, []byte{0xD0, 0xCF, 0x11, 0xE0, 0x00, 0x01}, 0600))

	doc, err := New().Extract(context.Background(), path, 0)

	require.NoError(t, err)
	assert.Equal(t, "legacy.doc", doc.Name)
	assert.Empty(t, doc.Text)
}

func TestSource_Extract_MissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), "/nonexistent/file.docx", 0)
	assert.Error(t, err)
}
