package acquire

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// extractDocx reads the paragraph text of a .docx file: the OPC zip
// container holds word/document.xml, whose <w:p> elements are the
// paragraphs and <w:t> runs the text.
func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx container: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open document.xml: %w", err)
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("failed to read document.xml: %w", err)
		}
		break
	}
	if docXML == nil {
		return "", fmt.Errorf("docx has no word/document.xml")
	}

	xml := etree.NewDocument()
	if err := xml.ReadFromBytes(docXML); err != nil {
		return "", fmt.Errorf("failed to parse document.xml: %w", err)
	}

	var paragraphs []string
	collectParagraphs(xml.Root(), &paragraphs)
	return strings.Join(paragraphs, "\n"), nil
}

// collectParagraphs walks the element tree gathering the text runs of
// each w:p element in document order.
func collectParagraphs(el *etree.Element, out *[]string) {
	if el == nil {
		return
	}
	if el.Tag == "p" {
		var b strings.Builder
		collectRuns(el, &b)
		*out = append(*out, b.String())
		return
	}
	for _, child := range el.ChildElements() {
		collectParagraphs(child, out)
	}
}

func collectRuns(el *etree.Element, b *strings.Builder) {
	if el.Tag == "t" {
		b.WriteString(el.Text())
		return
	}
	for _, child := range el.ChildElements() {
		collectRuns(child, b)
	}
}
