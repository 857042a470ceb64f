package util

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type DocumentKind string

const (
	DocumentPDF  DocumentKind = "pdf"
	DocumentDOCX DocumentKind = "docx"
)

const (
	PDFEngineMuPDF  = "mupdf"
	PDFEngineNative = "native"
)

// KindForMIME maps an accepted upload content type to its document kind.
func KindForMIME(contentType string) (DocumentKind, bool) {
	switch contentType {
	case MIMETypePDF:
		return DocumentPDF, true
	case MIMETypeDOCX:
		return DocumentDOCX, true
	default:
		return "", false
	}
}

// TextExtractor turns PDF and DOCX payloads into plain text. It never returns an error:
// any parse failure is logged and yields "".
type TextExtractor struct {
	pdfEngine string
	logger    *slog.Logger
}

func NewTextExtractor(pdfEngine string, logger *slog.Logger) *TextExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if pdfEngine == "" {
		pdfEngine = PDFEngineMuPDF
	}
	return &TextExtractor{pdfEngine: pdfEngine, logger: logger}
}

func (e *TextExtractor) Extract(data []byte, kind DocumentKind) (text string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("extract.panic", "kind", kind, "panic", fmt.Sprint(r))
			text = ""
		}
	}()

	var err error
	switch kind {
	case DocumentPDF:
		if e.pdfEngine == PDFEngineNative {
			text, err = extractPDFNative(data)
		} else {
			text, err = extractPDFMuPDF(data)
		}
	case DocumentDOCX:
		text, err = extractDOCX(data)
	default:
		err = fmt.Errorf("unsupported document kind %q", kind)
	}
	if err != nil {
		e.logger.Warn("extract.failed", "kind", kind, "engine", e.pdfEngine, "bytes", len(data), "error", err)
		return ""
	}
	e.logger.Info("extract.ok", "kind", kind, "bytes", len(data), "chars", len(text))
	return text
}

// extractPDFMuPDF concatenates the text of every page in page order.
func extractPDFMuPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", n+1, err)
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}

func extractPDFNative(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	paragraphs, err := bodyParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", err
	}
	return strings.Join(paragraphs, "\n"), nil
}

// bodyParagraphs returns the text of each top-level w:p of w:body in document order.
// Paragraphs nested in tables or text boxes are skipped.
func bodyParagraphs(documentXML string) ([]string, error) {
	dec := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		stack      []string
		paragraphs []string
		current    strings.Builder
		inPara     bool
		paraDepth  int
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if !inPara && name == "p" && len(stack) > 0 && stack[len(stack)-1] == "body" {
				inPara = true
				paraDepth = len(stack)
				current.Reset()
			}
			if inPara {
				switch name {
				case "t":
					inText = true
				case "tab":
					current.WriteString("\t")
				case "br", "cr":
					current.WriteString("\n")
				}
			}
			stack = append(stack, name)
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			stack = stack[:len(stack)-1]
			if t.Name.Local == "t" {
				inText = false
			}
			if inPara && t.Name.Local == "p" && len(stack) == paraDepth {
				paragraphs = append(paragraphs, current.String())
				inPara = false
			}
		case xml.CharData:
			if inPara && inText {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}
