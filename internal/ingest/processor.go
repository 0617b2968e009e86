package ingest

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"practice-backend/internal/shared/storage/object"
	"practice-backend/internal/shared/telemetry"
)

// MaxDocuments caps how many source documents a single request may reference.
const MaxDocuments = 5

// Document identifies an uploaded file referenced by a generation request.
type Document struct {
	Path     string
	Name     string
	MimeType string
	Size     int64
}

// ImagePart is an inline image prepared for multimodal prompting.
type ImagePart struct {
	MimeType string
	Data     string
}

// Result carries the combined extraction output for a document batch.
type Result struct {
	ExtractedText string
	Images        []ImagePart
}

// Processor downloads and prepares source documents for prompting.
type Processor struct {
	Store object.ObjectStore
}

// Process walks the documents in order, extracting PDF text and encoding
// images. Individual document failures never abort the batch: they are
// recorded as bracketed markers in the extracted text so the model and the
// user can see which inputs were unusable.
func (p *Processor) Process(ctx context.Context, docs []Document) (Result, error) {
	if len(docs) == 0 {
		return Result{}, nil
	}

	if len(docs) > MaxDocuments {
		telemetry.Info("ingest.limit", map[string]any{
			"requested": len(docs),
			"processed": MaxDocuments,
		})
		docs = docs[:MaxDocuments]
	}

	var texts []string
	var images []ImagePart

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		data, err := p.download(ctx, doc.Path)
		if err != nil {
			telemetry.Error("ingest.download_failed", map[string]any{
				"name":  doc.Name,
				"error": err.Error(),
			})
			texts = append(texts, fmt.Sprintf("[Failed to download %s: %s]", doc.Name, err.Error()))
			continue
		}

		switch {
		case strings.Contains(doc.MimeType, "pdf"):
			text := extractOrMarker(data)
			if strings.TrimSpace(text) != "" {
				clean := truncateText(strings.TrimSpace(text), maxPDFTextChars)
				texts = append(texts, fmt.Sprintf("Content from PDF \"%s\":\n%s", doc.Name, clean))
			} else {
				texts = append(texts, fmt.Sprintf("[No readable text found in PDF \"%s\"]", doc.Name))
			}
		case strings.Contains(doc.MimeType, "image"):
			images = append(images, ImagePart{
				MimeType: doc.MimeType,
				Data:     base64.StdEncoding.EncodeToString(data),
			})
		default:
			texts = append(texts, fmt.Sprintf("[Unsupported file type: %s]", doc.Name))
		}
	}

	return Result{
		ExtractedText: strings.Join(texts, "\n\n"),
		Images:        images,
	}, nil
}

func (p *Processor) download(ctx context.Context, storageKey string) ([]byte, error) {
	rc, err := p.Store.Open(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// extractOrMarker never fails: a broken PDF yields a bracketed marker that
// flows into the prompt like any other extracted text.
func extractOrMarker(data []byte) string {
	text, err := extractPDFText(data)
	if err != nil {
		return fmt.Sprintf("[PDF text extraction failed: %s. Please try uploading the PDF as images or copy-paste the text manually.]", err.Error())
	}
	return text
}
