package llm

import "context"

// ImagePart is an inline image attached to a generation request.
type ImagePart struct {
	MimeType string
	Data     string
}

// GenerateInput is the full multimodal payload sent to the model.
type GenerateInput struct {
	Prompt string
	Images []ImagePart
}

// Client generates raw text from a prompt plus optional inline images.
type Client interface {
	Generate(ctx context.Context, input GenerateInput) (string, error)
}
