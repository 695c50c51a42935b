package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
)

// EncodedImage is a generated image ready to hand to a caller. The
// producing tier is deliberately not recorded.
type EncodedImage struct {
	MIMEType string
	Data     []byte
}

// DataURI renders the image as a data: URI for embedding in HTML.
func (e EncodedImage) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", e.MIMEType, base64.StdEncoding.EncodeToString(e.Data))
}

// Backend is a single external image-generation service.
type Backend interface {
	Generate(ctx context.Context, prompt string) (EncodedImage, error)
}
