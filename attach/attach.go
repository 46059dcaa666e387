package attach

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"

	"elroy/session"
)

// Handler applies the acceptance policy for attachments: only PDF, plain
// text and images get in, oversized files are rejected, and large images
// are downscaled before they are queued. Filtering happens here, at
// acceptance time, so unsupported files never reach the pending list.
type Handler struct {
	maxFileSize  int64
	maxImageEdge uint
	jpegQuality  int
}

// NewHandler creates a handler with the default limits.
func NewHandler() *Handler {
	return &Handler{
		maxFileSize:  10 * 1024 * 1024, // 10MB
		maxImageEdge: 1568,
		jpegQuality:  85,
	}
}

// AcceptFile reads a file from disk and runs it through Accept.
func (h *Handler) AcceptFile(path string) (session.Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return session.Attachment{}, fmt.Errorf("file not found: %w", err)
	}
	if info.Size() > h.maxFileSize {
		return session.Attachment{}, fmt.Errorf("file too large: %d bytes (max %d bytes)", info.Size(), h.maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return session.Attachment{}, fmt.Errorf("failed to read file: %w", err)
	}

	return h.Accept(filepath.Base(path), data)
}

// Accept validates a named byte blob and returns the queued attachment.
// Unsupported media types are rejected with an error.
func (h *Handler) Accept(name string, data []byte) (session.Attachment, error) {
	if int64(len(data)) > h.maxFileSize {
		return session.Attachment{}, fmt.Errorf("file too large: %d bytes (max %d bytes)", len(data), h.maxFileSize)
	}

	mediaType := detectMediaType(name, data)

	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return h.acceptImage(name, mediaType, data)
	case mediaType == "application/pdf":
		return session.Attachment{
			Name:      name,
			MediaType: mediaType,
			Size:      int64(len(data)),
			Data:      data,
			Kind:      session.KindPDF,
		}, nil
	case mediaType == "text/plain":
		return session.Attachment{
			Name:      name,
			MediaType: mediaType,
			Size:      int64(len(data)),
			Data:      data,
			Kind:      session.KindText,
		}, nil
	}

	return session.Attachment{}, fmt.Errorf("file type not supported: %s", mediaType)
}

// detectMediaType resolves the declared media type from the filename
// extension, falling back to content sniffing.
func detectMediaType(name string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(name))
	if mediaType := mime.TypeByExtension(ext); mediaType != "" {
		if idx := strings.Index(mediaType, ";"); idx > 0 {
			mediaType = mediaType[:idx]
		}
		return mediaType
	}

	sniffed := http.DetectContentType(data)
	if idx := strings.Index(sniffed, ";"); idx > 0 {
		sniffed = sniffed[:idx]
	}
	return sniffed
}

// acceptImage downscales an image if either edge exceeds the maximum,
// re-encoding as PNG or JPEG. Formats we cannot decode are accepted
// as-is; the declared media type already passed the filter.
func (h *Handler) acceptImage(name, mediaType string, data []byte) (session.Attachment, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return session.Attachment{
			Name:      name,
			MediaType: mediaType,
			Size:      int64(len(data)),
			Data:      data,
			Kind:      session.KindImage,
		}, nil
	}

	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())

	if width > h.maxImageEdge || height > h.maxImageEdge {
		if width > height {
			img = resize.Resize(h.maxImageEdge, 0, img, resize.Lanczos3)
		} else {
			img = resize.Resize(0, h.maxImageEdge, img, resize.Lanczos3)
		}

		var buf bytes.Buffer
		switch format {
		case "png":
			err = png.Encode(&buf, img)
		default:
			err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: h.jpegQuality})
			mediaType = "image/jpeg"
		}
		if err != nil {
			return session.Attachment{}, fmt.Errorf("failed to encode image: %w", err)
		}
		data = buf.Bytes()
	}

	return session.Attachment{
		Name:      name,
		MediaType: mediaType,
		Size:      int64(len(data)),
		Data:      data,
		Kind:      session.KindImage,
	}, nil
}
