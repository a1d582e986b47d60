package libcms

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif" // Registers decoder used for previews
	_ "image/png" // Registers decoder used for previews

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

const (
	// MaxImageSize is the maximum size of an uploaded image (10 MiB).
	MaxImageSize = 10 << 20

	previewSize    = 300
	previewQuality = 85
)

// ErrImageTooLarge is returned when an image exceeds MaxImageSize.
var ErrImageTooLarge = errors.New("image must be smaller than 10MB")

type (
	// An EncodedImage is an image ready to be embedded in a JSON request body.
	EncodedImage struct {
		Name     string
		MIMEType string
		Size     int64
		// Data is the data URI of the original bytes, sent to the server.
		Data string
		// Preview is a data URI of a thumbnail, or Data when the bytes can't be decoded as an image.
		Preview string
		// Width and Height are the original dimensions, zero when unknown.
		Width  int
		Height int
	}

	// An ImageReadError is returned when the image can't be read.
	ImageReadError struct {
		Name string
		Err  error
	}
)

func (e *ImageReadError) Error() string {
	return fmt.Sprintf("could not read image %s: %s", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ImageReadError) Unwrap() error {
	return e.Err
}

// EncodeFile reads and encodes the given image file.
// Files bigger than MaxImageSize are rejected before being read.
func EncodeFile(filename string) (EncodedImage, error) {
	name := filepath.Base(filename)

	stat, err := os.Stat(filename)
	if err != nil {
		return EncodedImage{}, &ImageReadError{Name: name, Err: err}
	}
	if stat.IsDir() {
		return EncodedImage{}, &ImageReadError{Name: name, Err: errors.New("is a directory")}
	}
	if stat.Size() > MaxImageSize {
		return EncodedImage{}, ErrImageTooLarge
	}

	f, err := os.Open(filename)
	if err != nil {
		return EncodedImage{}, &ImageReadError{Name: name, Err: err}
	}
	defer f.Close()

	return EncodeImage(name, f)
}

// EncodeImage reads and encodes the image from r.
func EncodeImage(name string, r io.Reader) (EncodedImage, error) {
	payload, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return EncodedImage{}, &ImageReadError{Name: name, Err: err}
	}
	if len(payload) > MaxImageSize {
		return EncodedImage{}, ErrImageTooLarge
	}
	if len(payload) == 0 {
		return EncodedImage{}, &ImageReadError{Name: name, Err: errors.New("empty file")}
	}

	img := EncodedImage{
		Name:     name,
		MIMEType: mimeType(name, payload),
		Size:     int64(len(payload)),
	}
	img.Data = DataURI(img.MIMEType, payload)
	img.Preview = img.Data

	decoded, _, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return img, nil // Unknown format, the original bytes are used as preview.
	}

	bounds := decoded.Bounds()
	img.Width, img.Height = bounds.Dx(), bounds.Dy()

	thumbnail := resize.Thumbnail(previewSize, previewSize, decoded, resize.Lanczos3)
	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, thumbnail, &jpeg.Options{Quality: previewQuality}); err == nil {
		img.Preview = DataURI("image/jpeg", buf.Bytes())
	}

	return img, nil
}

// DataURI returns the base64 data URI of the payload.
func DataURI(mimetype string, payload []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimetype, base64.StdEncoding.EncodeToString(payload))
}

// DecodeDataURI returns the MIME type and the payload of a base64 data URI.
func DecodeDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, errors.New("not a data URI")
	}

	header, data, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return "", nil, errors.New("malformed data URI")
	}

	mimetype, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, errors.New("only base64 data URIs are supported")
	}
	if mimetype == "" {
		mimetype = "text/plain"
	}

	payload, err := base64.StdEncoding.DecodeString(data)
	return mimetype, payload, errors.Wrap(err, "could not decode data URI payload")
}

func mimeType(name string, payload []byte) string {
	mimetype := http.DetectContentType(payload)
	if mimetype != "application/octet-stream" && !strings.HasPrefix(mimetype, "text/") {
		return mimetype
	}

	// Sniffing is not accurate enough (e.g. SVG is seen as XML), fallback on the file extension.
	if ext := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ext != "" {
		return strings.SplitN(ext, ";", 2)[0]
	}
	return mimetype
}
