// Package imgproc decodes uploads into RGB buffers, downsizes them and encodes results.
package imgproc

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "github.com/jdeng/goheif" // HEIC/HEIF decoder
	_ "golang.org/x/image/webp"

	"diff-finder/api/internal/util"
)

// DefaultMaxSide is the largest side an image is allowed to keep before it is sent to a model.
const DefaultMaxSide = 1024

// AllowedExtensions are matched against the lower-cased suffix after the last dot.
var AllowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"webp": {},
	"heic": {},
	"heif": {},
}

// AllowedFile reports whether the file name carries a supported image extension.
func AllowedFile(name string) bool {
	if !strings.Contains(name, ".") {
		return false
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	_, ok := AllowedExtensions[ext]
	return ok
}

// Decode reads any registered format and drops the alpha channel.
// EXIF orientation is ignored: boxes and dimensions refer to the stored pixel grid.
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(false))
	if err != nil {
		return nil, fmt.Errorf("imgproc decode: %w", err)
	}
	return toRGB(img), nil
}

// toRGB returns an opaque copy: colour channels are kept as is and alpha is forced to 0xFF.
func toRGB(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xFF
	}
	return dst
}

// Fit scales img down so that neither side exceeds maxSide, keeping the aspect ratio.
// Smaller images are returned unchanged in size.
func Fit(img image.Image, maxSide int) *image.NRGBA {
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	b := img.Bounds()
	if b.Dx() <= maxSide && b.Dy() <= maxSide {
		return imaging.Clone(img)
	}
	return imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
}

// Prepare is Decode followed by Fit.
func Prepare(r io.Reader, maxSide int) (*image.NRGBA, error) {
	img, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return Fit(img, maxSide), nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("imgproc encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// PNGDataURL encodes img as a data:image/png;base64 URI.
func PNGDataURL(img image.Image) (string, error) {
	b, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return util.MakeDataURL("image/png", base64.StdEncoding.EncodeToString(b)), nil
}
