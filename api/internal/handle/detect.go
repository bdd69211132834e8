package handle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"diff-finder/api/internal/detector/types"
	"diff-finder/api/internal/imgproc"
)

const (
	msgRequired      = "Both image1 and image2 are required"
	msgNotSelected   = "Both images must be selected"
	msgInvalidFormat = "Invalid file format. Supported formats: PNG, JPG, JPEG, WEBP, HEIC, HEIF"
	msgTooLarge      = "Request body is too large"
	msgNoDifferences = "No differences detected"
)

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type DetectResponse struct {
	Message         string                      `json:"message"`
	Differences     []types.ConvertedDifference `json:"differences"`
	DifferenceImage *string                     `json:"difference_image"` // data:image/png;base64,... or null
	ImageDimensions *Dimensions                 `json:"image_dimensions,omitempty"`
}

// DetectDifferences handles POST /detect_differences.
func (h *Handle) DetectDifferences(c *gin.Context) {
	files, err := readUploads(c.Request)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		writeError(c, http.StatusBadRequest, msgRequired)
		return
	}

	f1, f2 := files["image1"], files["image2"]
	switch {
	case f1 == nil || f2 == nil:
		writeError(c, http.StatusBadRequest, msgRequired)
		return
	case f1.filename == "" || f2.filename == "":
		writeError(c, http.StatusBadRequest, msgNotSelected)
		return
	case !imgproc.AllowedFile(f1.filename) || !imgproc.AllowedFile(f2.filename):
		writeError(c, http.StatusBadRequest, msgInvalidFormat)
		return
	}

	img1, err := imgproc.Prepare(bytes.NewReader(f1.data), h.maxSide)
	if err != nil {
		h.fail(c, err)
		return
	}
	img2, err := imgproc.Prepare(bytes.NewReader(f2.data), h.maxSide)
	if err != nil {
		h.fail(c, err)
		return
	}

	out, err := h.cmp.Run(c.Request.Context(), img1, img2)
	if err != nil {
		h.fail(c, err)
		return
	}

	if out.Annotated == nil {
		writeJSON(c, http.StatusOK, DetectResponse{
			Message:     msgNoDifferences,
			Differences: []types.ConvertedDifference{},
		})
		return
	}

	uri, err := imgproc.PNGDataURL(out.Annotated)
	if err != nil {
		h.fail(c, err)
		return
	}
	writeJSON(c, http.StatusOK, DetectResponse{
		Message:         fmt.Sprintf("Found %d difference(s)", len(out.Differences)),
		Differences:     out.Differences,
		DifferenceImage: &uri,
		ImageDimensions: &Dimensions{Width: out.Width, Height: out.Height},
	})
}

// upload is the first file part sent for a field.
type upload struct {
	filename string
	data     []byte
}

// readUploads streams the form and keeps the first file part per field.
// A part is a file only when its Content-Disposition carries a filename parameter:
// filename="" is an unselected file input, a part without the parameter is a text field.
func readUploads(r *http.Request) (map[string]*upload, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	out := make(map[string]*upload, 2)
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		name, filename, isFile := disposition(p)
		if !isFile || out[name] != nil {
			_ = p.Close()
			continue
		}
		data, err := io.ReadAll(p)
		_ = p.Close()
		if err != nil {
			return nil, err
		}
		out[name] = &upload{filename: filename, data: data}
	}
}

func disposition(p *multipart.Part) (name, filename string, isFile bool) {
	_, params, err := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
	if err != nil {
		return "", "", false
	}
	filename, isFile = params["filename"]
	return params["name"], filename, isFile
}

func (h *Handle) fail(c *gin.Context, err error) {
	h.log.Error("detect_differences failed", zap.Error(err))
	writeError(c, http.StatusInternalServerError, "An error occurred: "+err.Error())
}
