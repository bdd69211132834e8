package handle

import (
	"context"
	"image"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"diff-finder/api/internal/compare"
)

// Comparer runs the detection pipeline for one pair.
type Comparer interface {
	Run(ctx context.Context, img1, img2 image.Image) (*compare.Outcome, error)
}

type Handle struct {
	cmp     Comparer
	maxSide int
	log     *zap.Logger
}

func New(cmp Comparer, maxSide int, log *zap.Logger) *Handle {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handle{
		cmp:     cmp,
		maxSide: maxSide,
		log:     log,
	}
}

func writeJSON(c *gin.Context, code int, v any) {
	c.JSON(code, v)
}

func writeError(c *gin.Context, code int, msg string) {
	writeJSON(c, code, gin.H{"error": msg})
}

// Health answers liveness probes.
func (h *Handle) Health(c *gin.Context) {
	c.String(200, "ok")
}
