package telegram

import (
	"fmt"
	"strings"

	"diff-finder/api/internal/detector/types"
)

const (
	captionLimit = 1024
	ellipsis     = "\n…"

	textUsage = "Send me two images and I will mark what differs between them.\n" +
		"Send them as an album or one after another.\n" +
		"Commands: /help, /cancel, /engine, /health"
	textFirstAccepted  = "Got the first image, now send the second one."
	textCancelled      = "Ok, the first image is dropped."
	textNothingPending = "Nothing to cancel."
	textNoDifferences  = "No differences detected"
	textExtraIgnored   = "The album has more than two images, only the first two are compared."
	textWorking        = "Comparing the images..."
	textNotAnImage     = "This file is not a supported image. Supported formats: PNG, JPG, JPEG, WEBP, HEIC, HEIF"
	textUnknownCommand = "Unknown command, see /help"
	textEngineFixed    = "The engine is fixed by the server configuration."
	textUnknownEngine  = "Unknown engine, use /engine gemini or /engine gpt"
)

// resultCaption lists every difference with its confidence, cut to Telegram's caption limit.
func resultCaption(diffs []types.ConvertedDifference) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d difference(s)", len(diffs))
	for i, d := range diffs {
		line := fmt.Sprintf("\n%d. %s (%.0f%%)", i+1, d.Label, d.Confidence*100)
		if b.Len()+len(line) > captionLimit-len(ellipsis) {
			b.WriteString(ellipsis)
			break
		}
		b.WriteString(line)
	}
	return b.String()
}
