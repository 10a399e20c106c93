package generate

import (
	"fmt"
	"strings"

	"voice-ghostwriter/internal/domain"
)

// fallbackDraft builds a deterministic skeleton when no model is configured or
// the model call fails. Same inputs always produce the same text, no I/O.
func fallbackDraft(req domain.GenerateRequest) string {
	context := strings.TrimSpace(req.Context)

	factsLine := "[ADD FACT]"
	if len(req.Facts) > 0 {
		factsLine = strings.Join(req.Facts, "; ")
	}
	angleLine := req.Angle
	if angleLine == "" {
		angleLine = "pragmatic, balanced take"
	}
	ctaLine := req.CTA
	if ctaLine == "" {
		ctaLine = "What do you think?"
	}

	if req.Platform == domain.PlatformX {
		if req.Thread {
			return "1/3 " + context + "\n" +
				fmt.Sprintf("2/3 Data/Example: %s. %s.\n", factsLine, angleLine) +
				fmt.Sprintf("3/3 Takeaway: [ADD TAKEAWAY]. %s", ctaLine)
		}
		return fmt.Sprintf("%s Data: %s. %s. %s", context, factsLine, angleLine, ctaLine)
	}

	return fmt.Sprintf("%s\n\nData or example: %s.\n\nWhat we learned / did: [ADD DETAIL].\n\nTakeaway: %s. %s",
		context, factsLine, angleLine, ctaLine)
}
