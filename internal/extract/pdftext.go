// Package extract slices discrete posts out of noisy export dumps: PDF text
// renders of LinkedIn activity and Nitter profiles, plus saved HTML pages.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// PDFText renders a PDF to plain text via the pdftotext binary. The layout
// quality of pdftotext is what the line-oriented extractors are tuned
// against.
func PDFText(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, "pdftotext", path, "-")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("pdftotext: %s: %w", detail, err)
		}
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return stdout.String(), nil
}
