package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matzehuels/netgraph/pkg/errors"
)

// rsvgBinary is the librsvg command line converter.
var rsvgBinary = "rsvg-convert"

const rsvgInstallHint = "install librsvg (macOS: brew install librsvg, Linux: apt install librsvg2-bin)"

// Convert turns an SVG document into a PDF or PNG by piping it through
// rsvg-convert. scale only applies to PNG output; 2.0 doubles the pixel size.
func Convert(ctx context.Context, svg []byte, format string, scale float64) ([]byte, error) {
	args := []string{"--format", format}
	switch format {
	case FormatPDF:
	case FormatPNG:
		if scale > 0 {
			args = append(args, "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "cannot convert SVG to %s", format)
	}

	bin, err := exec.LookPath(rsvgBinary)
	if err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s output needs %s: %s", format, rsvgBinary, rsvgInstallHint)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", rsvgBinary, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", rsvgBinary, err)
	}
	return stdout.Bytes(), nil
}
