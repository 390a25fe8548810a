// Package qrcode produces QR code PNG artifacts from source URLs and
// derives their public download locations.
package qrcode

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"url2qr-mcp/validate"

	"github.com/google/uuid"
	qr "github.com/skip2/go-qrcode"
)

// DownloadRoute is the HTTP path prefix artifacts are served under.
const DownloadRoute = "/qrcodes"

// Artifact describes one produced QR code image. Records are immutable
// once written; repeated conversions of the same URL yield new artifacts.
type Artifact struct {
	Filename        string `json:"filename"`
	SourceURL       string `json:"sourceUrl"`
	Width           int    `json:"width"`
	ErrorCorrection string `json:"errorCorrection"`
	DownloadURL     string `json:"downloadUrl"`
}

// Summary renders the human-readable conversion report embedded in tool
// results.
func (a Artifact) Summary() string {
	return fmt.Sprintf(
		"QR code generated successfully!\n\nSource URL: %s\nDownload URL: %s\nSize: %dx%dpx\nError Correction: %s\nFile: %s",
		a.SourceURL, a.DownloadURL, a.Width, a.Width, a.ErrorCorrection, a.Filename,
	)
}

// Request carries one conversion order. Zero-value Width and empty
// ErrorCorrection select the documented defaults. DetectedBase is the
// per-request public base URL derived from forwarded headers; empty when
// the transport saw none (or there is no transport, as over stdio).
type Request struct {
	URL             string
	Width           int
	ErrorCorrection string
	DetectedBase    string
}

// Generator writes QR code PNGs into a fixed output directory.
type Generator struct {
	outputDir string
	baseURL   string
	port      int
}

// NewGenerator returns a producer writing into outputDir. publicBaseURL
// may be empty; port feeds the localhost fallback of download URLs.
func NewGenerator(outputDir, publicBaseURL string, port int) *Generator {
	return &Generator{
		outputDir: outputDir,
		baseURL:   strings.TrimRight(publicBaseURL, "/"),
		port:      port,
	}
}

// Path returns the on-disk location for an artifact file name.
func (g *Generator) Path(filename string) string {
	return filepath.Join(g.outputDir, filename)
}

// Convert validates the request, encodes the URL into a PNG under a fresh
// collision-resistant name, and returns the artifact metadata. Validation
// failures are reported before the encoder is touched. The context is not
// used to cancel an encode in flight.
func (g *Generator) Convert(_ context.Context, req Request) (Artifact, error) {
	source := strings.TrimSpace(req.URL)
	if err := validate.ValidateSourceURL(source); err != nil {
		return Artifact{}, err
	}

	width := req.Width
	if width == 0 {
		width = validate.DefaultWidth
	}
	if err := validate.ValidateWidth(width); err != nil {
		return Artifact{}, err
	}

	ec := req.ErrorCorrection
	if ec == "" {
		ec = validate.DefaultECLevel
	}
	ec, err := validate.NormalizeECLevel(ec)
	if err != nil {
		return Artifact{}, err
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return Artifact{}, fmt.Errorf("failed to ensure output directory: %w", err)
	}

	filename := NewArtifactName()
	if err := qr.WriteFile(source, recoveryLevel(ec), width, g.Path(filename)); err != nil {
		return Artifact{}, fmt.Errorf("failed to write qr code image: %w", err)
	}

	return Artifact{
		Filename:        filename,
		SourceURL:       source,
		Width:           width,
		ErrorCorrection: ec,
		DownloadURL:     g.resolveBase(req.DetectedBase) + DownloadRoute + "/" + filename,
	}, nil
}

// resolveBase picks the public base URL for download links. Per-request
// detection wins over the configured base, which wins over localhost.
func (g *Generator) resolveBase(detected string) string {
	if detected != "" {
		return strings.TrimRight(detected, "/")
	}
	if g.baseURL != "" {
		return g.baseURL
	}
	return fmt.Sprintf("http://localhost:%d", g.port)
}

// NewArtifactName generates a collision-resistant artifact file name.
func NewArtifactName() string {
	return "qrcode-" + uuid.NewString() + ".png"
}

// ValidArtifactName reports whether name is safe to join with the output
// directory and serve back: a bare .png file name with no path elements.
func ValidArtifactName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".png") {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return true
}

func recoveryLevel(ec string) qr.RecoveryLevel {
	switch ec {
	case "L":
		return qr.Low
	case "Q":
		return qr.High
	case "H":
		return qr.Highest
	default:
		return qr.Medium
	}
}
