package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"url2qr-mcp/metrics"
	"url2qr-mcp/qrcode"
	v "url2qr-mcp/validate"

	"github.com/google/jsonschema-go/jsonschema"
)

// ToolName is the single conversion operation this server exposes.
const ToolName = "url_to_qrcode"

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

// Converter produces QR artifacts; satisfied by *qrcode.Generator.
type Converter interface {
	Convert(ctx context.Context, req qrcode.Request) (qrcode.Artifact, error)
}

// Recorder persists conversion history; satisfied by *store.Store.
// Writes are best-effort and never fail a call.
type Recorder interface {
	Record(ctx context.Context, art qrcode.Artifact) error
}

// toolHandler executes one tools/call invocation. detectedBase is the
// per-request public base derived from forwarded headers, empty over
// stdio or when no proxy headers were seen.
type toolHandler func(ctx context.Context, args json.RawMessage, detectedBase string) *CallToolResult

type tool struct {
	info    ToolInfo
	handler toolHandler
}

// convertArgs mirrors the url_to_qrcode input schema.
type convertArgs struct {
	URL             string `json:"url"`
	Width           int    `json:"width,omitempty"`
	ErrorCorrection string `json:"error_correction,omitempty"`
}

// ConvertInputSchema describes the url_to_qrcode arguments. Shared by the
// HTTP router's tools/list and the stdio SDK registration.
func ConvertInputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"url": {
				Type:        "string",
				Description: "Absolute http(s) URL to encode into a QR code.",
				MinLength:   intPtr(v.URLMin),
				MaxLength:   intPtr(v.URLMax),
			},
			"width": {
				Type:        "integer",
				Description: fmt.Sprintf("Image width/height in pixels (default: %d).", v.DefaultWidth),
				Minimum:     floatPtr(v.WidthMin),
				Maximum:     floatPtr(v.WidthMax),
			},
			"error_correction": {
				Type:        "string",
				Description: fmt.Sprintf("QR error correction level: L, M, Q or H (default: %s).", v.DefaultECLevel),
				Pattern:     v.ECLevelPattern,
			},
		},
		Required: []string{"url"},
	}
}

func convertTool(converter Converter, recorder Recorder) tool {
	return tool{
		info: ToolInfo{
			Name:        ToolName,
			Description: "Convert a URL into a downloadable QR code PNG image.",
			InputSchema: ConvertInputSchema(),
		},
		handler: func(ctx context.Context, args json.RawMessage, detectedBase string) *CallToolResult {
			var in convertArgs
			if len(args) > 0 {
				if err := json.Unmarshal(args, &in); err != nil {
					metrics.Conversions.WithLabelValues("error").Inc()
					return errorResult(fmt.Sprintf("invalid arguments: %v", err))
				}
			}

			art, err := converter.Convert(ctx, qrcode.Request{
				URL:             in.URL,
				Width:           in.Width,
				ErrorCorrection: in.ErrorCorrection,
				DetectedBase:    detectedBase,
			})
			if err != nil {
				metrics.Conversions.WithLabelValues("error").Inc()
				return errorResult(err.Error())
			}

			metrics.Conversions.WithLabelValues("ok").Inc()
			if recorder != nil {
				if err := recorder.Record(ctx, art); err != nil {
					log.Printf("[mcp] history record failed for %s: %v", art.Filename, err)
				}
			}
			return textResult(art.Summary(), art)
		},
	}
}
