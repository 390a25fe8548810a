package mcp

import (
	"context"
	"fmt"

	"url2qr-mcp/metrics"
	"url2qr-mcp/qrcode"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServeStdio runs the MCP server over stdio using the go-sdk, exposing
// the same url_to_qrcode tool as the HTTP endpoint. Sessions and
// forwarded-host detection are HTTP concerns and do not apply here; the
// download base resolves from configuration or the localhost fallback.
func ServeStdio(ctx context.Context, info ServerInfo, converter Converter, recorder Recorder) error {
	impl := &sdk.Implementation{
		Name:    info.Name,
		Title:   "URL to QR Code MCP",
		Version: info.Version,
	}
	srv := sdk.NewServer(impl, &sdk.ServerOptions{HasTools: true})

	sdk.AddTool[convertArgs, qrcode.Artifact](srv, &sdk.Tool{
		Name:        ToolName,
		Title:       "URL to QR Code",
		Description: "Convert a URL into a downloadable QR code PNG image.",
		InputSchema: ConvertInputSchema(),
	}, func(ctx context.Context, _ *sdk.CallToolRequest, in convertArgs) (*sdk.CallToolResult, qrcode.Artifact, error) {
		art, err := converter.Convert(ctx, qrcode.Request{
			URL:             in.URL,
			Width:           in.Width,
			ErrorCorrection: in.ErrorCorrection,
		})
		if err != nil {
			metrics.Conversions.WithLabelValues("error").Inc()
			return &sdk.CallToolResult{}, qrcode.Artifact{}, fmt.Errorf("conversion failed: %w", err)
		}
		metrics.Conversions.WithLabelValues("ok").Inc()
		if recorder != nil {
			_ = recorder.Record(ctx, art)
		}
		// Explicit text content keeps the report identical to the HTTP
		// transport; the typed artifact rides structuredContent.
		return &sdk.CallToolResult{
			Content: []sdk.Content{&sdk.TextContent{Text: art.Summary()}},
		}, art, nil
	})

	return srv.Run(ctx, &sdk.StdioTransport{})
}
