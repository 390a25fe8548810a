package mcp

import (
	"context"
	"errors"
	"testing"

	"url2qr-mcp/qrcode"
)

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, qrcode.Artifact) error {
	return errors.New("disk full")
}

func TestConvertInputSchemaRequiresURL(t *testing.T) {
	t.Parallel()

	schema := ConvertInputSchema()
	if len(schema.Required) != 1 || schema.Required[0] != "url" {
		t.Fatalf("required = %v, want [url]", schema.Required)
	}
	for _, prop := range []string{"url", "width", "error_correction"} {
		if _, ok := schema.Properties[prop]; !ok {
			t.Errorf("schema is missing property %q", prop)
		}
	}
}

func TestConvertToolBadArguments(t *testing.T) {
	t.Parallel()

	tl := convertTool(&stubConverter{}, nil)
	result := tl.handler(context.Background(), []byte(`{"url":12}`), "")
	if !result.IsError {
		t.Fatal("expected isError result for malformed arguments")
	}
}

func TestConvertToolRecorderFailureDoesNotFailCall(t *testing.T) {
	t.Parallel()

	conv := &stubConverter{art: qrcode.Artifact{
		Filename:        "qrcode-r.png",
		SourceURL:       "https://example.com",
		Width:           300,
		ErrorCorrection: "M",
		DownloadURL:     "http://localhost:3000/qrcodes/qrcode-r.png",
	}}
	tl := convertTool(conv, failingRecorder{})
	result := tl.handler(context.Background(), []byte(`{"url":"https://example.com"}`), "")
	if result.IsError {
		t.Fatalf("history failure leaked into the tool result: %+v", result.Content)
	}
}
