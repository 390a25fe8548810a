package validate

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateSourceURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		in        string
		expectErr bool
	}{
		{name: "https", in: "https://example.com"},
		{name: "http with path and query", in: "http://example.com/a/b?x=1"},
		{name: "surrounding whitespace", in: "  https://example.com  "},
		{name: "empty", in: "", expectErr: true},
		{name: "bare word", in: "not-a-url", expectErr: true},
		{name: "relative path", in: "/relative/path", expectErr: true},
		{name: "missing scheme", in: "example.com", expectErr: true},
		{name: "unsupported scheme", in: "ftp://example.com", expectErr: true},
		{name: "scheme only", in: "https://", expectErr: true},
		{name: "too long", in: "https://example.com/" + strings.Repeat("a", URLMax), expectErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateSourceURL(tc.in)
			if tc.expectErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidURL) {
					t.Fatalf("error = %v, want ErrInvalidURL", err)
				}
				if !strings.Contains(err.Error(), "Invalid URL format") {
					t.Fatalf("error %q does not contain %q", err.Error(), "Invalid URL format")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateWidth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		in        int
		expectErr bool
	}{
		{name: "default", in: DefaultWidth},
		{name: "min", in: WidthMin},
		{name: "max", in: WidthMax},
		{name: "zero", in: 0, expectErr: true},
		{name: "negative", in: -300, expectErr: true},
		{name: "above max", in: WidthMax + 1, expectErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateWidth(tc.in)
			if tc.expectErr && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tc.expectErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil && !errors.Is(err, ErrInvalidWidth) {
				t.Fatalf("error = %v, want ErrInvalidWidth", err)
			}
		})
	}
}

func TestNormalizeECLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		in        string
		want      string
		expectErr bool
	}{
		{name: "upper M", in: "M", want: "M"},
		{name: "lower q", in: "q", want: "Q"},
		{name: "padded h", in: " h ", want: "H"},
		{name: "L", in: "L", want: "L"},
		{name: "empty", in: "", expectErr: true},
		{name: "word", in: "medium", expectErr: true},
		{name: "unknown letter", in: "X", expectErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeECLevel(tc.in)
			if tc.expectErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidECLevel) {
					t.Fatalf("error = %v, want ErrInvalidECLevel", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
