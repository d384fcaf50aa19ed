package layout

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func TestBaseWrapsContent(t *testing.T) {
	t.Parallel()

	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>inner</p>")
		return err
	})

	var sb strings.Builder
	if err := Base("Milk Bank Pipeline", content).Render(context.Background(), &sb); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	html := sb.String()

	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Fatal("expected full html document")
	}
	if !strings.Contains(html, "<title>Milk Bank Pipeline</title>") {
		t.Fatalf("expected escaped title, got %s", html)
	}
	if !strings.Contains(html, "<p>inner</p>") {
		t.Fatal("expected content rendered inside the shell")
	}
	if !strings.Contains(html, `sse-connect="/events"`) {
		t.Fatal("expected the live-update connection on the body")
	}
}

func TestBasePropagatesContentErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return boom
	})

	err := Base("x", content).Render(context.Background(), io.Discard)
	if !errors.Is(err, boom) {
		t.Fatalf("expected content error to propagate, got %v", err)
	}
}

func TestBaseToleratesNilContent(t *testing.T) {
	t.Parallel()

	if err := Base("x", nil).Render(context.Background(), io.Discard); err != nil {
		t.Fatalf("render with nil content: %v", err)
	}
}
