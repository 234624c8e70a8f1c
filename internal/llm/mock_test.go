package llm

import (
	"context"
	"errors"
	"testing"
)

func TestMockProviderFIFO(t *testing.T) {
	m := NewMockProvider(
		MockResponse{Content: "first"},
		MockResponse{Content: "second"},
	)

	for _, want := range []string{"first", "second"} {
		resp, err := m.Complete(context.Background(), Request{})
		if err != nil {
			t.Fatalf("complete: %v", err)
		}
		if resp.Content != want {
			t.Fatalf("expected %q, got %q", want, resp.Content)
		}
	}

	// Queue exhausted.
	_, err := m.Complete(context.Background(), Request{})
	var unavailable *ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrProviderUnavailable on empty queue, got %v", err)
	}
	if m.CallCount() != 3 {
		t.Fatalf("expected 3 recorded calls, got %d", m.CallCount())
	}
}

func TestMockProviderCannedError(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockProvider(MockResponse{Err: boom})

	_, err := m.Complete(context.Background(), Request{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected canned error, got %v", err)
	}
}

func TestMockProviderValidatesSchema(t *testing.T) {
	schema := &Schema{
		Name: "mock-test",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"ok"},
			"properties": map[string]any{
				"ok": map[string]any{"type": "boolean"},
			},
		},
	}
	m := NewMockProvider(MockResponse{Content: `{"nope":true}`})

	_, err := m.Complete(context.Background(), Request{Schema: schema})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected canned content to be schema-checked, got %v", err)
	}
}
