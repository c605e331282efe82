package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("unexpected first content: %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("unexpected second content: %s", resp2.Content)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 recorded calls, got %d", mock.CallCount())
	}
}

func TestMockProvider_EmptyQueueReturnsUnavailable(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", err)
	}
}

func TestWithLogging_PassesThrough(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithLogging(mock, nil)

	ctx := WithPurpose(context.Background(), PurposeAnswerJudge)
	resp, err := p.Generate(ctx, Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID = %q, want mock", p.ModelID())
	}
}

func TestPurpose_RoundTrip(t *testing.T) {
	ctx := WithPurpose(context.Background(), PurposeReportGen)
	if got := PurposeFrom(ctx); got != PurposeReportGen {
		t.Errorf("PurposeFrom = %q, want %q", got, PurposeReportGen)
	}
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Errorf("PurposeFrom on empty context = %q, want unknown", got)
	}
}
