package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/reddycharan348/Gate-Exam/internal/store"
)

type recordingRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"text":"t","marks":1}`),
		Usage:   Usage{InputTokens: 7, OutputTokens: 3},
	})
	p := WithLogging(mock, "mock", repo)

	ctx := WithPurpose(context.Background(), "paper-gen")
	if _, err := p.Generate(ctx, UserPrompt("be brief", "one question", testSchema(), 64)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if !ev.Success || ev.Purpose != "paper-gen" || ev.Provider != "mock" || ev.Model != "mock" {
		t.Errorf("unexpected event: %+v", ev)
	}
	if ev.InputTokens != 7 || ev.OutputTokens != 3 {
		t.Errorf("tokens = %d/%d", ev.InputTokens, ev.OutputTokens)
	}
	for _, want := range []string{"[system]\nbe brief", "[user]\none question", "[schema: test-question]"} {
		if !strings.Contains(ev.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, ev.RequestBody)
		}
	}
	if ev.ResponseBody != `{"text":"t","marks":1}` {
		t.Errorf("response body = %s", ev.ResponseBody)
	}
}

func TestLoggingProvider_KeepsMalformedReply(t *testing.T) {
	repo := &recordingRepo{}
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{"text":"no marks"}`)}), "mock", repo)

	_, err := p.Generate(context.Background(), Request{Schema: testSchema()})
	if !IsMalformed(err) {
		t.Fatalf("expected malformed error, got %v", err)
	}

	ev := repo.events[0]
	if ev.Success || ev.ErrorMessage == "" {
		t.Errorf("failure not recorded: %+v", ev)
	}
	if ev.ResponseBody != `{"text":"no marks"}` {
		t.Errorf("response body = %q, want the rejected reply", ev.ResponseBody)
	}
	if ev.Purpose != "unknown" {
		t.Errorf("purpose = %q", ev.Purpose)
	}
}

func TestLoggingProvider_StoreFailureIsIgnored(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), "mock", repo)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("store failure leaked into the request: %v", err)
	}
}
