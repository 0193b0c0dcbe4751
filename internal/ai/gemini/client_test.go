package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type modelCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

type fakeModels struct {
	mu    sync.Mutex
	calls []modelCall
	queue []fakeResponse
}

func (f *fakeModels) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fakeResponse{resp: resp, err: err})
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, modelCall{model: model, contents: contents, config: config})
	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := f.queue[0]
	f.queue = f.queue[1:]
	return res.resp, res.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

// Tests in this file replace the package wait and must not run in parallel.
func stubWait(t *testing.T) *[]time.Duration {
	t.Helper()
	var delays []time.Duration
	original := wait
	wait = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	t.Cleanup(func() { wait = original })
	return &delays
}

func TestGeneratorRetriesOnTemporaryError(t *testing.T) {
	delays := stubWait(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	models.enqueue(textResponse("retry ok"), nil)

	g := newGenerator(models, "gemini-pro", WithMaxRetries(2), WithLogger(zap.NewNop()))

	output, err := g.GenerateContent(context.Background(), "system", "message")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output != "retry ok" {
		t.Fatalf("unexpected output: %q", output)
	}
	if len(models.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.calls))
	}
	if len(*delays) != 1 || (*delays)[0] != baseBackoff {
		t.Fatalf("unexpected backoff: %v", *delays)
	}

	for _, call := range models.calls {
		if call.model != "gemini-pro" {
			t.Fatalf("unexpected model: %q", call.model)
		}
		if call.config == nil || call.config.SystemInstruction == nil {
			t.Fatalf("expected system instruction to be set")
		}
		if got := call.config.SystemInstruction.Parts[0].Text; got != "system" {
			t.Fatalf("unexpected system instruction: %q", got)
		}
		if got := call.contents[0].Parts[0].Text; got != "message" {
			t.Fatalf("unexpected prompt: %q", got)
		}
	}
}

func TestGeneratorStopsAfterRetriesExhausted(t *testing.T) {
	stubWait(t)

	models := &fakeModels{}
	tempErr := genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}
	models.enqueue(nil, tempErr)
	models.enqueue(nil, tempErr)

	g := newGenerator(models, "gemini-pro", WithMaxRetries(2))

	_, err := g.GenerateContent(context.Background(), "sys", "msg")
	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}
	if len(models.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.calls))
	}
}

func TestGeneratorDoesNotRetryOnLongQuotaDelay(t *testing.T) {
	stubWait(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{
		Code:    http.StatusTooManyRequests,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "quota exhausted, retry after 60 seconds",
	})

	g := newGenerator(models, "gemini-pro", WithMaxRetries(3))

	if _, err := g.GenerateContent(context.Background(), "sys", "msg"); err == nil {
		t.Fatal("expected error when quota delay too long")
	}
	if len(models.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(models.calls))
	}
}

func TestGeneratorDoesNotRetryClientErrors(t *testing.T) {
	stubWait(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"})

	g := newGenerator(models, "", WithMaxRetries(3))
	if g.Model() != defaultModel {
		t.Fatalf("expected default model, got %q", g.Model())
	}

	if _, err := g.GenerateContent(context.Background(), "", "msg"); err == nil {
		t.Fatal("expected error")
	}
	if len(models.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(models.calls))
	}
	if models.calls[0].config != nil {
		t.Fatalf("expected no config without a system instruction")
	}
}

func TestGeneratorRejectsEmptyPromptAndResponse(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(textResponse("   ", ""), nil)
	g := newGenerator(models, "gemini-pro")

	if _, err := g.GenerateContent(context.Background(), "", "   "); err == nil {
		t.Fatal("expected empty prompt error")
	}
	if _, err := g.GenerateContent(context.Background(), "", "msg"); err == nil {
		t.Fatal("expected empty response error")
	}
}

func TestResponseTextJoinsParts(t *testing.T) {
	got, err := responseText(textResponse(" first ", "", "second"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "first\nsecond" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestRetryDelay(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		attempt   int
		wantDelay time.Duration
		wantRetry bool
	}{
		{name: "plain error", err: errors.New("boom"), attempt: 1},
		{name: "server error backs off", err: genai.APIError{Code: 500}, attempt: 2, wantDelay: 2 * baseBackoff, wantRetry: true},
		{name: "wrapped pointer", err: wrap(&genai.APIError{Code: 502}), attempt: 1, wantDelay: baseBackoff, wantRetry: true},
		{name: "quota with short delay", err: genai.APIError{Code: 429, Message: "Please retry in 1.5s."}, attempt: 1, wantDelay: 1500 * time.Millisecond, wantRetry: true},
		{name: "quota without hint", err: genai.APIError{Code: 429}, attempt: 3, wantDelay: 3 * baseBackoff, wantRetry: true},
		{name: "quota with long delay", err: genai.APIError{Code: 429, Message: "retry after 45 seconds"}, attempt: 1},
		{name: "client error", err: genai.APIError{Code: 403}, attempt: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delay, retry := retryDelay(tt.err, tt.attempt)
			if retry != tt.wantRetry || delay != tt.wantDelay {
				t.Fatalf("got (%s, %v), want (%s, %v)", delay, retry, tt.wantDelay, tt.wantRetry)
			}
		})
	}
}

func wrap(err error) error {
	return errors.Join(errors.New("context"), err)
}
