package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"voice-ghostwriter/internal/domain"
)

type stubModel struct {
	responses []string
	err       error
	calls     int
	systems   []string
	users     []string
	tokens    []int
}

func (s *stubModel) Complete(_ context.Context, system, user string, maxTokens int) (string, error) {
	s.calls++
	s.systems = append(s.systems, system)
	s.users = append(s.users, user)
	s.tokens = append(s.tokens, maxTokens)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", nil
	}
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

type stubSearch struct {
	results []domain.ResearchResult
	err     error
	queries []string
}

func (s *stubSearch) Search(_ context.Context, query string, _ int) ([]domain.ResearchResult, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

type stubProof struct {
	text string
	err  error
}

func (s *stubProof) Correct(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func testProfile() domain.StyleProfile {
	return domain.StyleProfile{
		Persona: "Test Author",
		Tone:    []string{"candid", "practical"},
		Platforms: map[string]domain.PlatformRules{
			"x": {MaxChars: 280, TargetWords: 40},
		},
	}
}

func newTestService(model domain.ModelProvider, search domain.SearchProvider, proof domain.Proofreader) *Service {
	return NewService(testProfile(), model, search, proof, zerolog.Nop())
}

func TestGenerateFallbackWithoutModel(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	got := svc.Generate(context.Background(), domain.GenerateRequest{
		Platform: "x",
		Context:  "Markets were volatile",
		Facts:    []string{"Nifty fell 2%"},
		Thread:   true,
	})

	lines := strings.Split(got.Text, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3-line thread, got %d lines:\n%s", len(lines), got.Text)
	}
	for i, prefix := range []string{"1/3", "2/3", "3/3"} {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Fatalf("line %d missing %q prefix: %q", i, prefix, lines[i])
		}
	}
	if !strings.Contains(got.Text, "Nifty fell 2%") {
		t.Fatalf("fallback lost the fact: %q", got.Text)
	}
	if !containsWarning(got.Warnings, "No model provider configured") {
		t.Fatalf("missing no-model warning, got %v", got.Warnings)
	}
	if got.Metadata.LLM {
		t.Fatal("metadata.llm should be false on fallback")
	}
	if got.Metadata.Variants != 1 {
		t.Fatalf("fallback variants = %d, want 1", got.Metadata.Variants)
	}
}

func TestGenerateFallbackDeterministic(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	req := domain.GenerateRequest{
		Platform: "x",
		Context:  "Markets were volatile",
		Facts:    []string{"Nifty fell 2%"},
		Thread:   true,
	}

	first := svc.Generate(context.Background(), req)
	second := svc.Generate(context.Background(), req)
	if first.Text != second.Text {
		t.Fatalf("fallback not deterministic:\n%q\n%q", first.Text, second.Text)
	}
}

func TestGenerateModelSuccess(t *testing.T) {
	model := &stubModel{responses: []string{"Draft one.\n\n---\n\nDraft two."}}
	svc := newTestService(model, nil, nil)

	got := svc.Generate(context.Background(), domain.GenerateRequest{
		Platform: "x",
		Context:  "SIP inflows hit a record",
		Facts:    []string{"Rs 23,000 cr in August"},
		Variants: 2,
	})

	if got.Text != "Draft one.\n\n---\n\nDraft two." {
		t.Fatalf("unexpected text: %q", got.Text)
	}
	if !got.Metadata.LLM {
		t.Fatal("metadata.llm should be true")
	}
	if got.Metadata.Variants != 2 {
		t.Fatalf("variants = %d, want 2", got.Metadata.Variants)
	}
	if model.calls != 1 {
		t.Fatalf("model calls = %d, want 1", model.calls)
	}
	if model.tokens[0] != generateMaxTokens {
		t.Fatalf("max tokens = %d, want %d", model.tokens[0], generateMaxTokens)
	}
	if !strings.Contains(model.systems[0], "Test Author") {
		t.Fatal("system prompt missing persona")
	}
	if !strings.Contains(model.users[0], "- Rs 23,000 cr in August") {
		t.Fatal("user prompt missing fact bullet")
	}
	if len(got.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", got.Warnings)
	}
}

func TestGenerateModelErrorFallsBack(t *testing.T) {
	model := &stubModel{err: errors.New("upstream 500")}
	svc := newTestService(model, nil, nil)

	got := svc.Generate(context.Background(), domain.GenerateRequest{
		Platform: "linkedin",
		Context:  "We crossed 1 crore users",
	})

	if got.Metadata.LLM {
		t.Fatal("metadata.llm should be false after model error")
	}
	if got.Metadata.Variants != 1 {
		t.Fatalf("variants = %d, want 1", got.Metadata.Variants)
	}
	if !containsWarning(got.Warnings, "Model error") {
		t.Fatalf("missing model-error warning: %v", got.Warnings)
	}
	if !strings.Contains(got.Text, "[ADD DETAIL]") {
		t.Fatalf("linkedin fallback missing placeholder: %q", got.Text)
	}
}

func TestGenerateSearchErrorFallsBack(t *testing.T) {
	model := &stubModel{responses: []string{"never used"}}
	search := &stubSearch{err: errors.New("dial tcp: timeout")}
	svc := newTestService(model, search, nil)

	got := svc.Generate(context.Background(), domain.GenerateRequest{
		Platform:      "x",
		Context:       "RBI policy update",
		AllowResearch: true,
		AutoResearch:  true,
	})

	if model.calls != 0 {
		t.Fatalf("model should not be called after search failure, calls = %d", model.calls)
	}
	if got.Metadata.LLM {
		t.Fatal("metadata.llm should be false")
	}
	if !containsWarning(got.Warnings, "Research failed") {
		t.Fatalf("missing research-failed warning: %v", got.Warnings)
	}
}

func TestGenerateResearchFlow(t *testing.T) {
	model := &stubModel{responses: []string{"- bullet summary", "Final draft."}}
	search := &stubSearch{results: []domain.ResearchResult{
		{Title: "RBI holds rates", URL: "https://example.com/rbi", Snippet: "Repo rate unchanged at 6.5%"},
	}}
	svc := newTestService(model, search, nil)

	got := svc.Generate(context.Background(), domain.GenerateRequest{
		Platform:      "x",
		Context:       "RBI policy",
		AllowResearch: true,
		AutoResearch:  true,
	})

	if len(search.queries) != 1 || search.queries[0] != "RBI policy" {
		t.Fatalf("queries = %v, want [RBI policy]", search.queries)
	}
	if model.calls != 2 {
		t.Fatalf("model calls = %d, want 2 (summary + draft)", model.calls)
	}
	if !got.Metadata.ResearchUsed {
		t.Fatal("research_used should be true")
	}
	if got.Metadata.ResearchQuery != "RBI policy" {
		t.Fatalf("research_query = %q", got.Metadata.ResearchQuery)
	}
	if got.Metadata.ResearchSummary != "- bullet summary" {
		t.Fatalf("research_summary = %q", got.Metadata.ResearchSummary)
	}
	if len(got.Metadata.Sources) != 1 || got.Metadata.Sources[0].URL != "https://example.com/rbi" {
		t.Fatalf("sources = %v", got.Metadata.Sources)
	}
	if !strings.Contains(model.users[1], "Repo rate unchanged at 6.5%") {
		t.Fatal("draft prompt missing research snippet")
	}
}

func TestGenerateResearchNoResults(t *testing.T) {
	model := &stubModel{responses: []string{"Draft."}}
	search := &stubSearch{}
	svc := newTestService(model, search, nil)

	got := svc.Generate(context.Background(), domain.GenerateRequest{
		Platform:      "x",
		Context:       "obscure topic",
		AllowResearch: true,
		AutoResearch:  true,
	})

	if !containsWarning(got.Warnings, "Research returned no results") {
		t.Fatalf("missing no-results warning: %v", got.Warnings)
	}
	if got.Metadata.ResearchUsed {
		t.Fatal("research_used should be false")
	}
	if model.calls != 1 {
		t.Fatalf("model calls = %d, want 1 (no summary pass)", model.calls)
	}
}

func TestGenerateResearchSkippedForLongContext(t *testing.T) {
	model := &stubModel{responses: []string{"Draft."}}
	search := &stubSearch{}
	svc := newTestService(model, search, nil)

	long := strings.Repeat("word ", 25)
	got := svc.Generate(context.Background(), domain.GenerateRequest{
		Platform:      "x",
		Context:       long,
		AllowResearch: true,
		AutoResearch:  true,
	})

	if len(search.queries) != 0 {
		t.Fatalf("search should be skipped, queries = %v", search.queries)
	}
	if !containsWarning(got.Warnings, "Research skipped") {
		t.Fatalf("missing skipped warning: %v", got.Warnings)
	}
}

func TestGenerateExplicitQueryWins(t *testing.T) {
	model := &stubModel{responses: []string{"- s", "Draft."}}
	search := &stubSearch{results: []domain.ResearchResult{{Title: "t", URL: "u", Snippet: "s"}}}
	svc := newTestService(model, search, nil)

	svc.Generate(context.Background(), domain.GenerateRequest{
		Platform:      "x",
		Context:       strings.Repeat("word ", 25),
		AllowResearch: true,
		AutoResearch:  true,
		ResearchQuery: "  explicit query  ",
	})

	if len(search.queries) != 1 || search.queries[0] != "explicit query" {
		t.Fatalf("queries = %v, want [explicit query]", search.queries)
	}
}

func TestProofreadRejectsExpansion(t *testing.T) {
	draft := "Short draft about markets."
	model := &stubModel{responses: []string{draft}}
	proof := &stubProof{text: strings.Repeat(draft+" ", 5)}
	svc := newTestService(model, nil, proof)

	got := svc.Generate(context.Background(), domain.GenerateRequest{
		Platform:  "x",
		Context:   "markets",
		Proofread: true,
	})

	if got.Text != draft {
		t.Fatalf("expanded proofread should be rejected, got %q", got.Text)
	}
	if !containsWarning(got.Warnings, "Proofread step failed") {
		t.Fatalf("missing proofread warning: %v", got.Warnings)
	}
}

func TestProofreadAppliesEdit(t *testing.T) {
	model := &stubModel{responses: []string{"Teh markets recovered."}}
	proof := &stubProof{text: "The markets recovered."}
	svc := newTestService(model, nil, proof)

	got := svc.Generate(context.Background(), domain.GenerateRequest{
		Platform:  "x",
		Context:   "markets",
		Proofread: true,
	})

	if got.Text != "The markets recovered." {
		t.Fatalf("proofread edit not applied, got %q", got.Text)
	}
	if len(got.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", got.Warnings)
	}
}

func TestProofreadViaModelWhenNoCollaborator(t *testing.T) {
	model := &stubModel{responses: []string{"Draft with typo.", "Draft without typo."}}
	svc := newTestService(model, nil, nil)

	got := svc.Generate(context.Background(), domain.GenerateRequest{
		Platform:  "x",
		Context:   "markets",
		Proofread: true,
	})

	if model.calls != 2 {
		t.Fatalf("model calls = %d, want 2 (draft + proofread)", model.calls)
	}
	if got.Text != "Draft without typo." {
		t.Fatalf("got %q", got.Text)
	}
}

func TestLengthWarningSinglePost(t *testing.T) {
	model := &stubModel{responses: []string{strings.Repeat("a", 300)}}
	svc := newTestService(model, nil, nil)

	got := svc.Generate(context.Background(), domain.GenerateRequest{
		Platform: "x",
		Context:  "long post",
	})

	if len(got.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", got.Warnings)
	}
	if got.Warnings[0] != "Post exceeds 280 chars." {
		t.Fatalf("warning = %q", got.Warnings[0])
	}
}

func TestLengthWarningThreadLine(t *testing.T) {
	long := "1/2 " + strings.Repeat("b", 300)
	model := &stubModel{responses: []string{long + "\n2/2 short closer"}}
	svc := newTestService(model, nil, nil)

	got := svc.Generate(context.Background(), domain.GenerateRequest{
		Platform: "x",
		Context:  "thread",
		Thread:   true,
	})

	if len(got.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", got.Warnings)
	}
	if !strings.HasPrefix(got.Warnings[0], "Tweet exceeds 280 chars: 1/2 ") {
		t.Fatalf("warning = %q", got.Warnings[0])
	}
}

func TestLengthWarningRespectsOverride(t *testing.T) {
	model := &stubModel{responses: []string{strings.Repeat("a", 250)}}
	svc := newTestService(model, nil, nil)

	got := svc.Generate(context.Background(), domain.GenerateRequest{
		Platform: "x",
		Context:  "post",
		MaxChars: 200,
	})

	if len(got.Warnings) != 1 || got.Warnings[0] != "Post exceeds 200 chars." {
		t.Fatalf("warnings = %v", got.Warnings)
	}
}

func TestLinkedInForcesThreadOff(t *testing.T) {
	model := &stubModel{responses: []string{strings.Repeat("a", 5000)}}
	svc := newTestService(model, nil, nil)

	got := svc.Generate(context.Background(), domain.GenerateRequest{
		Platform: "linkedin",
		Context:  "post",
		Thread:   true,
	})

	if got.Metadata.Thread {
		t.Fatal("thread should be forced off for linkedin")
	}
	if len(got.Warnings) != 0 {
		t.Fatalf("no length checks for linkedin, got %v", got.Warnings)
	}
}

func TestAvailable(t *testing.T) {
	if newTestService(nil, nil, nil).Available() {
		t.Fatal("no model means unavailable")
	}
	if !newTestService(&stubModel{}, nil, nil).Available() {
		t.Fatal("model present means available")
	}
}

func containsWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
