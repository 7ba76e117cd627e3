package dossier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"arguminds/internal/domain"
	models "arguminds/internal/domain/models/dossier"
	dossierSvc "arguminds/internal/domain/services/dossier"
	"arguminds/internal/metrics"
	"arguminds/internal/service/llm"
)

const testModel = "lorem-fast"

func newAnalysisService(t *testing.T, env *testEnv, completer llm.Completer, m *metrics.Metrics) dossierSvc.AnalysisService {
	t.Helper()
	prompts, err := llm.LoadPromptCatalog()
	if err != nil {
		t.Fatalf("LoadPromptCatalog() unexpected error: %v", err)
	}
	cfg := AnalysisConfig{Completer: completer, Prompts: prompts, Model: testModel}
	return NewAnalysisService(env.arguments, env.analyses, env.authorizer, cfg, m, env.logger)
}

func TestAnalysisService_Analyze(t *testing.T) {
	env := newTestEnv()
	completer := &fakeCompleter{
		answer: "Voici mon évaluation :\n```json\n{\"weight\": 7, \"reasoning\": \"Solide\"}\n```",
	}
	m := metrics.New(prometheus.NewRegistry())
	svc := newAnalysisService(t, env, completer, m)

	caseID := env.seedCase("Affaire")
	parent := env.seedArgument(caseID, "Thèse", nil)
	child := env.seedArgument(caseID, "Appui", &parent)

	analysis, err := svc.Analyze(context.Background(), &dossierSvc.AnalyzeRequest{
		UserID:     testUserID,
		CaseID:     caseID,
		ArgumentID: child,
		Action:     models.ActionAnalyze,
	})
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}

	if analysis.ID == "" || analysis.ArgumentID != child || analysis.Model != testModel {
		t.Errorf("Analyze() = %+v", analysis)
	}
	if w, ok := analysis.Result["weight"].(float64); !ok || w != 7 {
		t.Errorf("Result[weight] = %v, want 7", analysis.Result["weight"])
	}

	if completer.model != testModel {
		t.Errorf("model = %q, want %q", completer.model, testModel)
	}
	if completer.system == "" {
		t.Error("system prompt not sent")
	}
	prompt := completer.prompts[0]
	for _, want := range []string{"Titre : Appui", "Type : Principal", "Argument parent : Thèse"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}

	if got := testutil.ToFloat64(m.AnalysesTotal.WithLabelValues(models.ActionAnalyze, metrics.OutcomeSuccess)); got != 1 {
		t.Errorf("successful analyses = %v, want 1", got)
	}
	if len(env.analyses.analyses) != 1 {
		t.Errorf("stored analyses = %d, want 1", len(env.analyses.analyses))
	}
}

func TestAnalysisService_Analyze_Errors(t *testing.T) {
	env := newTestEnv()
	caseID := env.seedCase("Affaire")
	argID := env.seedArgument(caseID, "A", nil)

	tests := []struct {
		name      string
		completer llm.Completer
		req       dossierSvc.AnalyzeRequest
		wantErr   error
	}{
		{
			name:      "unknown action",
			completer: &fakeCompleter{answer: "{}"},
			req:       dossierSvc.AnalyzeRequest{UserID: testUserID, CaseID: caseID, ArgumentID: argID, Action: "summarize"},
			wantErr:   domain.ErrValidation,
		},
		{
			name:      "missing argument id",
			completer: &fakeCompleter{answer: "{}"},
			req:       dossierSvc.AnalyzeRequest{UserID: testUserID, CaseID: caseID, Action: models.ActionSuggest},
			wantErr:   domain.ErrValidation,
		},
		{
			name:      "other user",
			completer: &fakeCompleter{answer: "{}"},
			req:       dossierSvc.AnalyzeRequest{UserID: otherUserID, CaseID: caseID, ArgumentID: argID, Action: models.ActionSuggest},
			wantErr:   domain.ErrForbidden,
		},
		{
			name:      "missing argument",
			completer: &fakeCompleter{answer: "{}"},
			req:       dossierSvc.AnalyzeRequest{UserID: testUserID, CaseID: caseID, ArgumentID: "missing", Action: models.ActionSuggest},
			wantErr:   domain.ErrNotFound,
		},
		{
			name:      "no model configured",
			completer: nil,
			req:       dossierSvc.AnalyzeRequest{UserID: testUserID, CaseID: caseID, ArgumentID: argID, Action: models.ActionReformulate},
			wantErr:   domain.ErrUnavailable,
		},
		{
			name:      "answer without JSON",
			completer: &fakeCompleter{answer: "Je ne peux pas répondre."},
			req:       dossierSvc.AnalyzeRequest{UserID: testUserID, CaseID: caseID, ArgumentID: argID, Action: models.ActionReformulate},
			wantErr:   domain.ErrInvalidAIResponse,
		},
		{
			name:      "provider unavailable",
			completer: &fakeCompleter{err: domain.ErrUnavailable},
			req:       dossierSvc.AnalyzeRequest{UserID: testUserID, CaseID: caseID, ArgumentID: argID, Action: models.ActionAnalyze},
			wantErr:   domain.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAnalysisService(t, env, tt.completer, nil)
			req := tt.req
			if _, err := svc.Analyze(context.Background(), &req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Analyze() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if len(env.analyses.analyses) != 0 {
		t.Errorf("stored analyses = %d, want 0", len(env.analyses.analyses))
	}
}

func TestAnalysisService_History(t *testing.T) {
	env := newTestEnv()
	completer := &fakeCompleter{answer: `{"suggestions": ["a", "b"]}`}
	svc := newAnalysisService(t, env, completer, nil)
	ctx := context.Background()

	caseID := env.seedCase("Affaire")
	argID := env.seedArgument(caseID, "A", nil)
	otherArg := env.seedArgument(caseID, "B", nil)

	var lastID string
	for i := 0; i < 3; i++ {
		a, err := svc.Analyze(ctx, &dossierSvc.AnalyzeRequest{UserID: testUserID, CaseID: caseID, ArgumentID: argID, Action: models.ActionSuggest})
		if err != nil {
			t.Fatalf("Analyze() unexpected error: %v", err)
		}
		lastID = a.ID
	}
	if _, err := svc.Analyze(ctx, &dossierSvc.AnalyzeRequest{UserID: testUserID, CaseID: caseID, ArgumentID: otherArg, Action: models.ActionSuggest}); err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}

	history, err := svc.History(ctx, testUserID, caseID, argID)
	if err != nil {
		t.Fatalf("History() unexpected error: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("History() = %d entries, want 3", len(history))
	}
	if history[0].ID != lastID {
		t.Errorf("History()[0] = %q, want newest %q", history[0].ID, lastID)
	}

	if err := svc.DeleteAnalysis(ctx, testUserID, caseID, otherArg, lastID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("DeleteAnalysis(wrong argument) error = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteAnalysis(ctx, testUserID, caseID, argID, lastID); err != nil {
		t.Fatalf("DeleteAnalysis() unexpected error: %v", err)
	}

	if err := svc.ClearHistory(ctx, testUserID, caseID, argID); err != nil {
		t.Fatalf("ClearHistory() unexpected error: %v", err)
	}
	history, _ = svc.History(ctx, testUserID, caseID, argID)
	if len(history) != 0 {
		t.Errorf("History() after clear = %d entries, want 0", len(history))
	}
	remaining, _ := svc.History(ctx, testUserID, caseID, otherArg)
	if len(remaining) != 1 {
		t.Errorf("History(other argument) = %d entries, want 1", len(remaining))
	}

	if _, err := svc.History(ctx, otherUserID, caseID, argID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("History(other user) error = %v, want ErrForbidden", err)
	}
}
