package dossier

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"arguminds/internal/domain"
	models "arguminds/internal/domain/models/dossier"
	"arguminds/internal/domain/repositories"
	"arguminds/internal/service/auth"
)

const (
	testUserID  = "11111111-1111-1111-1111-111111111111"
	otherUserID = "22222222-2222-2222-2222-222222222222"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// In-memory repositories
// ---------------------------------------------------------------------------

type fakeCaseRepo struct {
	cases   map[string]*models.Case
	touched []string
	nextID  int
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{cases: map[string]*models.Case{}}
}

func (r *fakeCaseRepo) Create(ctx context.Context, c *models.Case) error {
	r.nextID++
	c.ID = fmt.Sprintf("case-%d", r.nextID)
	stored := *c
	r.cases[c.ID] = &stored
	return nil
}

func (r *fakeCaseRepo) GetByID(ctx context.Context, id, userID string) (*models.Case, error) {
	c, ok := r.cases[id]
	if !ok || c.UserID != userID {
		return nil, fmt.Errorf("case %s: %w", id, domain.ErrNotFound)
	}
	out := *c
	return &out, nil
}

func (r *fakeCaseRepo) List(ctx context.Context, userID string, filter models.CaseFilter) ([]models.Case, error) {
	out := []models.Case{}
	for _, c := range r.cases {
		if c.UserID == userID && (filter.Status == "" || c.Status == filter.Status) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *fakeCaseRepo) Update(ctx context.Context, c *models.Case) error {
	if existing, ok := r.cases[c.ID]; !ok || existing.UserID != c.UserID {
		return fmt.Errorf("case %s: %w", c.ID, domain.ErrNotFound)
	}
	stored := *c
	r.cases[c.ID] = &stored
	return nil
}

func (r *fakeCaseRepo) Touch(ctx context.Context, id string) error {
	r.touched = append(r.touched, id)
	return nil
}

func (r *fakeCaseRepo) Delete(ctx context.Context, id, userID string) error {
	c, ok := r.cases[id]
	if !ok || c.UserID != userID {
		return fmt.Errorf("case %s: %w", id, domain.ErrNotFound)
	}
	delete(r.cases, id)
	return nil
}

type fakeArgumentRepo struct {
	args   []*models.Argument
	nextID int
}

func (r *fakeArgumentRepo) find(id, caseID string) (int, *models.Argument) {
	for i, a := range r.args {
		if a.ID == id && a.CaseID == caseID {
			return i, a
		}
	}
	return -1, nil
}

func (r *fakeArgumentRepo) Create(ctx context.Context, arg *models.Argument) error {
	r.nextID++
	arg.ID = fmt.Sprintf("arg-%d", r.nextID)
	if arg.Sources == nil {
		arg.Sources = []models.SourceRef{}
	}
	stored := *arg
	r.args = append(r.args, &stored)
	return nil
}

func (r *fakeArgumentRepo) GetByID(ctx context.Context, id, caseID string) (*models.Argument, error) {
	_, a := r.find(id, caseID)
	if a == nil {
		return nil, fmt.Errorf("argument %s: %w", id, domain.ErrNotFound)
	}
	out := *a
	return &out, nil
}

func (r *fakeArgumentRepo) ListByCase(ctx context.Context, caseID string) ([]models.Argument, error) {
	out := []models.Argument{}
	for _, a := range r.args {
		if a.CaseID == caseID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeArgumentRepo) Update(ctx context.Context, arg *models.Argument) error {
	i, _ := r.find(arg.ID, arg.CaseID)
	if i < 0 {
		return fmt.Errorf("argument %s: %w", arg.ID, domain.ErrNotFound)
	}
	stored := *arg
	r.args[i] = &stored
	return nil
}

func (r *fakeArgumentRepo) UpdatePosition(ctx context.Context, id, caseID string, pos models.Position) error {
	_, a := r.find(id, caseID)
	if a == nil {
		return fmt.Errorf("argument %s: %w", id, domain.ErrNotFound)
	}
	a.Position = &pos
	return nil
}

func (r *fakeArgumentRepo) SetParent(ctx context.Context, id, caseID string, parentID *string) error {
	_, a := r.find(id, caseID)
	if a == nil {
		return fmt.Errorf("argument %s: %w", id, domain.ErrNotFound)
	}
	a.ParentID = parentID
	return nil
}

func (r *fakeArgumentRepo) Delete(ctx context.Context, id, caseID string) error {
	i, _ := r.find(id, caseID)
	if i < 0 {
		return fmt.Errorf("argument %s: %w", id, domain.ErrNotFound)
	}
	r.args = append(r.args[:i], r.args[i+1:]...)
	// ON DELETE SET NULL
	for _, a := range r.args {
		if a.ParentID != nil && *a.ParentID == id {
			a.ParentID = nil
		}
	}
	return nil
}

type fakeSourceRepo struct {
	sources map[string]*models.Source
	links   map[[2]string]bool // {sourceID, argumentID}
	nextID  int
}

func newFakeSourceRepo() *fakeSourceRepo {
	return &fakeSourceRepo{sources: map[string]*models.Source{}, links: map[[2]string]bool{}}
}

func (r *fakeSourceRepo) Create(ctx context.Context, src *models.Source) error {
	r.nextID++
	src.ID = fmt.Sprintf("src-%d", r.nextID)
	stored := *src
	r.sources[src.ID] = &stored
	return nil
}

func (r *fakeSourceRepo) GetByID(ctx context.Context, id, caseID string) (*models.Source, error) {
	src, ok := r.sources[id]
	if !ok || src.CaseID != caseID {
		return nil, fmt.Errorf("source %s: %w", id, domain.ErrNotFound)
	}
	out := *src
	return &out, nil
}

func (r *fakeSourceRepo) ListByCase(ctx context.Context, caseID string) ([]models.Source, error) {
	out := []models.Source{}
	for _, src := range r.sources {
		if src.CaseID == caseID {
			out = append(out, *src)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSourceRepo) ListByArgument(ctx context.Context, argumentID, caseID string) ([]models.Source, error) {
	out := []models.Source{}
	for key := range r.links {
		if key[1] != argumentID {
			continue
		}
		if src, ok := r.sources[key[0]]; ok && src.CaseID == caseID {
			out = append(out, *src)
		}
	}
	return out, nil
}

func (r *fakeSourceRepo) Update(ctx context.Context, src *models.Source) error {
	if _, ok := r.sources[src.ID]; !ok {
		return fmt.Errorf("source %s: %w", src.ID, domain.ErrNotFound)
	}
	stored := *src
	r.sources[src.ID] = &stored
	return nil
}

func (r *fakeSourceRepo) Delete(ctx context.Context, id, caseID string) error {
	src, ok := r.sources[id]
	if !ok || src.CaseID != caseID {
		return fmt.Errorf("source %s: %w", id, domain.ErrNotFound)
	}
	delete(r.sources, id)
	return nil
}

func (r *fakeSourceRepo) Link(ctx context.Context, sourceID, argumentID string) error {
	r.links[[2]string{sourceID, argumentID}] = true
	return nil
}

func (r *fakeSourceRepo) Unlink(ctx context.Context, sourceID, argumentID string) error {
	delete(r.links, [2]string{sourceID, argumentID})
	return nil
}

type fakeAnalysisRepo struct {
	analyses []models.Analysis
	nextID   int
}

func (r *fakeAnalysisRepo) Create(ctx context.Context, analysis *models.Analysis) error {
	r.nextID++
	analysis.ID = fmt.Sprintf("analysis-%d", r.nextID)
	r.analyses = append(r.analyses, *analysis)
	return nil
}

func (r *fakeAnalysisRepo) ListByArgument(ctx context.Context, argumentID string, limit int) ([]models.Analysis, error) {
	out := []models.Analysis{}
	for i := len(r.analyses) - 1; i >= 0 && len(out) < limit; i-- {
		if r.analyses[i].ArgumentID == argumentID {
			out = append(out, r.analyses[i])
		}
	}
	return out, nil
}

func (r *fakeAnalysisRepo) Delete(ctx context.Context, id, argumentID string) error {
	for i, a := range r.analyses {
		if a.ID == id && a.ArgumentID == argumentID {
			r.analyses = append(r.analyses[:i], r.analyses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("analysis %s: %w", id, domain.ErrNotFound)
}

func (r *fakeAnalysisRepo) DeleteByArgument(ctx context.Context, argumentID string) (int64, error) {
	kept := r.analyses[:0]
	var n int64
	for _, a := range r.analyses {
		if a.ArgumentID == argumentID {
			n++
			continue
		}
		kept = append(kept, a)
	}
	r.analyses = kept
	return n, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]models.Profile
	upserts  int
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *models.Profile) error {
	if r.profiles == nil {
		r.profiles = map[uuid.UUID]models.Profile{}
	}
	r.upserts++
	r.profiles[profile.UserID] = *profile
	return nil
}

// fakeTxManager runs fn inline and counts transactions
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.calls++
	return fn(ctx)
}

// fakeCompleter returns a canned answer and records the prompts
type fakeCompleter struct {
	answer  string
	err     error
	model   string
	system  string
	prompts []string
}

func (c *fakeCompleter) Complete(ctx context.Context, model, system, prompt string) (string, error) {
	c.model = model
	c.system = system
	c.prompts = append(c.prompts, prompt)
	return c.answer, c.err
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type testEnv struct {
	cases      *fakeCaseRepo
	arguments  *fakeArgumentRepo
	sources    *fakeSourceRepo
	analyses   *fakeAnalysisRepo
	tx         *fakeTxManager
	authorizer *auth.OwnerBasedAuthorizer
	logger     *slog.Logger
}

func newTestEnv() *testEnv {
	env := &testEnv{
		cases:     newFakeCaseRepo(),
		arguments: &fakeArgumentRepo{},
		sources:   newFakeSourceRepo(),
		analyses:  &fakeAnalysisRepo{},
		tx:        &fakeTxManager{},
		logger:    discardLogger(),
	}
	env.authorizer = auth.NewOwnerBasedAuthorizer(env.cases, env.arguments)
	return env
}

// seedCase stores a case owned by testUserID and returns its ID
func (e *testEnv) seedCase(title string) string {
	c := &models.Case{UserID: testUserID, Title: title, Status: "EN_COURS"}
	_ = e.cases.Create(context.Background(), c)
	return c.ID
}

// seedArgument stores an argument and returns its ID
func (e *testEnv) seedArgument(caseID, title string, parentID *string) string {
	a := &models.Argument{CaseID: caseID, Title: title, Content: title + " (contenu)", Type: "PRINCIPAL", ParentID: parentID}
	_ = e.arguments.Create(context.Background(), a)
	return a.ID
}
