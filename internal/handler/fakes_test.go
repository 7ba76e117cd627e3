package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"

	"arguminds/internal/capabilities"
	"arguminds/internal/config"
	models "arguminds/internal/domain/models/dossier"
	dossierSvc "arguminds/internal/domain/services/dossier"
	"arguminds/internal/httputil"
)

const (
	testUserID     = "11111111-1111-1111-1111-111111111111"
	testCaseID     = "aaaaaaaa-0000-0000-0000-000000000001"
	testArgumentID = "bbbbbbbb-0000-0000-0000-000000000001"
	testSourceID   = "cccccccc-0000-0000-0000-000000000001"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubCaseService records the last request and returns err when set
type stubCaseService struct {
	err        error
	lastFilter models.CaseFilter
	lastUpdate *dossierSvc.UpdateCaseRequest
	lastCreate *dossierSvc.CreateCaseRequest
}

func (s *stubCaseService) CreateCase(ctx context.Context, req *dossierSvc.CreateCaseRequest) (*models.Case, error) {
	s.lastCreate = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.Case{ID: testCaseID, UserID: req.UserID, Title: req.Title, Status: "EN_COURS"}, nil
}

func (s *stubCaseService) GetCase(ctx context.Context, id, userID string) (*models.Case, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Case{ID: id, UserID: userID, Title: "Affaire", Status: "EN_COURS"}, nil
}

func (s *stubCaseService) ListCases(ctx context.Context, userID string, filter models.CaseFilter) ([]models.Case, error) {
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return []models.Case{}, nil
}

func (s *stubCaseService) UpdateCase(ctx context.Context, id, userID string, req *dossierSvc.UpdateCaseRequest) (*models.Case, error) {
	s.lastUpdate = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.Case{ID: id, UserID: userID, Title: "Affaire", Status: "EN_COURS"}, nil
}

func (s *stubCaseService) DeleteCase(ctx context.Context, id, userID string) error { return s.err }

type stubArgumentService struct {
	err           error
	parent, child string
	position      models.Position
}

func (s *stubArgumentService) CreateArgument(ctx context.Context, req *dossierSvc.CreateArgumentRequest) (*models.Argument, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Argument{ID: testArgumentID, CaseID: req.CaseID, Title: req.Title, Type: req.Type, Sources: []models.SourceRef{}}, nil
}

func (s *stubArgumentService) GetArgument(ctx context.Context, userID, caseID, id string) (*models.Argument, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Argument{ID: id, CaseID: caseID}, nil
}

func (s *stubArgumentService) ListArguments(ctx context.Context, userID, caseID string) ([]models.Argument, error) {
	return []models.Argument{}, s.err
}

func (s *stubArgumentService) UpdateArgument(ctx context.Context, userID, caseID, id string, req *dossierSvc.UpdateArgumentRequest) (*models.Argument, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Argument{ID: id, CaseID: caseID, Title: req.Title}, nil
}

func (s *stubArgumentService) UpdatePosition(ctx context.Context, userID, caseID, id string, pos models.Position) error {
	s.position = pos
	return s.err
}

func (s *stubArgumentService) ConnectArguments(ctx context.Context, userID, caseID, parentID, childID string) error {
	s.parent, s.child = parentID, childID
	return s.err
}

func (s *stubArgumentService) DeleteArgument(ctx context.Context, userID, caseID, id string) error {
	return s.err
}

type stubSourceService struct {
	err    error
	linked [2]string // {sourceID, argumentID}
}

func (s *stubSourceService) CreateSource(ctx context.Context, userID, caseID string, req *dossierSvc.SourceRequest) (*models.Source, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Source{ID: testSourceID, CaseID: caseID, Title: req.Title}, nil
}

func (s *stubSourceService) ListSources(ctx context.Context, userID, caseID string) ([]models.Source, error) {
	return []models.Source{}, s.err
}

func (s *stubSourceService) ListArgumentSources(ctx context.Context, userID, caseID, argumentID string) ([]models.Source, error) {
	return []models.Source{}, s.err
}

func (s *stubSourceService) UpdateSource(ctx context.Context, userID, caseID, id string, req *dossierSvc.SourceRequest) (*models.Source, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Source{ID: id, CaseID: caseID, Title: req.Title}, nil
}

func (s *stubSourceService) DeleteSource(ctx context.Context, userID, caseID, id string) error {
	return s.err
}

func (s *stubSourceService) LinkSource(ctx context.Context, userID, caseID, sourceID, argumentID string) error {
	s.linked = [2]string{sourceID, argumentID}
	return s.err
}

func (s *stubSourceService) UnlinkSource(ctx context.Context, userID, caseID, sourceID, argumentID string) error {
	return s.err
}

type stubExportService struct {
	err     error
	lastReq *dossierSvc.ExportRequest
}

func (s *stubExportService) Export(ctx context.Context, req *dossierSvc.ExportRequest) (*dossierSvc.ExportResult, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &dossierSvc.ExportResult{
		Filename:    "ARGUMINDS_Affaire." + strings.ToLower(req.Format),
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.3 fake"),
	}, nil
}

func (s *stubExportService) Formats() []string { return []string{"docx", "pdf"} }

type stubAnalysisService struct {
	err     error
	lastReq *dossierSvc.AnalyzeRequest
}

func (s *stubAnalysisService) Analyze(ctx context.Context, req *dossierSvc.AnalyzeRequest) (*models.Analysis, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.Analysis{ID: "dddddddd-0000-0000-0000-000000000001", ArgumentID: req.ArgumentID, Action: req.Action, Result: models.JSONMap{"weight": 70}}, nil
}

func (s *stubAnalysisService) History(ctx context.Context, userID, caseID, argumentID string) ([]models.Analysis, error) {
	return []models.Analysis{}, s.err
}

func (s *stubAnalysisService) DeleteAnalysis(ctx context.Context, userID, caseID, argumentID, id string) error {
	return s.err
}

func (s *stubAnalysisService) ClearHistory(ctx context.Context, userID, caseID, argumentID string) error {
	return s.err
}

type stubProfileService struct {
	err error
}

func (s *stubProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Profile{UserID: userID, Role: models.RoleLawyer, RoleLabel: "Avocat"}, nil
}

func (s *stubProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dossierSvc.UpdateProfileRequest) (*models.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	p := &models.Profile{UserID: userID, Role: models.RoleLawyer}
	if req.Name != nil {
		p.Name = *req.Name
	}
	return p, nil
}

func (s *stubProfileService) CaseTypes(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return models.CaseTypesForRole(models.RoleLawyer), nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

// testServer bundles the stubs behind a mux with the real routes
type testServer struct {
	cases    *stubCaseService
	args     *stubArgumentService
	sources  *stubSourceService
	export   *stubExportService
	analysis *stubAnalysisService
	profile  *stubProfileService
	catalog  *capabilities.Registry
	mux      *http.ServeMux
}

func newTestServer() *testServer {
	catalog, err := capabilities.NewRegistry()
	if err != nil {
		panic(err)
	}
	s := &testServer{
		catalog:  catalog,
		cases:    &stubCaseService{},
		args:     &stubArgumentService{},
		sources:  &stubSourceService{},
		export:   &stubExportService{},
		analysis: &stubAnalysisService{},
		profile:  &stubProfileService{},
		mux:      http.NewServeMux(),
	}
	logger := discardLogger()
	RegisterRoutes(s.mux, &Handlers{
		Health:   NewHealthHandler(stubPinger{}),
		Cases:    NewCaseHandler(s.cases, logger),
		Args:     NewArgumentHandler(s.args, logger),
		Sources:  NewSourceHandler(s.sources, logger),
		Export:   NewExportHandler(s.export, logger),
		Analysis: NewAnalysisHandler(s.analysis, logger),
		Profile:  NewProfileHandler(s.profile, logger),
		Models:   NewModelsHandler(&config.Config{DefaultModel: "lorem-fast"}, logger, s.catalog),
	})
	return s
}

// do serves one request as testUserID
func (s *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	return s.doAs(testUserID, method, target, body)
}

func (s *testServer) doAs(userID, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req = httputil.WithUserID(req, userID)
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}
