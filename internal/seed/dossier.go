// Package seed fills a development database with a demo case
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	models "arguminds/internal/domain/models/dossier"
	dossierSvc "arguminds/internal/domain/services/dossier"
	"arguminds/internal/export"
)

// Services are the services the seeder writes through, so seeded rows pass
// the same validation as API writes
type Services struct {
	Cases     dossierSvc.CaseService
	Arguments dossierSvc.ArgumentService
	Sources   dossierSvc.SourceService
	Profiles  dossierSvc.ProfileService
}

// DossierSeeder creates the demo case of a user
type DossierSeeder struct {
	svc    Services
	logger *slog.Logger
}

// NewDossierSeeder creates a new dossier seeder
func NewDossierSeeder(svc Services, logger *slog.Logger) *DossierSeeder {
	return &DossierSeeder{svc: svc, logger: logger}
}

// Result summarizes what SeedDemoCase created
type Result struct {
	CaseID    string
	Arguments int
	Sources   int
	Links     int
}

// seedArgument is a node of the demo tree; parent refers to another key
type seedArgument struct {
	key     string
	parent  string
	title   string
	content string
	typ     string
	x, y    float64
	sources []string // keys of seedSource
}

type seedSource struct {
	key     string
	title   string
	url     string
	content string
}

var demoSources = []seedSource{
	{"c1128", "Code civil, article 1128", "https://www.legifrance.gouv.fr/codes/article_lc/LEGIARTI000032040794",
		"Sont nécessaires à la validité d'un contrat : le consentement des parties, leur capacité de contracter, un contenu licite et certain."},
	{"c1130", "Code civil, article 1130", "https://www.legifrance.gouv.fr/codes/article_lc/LEGIARTI000032040861",
		"L'erreur, le dol et la violence vicient le consentement lorsqu'ils sont de telle nature que, sans eux, l'une des parties n'aurait pas contracté."},
	{"cass2019", "Cass. civ. 1re, 13 février 2019", "", "Arrêt rappelant que la charge de la preuve du vice incombe à celui qui l'invoque."},
}

var demoArguments = []seedArgument{
	{key: "these", title: "Le contrat de vente est nul", typ: export.TypePrincipal, x: 400, y: 40,
		content: "M. Dupont n'a pas donné un consentement libre et éclairé lors de la signature.",
		sources: []string{"c1128"}},
	{key: "dol", parent: "these", title: "Manoeuvres dolosives du vendeur", typ: export.TypeSupport, x: 200, y: 220,
		content: "Le vendeur a dissimulé l'état réel de la toiture, information déterminante pour l'acheteur.",
		sources: []string{"c1130"}},
	{key: "expertise", parent: "dol", title: "Rapport d'expertise du 4 mars", typ: export.TypeSupport, x: 120, y: 400,
		content: "L'expert constate des infiltrations anciennes, nécessairement connues du vendeur."},
	{key: "preuve", parent: "these", title: "Absence de preuve de l'intention", typ: export.TypeObjection, x: 600, y: 220,
		content: "La partie adverse soutient que rien n'établit l'intention de tromper.",
		sources: []string{"cass2019"}},
	{key: "reponse", parent: "preuve", title: "L'intention se déduit du silence gardé", typ: export.TypeRefutation, x: 600, y: 400,
		content: "Le silence volontaire sur un défaut connu caractérise la réticence dolosive."},
}

// SeedDemoCase creates the profile, a case, its argument tree and linked sources for userID
func (s *DossierSeeder) SeedDemoCase(ctx context.Context, userID string) (*Result, error) {
	if err := s.ensureProfile(ctx, userID); err != nil {
		return nil, err
	}

	description := "Action en nullité d'une vente immobilière pour dol."
	caseType := "Civil"
	c, err := s.svc.Cases.CreateCase(ctx, &dossierSvc.CreateCaseRequest{
		UserID:      userID,
		Title:       "Affaire Dupont / Martin",
		Description: &description,
		Type:        &caseType,
	})
	if err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}
	result := &Result{CaseID: c.ID}

	sourceIDs := make(map[string]string, len(demoSources))
	for _, src := range demoSources {
		req := &dossierSvc.SourceRequest{Title: src.title, Content: optional(src.content), URL: optional(src.url)}
		created, err := s.svc.Sources.CreateSource(ctx, userID, c.ID, req)
		if err != nil {
			return nil, fmt.Errorf("create source %q: %w", src.title, err)
		}
		sourceIDs[src.key] = created.ID
		result.Sources++
	}

	// demoArguments lists parents before children
	argumentIDs := make(map[string]string, len(demoArguments))
	for _, arg := range demoArguments {
		req := &dossierSvc.CreateArgumentRequest{
			UserID:   userID,
			CaseID:   c.ID,
			Title:    arg.title,
			Content:  arg.content,
			Type:     arg.typ,
			Position: &models.Position{X: arg.x, Y: arg.y},
		}
		if arg.parent != "" {
			parentID := argumentIDs[arg.parent]
			req.ParentID = &parentID
		}
		created, err := s.svc.Arguments.CreateArgument(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("create argument %q: %w", arg.title, err)
		}
		argumentIDs[arg.key] = created.ID
		result.Arguments++

		for _, key := range arg.sources {
			if err := s.svc.Sources.LinkSource(ctx, userID, c.ID, sourceIDs[key], created.ID); err != nil {
				return nil, fmt.Errorf("link source %q: %w", key, err)
			}
			result.Links++
		}
	}

	s.logger.Info("demo case seeded",
		"case_id", c.ID,
		"user_id", userID,
		"arguments", result.Arguments,
		"sources", result.Sources,
	)
	return result, nil
}

// ClearUserCases deletes every case of userID; arguments, sources and analyses cascade
func (s *DossierSeeder) ClearUserCases(ctx context.Context, userID string) (int, error) {
	cases, err := s.svc.Cases.ListCases(ctx, userID, models.CaseFilter{})
	if err != nil {
		return 0, fmt.Errorf("list cases: %w", err)
	}
	for _, c := range cases {
		if err := s.svc.Cases.DeleteCase(ctx, c.ID, userID); err != nil {
			return 0, fmt.Errorf("delete case %s: %w", c.ID, err)
		}
	}
	return len(cases), nil
}

func (s *DossierSeeder) ensureProfile(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("user id must be a UUID: %w", err)
	}
	name := "Maître Démo"
	role := models.RoleLawyer
	if _, err := s.svc.Profiles.UpdateProfile(ctx, id, &dossierSvc.UpdateProfileRequest{Name: &name, Role: &role}); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
