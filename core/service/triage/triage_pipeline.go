// Package triage orchestrates the intake pipeline: extract, clean, classify,
// compose a reply and persist the result.
package triage

import (
	"context"
	"strconv"
	"strings"
	"time"

	"triage_server/config"
	"triage_server/core/domain"
	"triage_server/core/port/in"
	"triage_server/core/port/out"
	"triage_server/core/service/classification"
	"triage_server/core/service/reply"
	"triage_server/pkg/apperr"
	"triage_server/pkg/logger"
	"triage_server/pkg/textutil"
)

type Service struct {
	mode            config.TaxonomyMode
	maxContentChars int

	extractor    out.TextExtractor
	classifier   *classification.Classifier
	composer     *reply.Composer
	llm          out.CompletionClient
	emailRepo    out.EmailRepository
	categoryRepo out.CategoryRepository
	exampleRepo  out.ExampleRepository
}

type Config struct {
	Mode            config.TaxonomyMode
	MaxContentChars int
}

func NewService(
	cfg Config,
	extractor out.TextExtractor,
	classifier *classification.Classifier,
	composer *reply.Composer,
	llm out.CompletionClient,
	emailRepo out.EmailRepository,
	categoryRepo out.CategoryRepository,
	exampleRepo out.ExampleRepository,
) *Service {
	if cfg.MaxContentChars <= 0 {
		cfg.MaxContentChars = 20000
	}
	return &Service{
		mode:            cfg.Mode,
		maxContentChars: cfg.MaxContentChars,
		extractor:       extractor,
		classifier:      classifier,
		composer:        composer,
		llm:             llm,
		emailRepo:       emailRepo,
		categoryRepo:    categoryRepo,
		exampleRepo:     exampleRepo,
	}
}

// Process runs one email through the pipeline. The stage advances
// Received -> Cleaned -> Classified -> Replied -> Persisted; any error
// reports the stage it absorbed in the log entry.
func (s *Service) Process(ctx context.Context, req *in.TriageRequest) (*in.TriageResult, error) {
	start := time.Now()
	stage := domain.StageReceived

	content, err := s.intake(req)
	if err != nil {
		s.logFailure(ctx, stage, err)
		return nil, err
	}

	clean := textutil.Clean(content)
	if clean == "" {
		err := apperr.BadRequest("conteúdo vazio após limpeza")
		s.logFailure(ctx, stage, err)
		return nil, err
	}
	if len([]rune(clean)) > s.maxContentChars {
		err := apperr.InvalidInput("conteudo", "exceeds maximum length")
		s.logFailure(ctx, stage, err)
		return nil, err
	}
	stage = domain.StageCleaned

	var result *in.TriageResult
	switch s.mode {
	case config.ModeDynamic:
		result, err = s.processDynamic(ctx, req, clean, &stage)
	default:
		result, err = s.processFixed(ctx, clean, &stage)
	}
	if err != nil {
		s.logFailure(ctx, stage, err)
		return nil, err
	}

	logger.WithContext(ctx).
		WithDuration(time.Since(start)).
		WithField("email_id", result.Email.ID).
		WithField("mode", string(s.mode)).
		Info("email triage completed")
	return result, nil
}

func (s *Service) intake(req *in.TriageRequest) (string, error) {
	if req.Content == "" && len(req.FileData) == 0 {
		return "", apperr.BadRequest("envie 'conteudo' OU 'file' (.pdf/.txt)")
	}
	if len(req.FileData) == 0 {
		return req.Content, nil
	}

	if !s.extractor.Supports(req.Filename) {
		return "", apperr.ExtractionFailed("apenas .pdf ou .txt")
	}
	extracted, err := s.extractor.Extract(req.Filename, req.FileData)
	if err != nil {
		return "", apperr.ExtractionFailed(err.Error())
	}
	if strings.TrimSpace(extracted) == "" {
		return "", apperr.ExtractionFailed("não foi possível extrair texto do arquivo")
	}
	return extracted, nil
}

// processFixed classifies against the fixed taxonomy and composes the reply.
// Both steps degrade internally, so this path fails only on persistence.
func (s *Service) processFixed(ctx context.Context, clean string, stage *domain.TriageStage) (*in.TriageResult, error) {
	cls := s.classifier.Classify(ctx, clean)
	*stage = domain.StageClassified

	rep := s.composer.Compose(ctx, clean, cls)
	*stage = domain.StageReplied

	label := string(cls.Label)
	intent := string(cls.Intent)
	conf := cls.Confidence
	rationale := cls.Rationale
	email := &domain.Email{
		Content:        clean,
		Classification: &label,
		Intent:         &intent,
		Evidences:      cls.Evidences,
		Confidence:     &conf,
		Rationale:      &rationale,
		Subject:        &rep.Subject,
		Reply:          &rep.Body,
	}
	if err := s.emailRepo.CreateEmail(ctx, email); err != nil {
		return nil, apperr.DatabaseError("create email", err)
	}
	*stage = domain.StagePersisted

	return &in.TriageResult{
		Email:          email,
		Classification: cls,
		Stage:          domain.StagePersisted,
	}, nil
}

// processDynamic classifies into the user's own categories. An unusable model
// response degrades to the user's generic category ("Outros") with a canned
// reply; without such a category the error surfaces.
func (s *Service) processDynamic(ctx context.Context, req *in.TriageRequest, clean string, stage *domain.TriageStage) (*in.TriageResult, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, req.UserID)
	if err != nil {
		return nil, apperr.DatabaseError("list categories", err)
	}
	if len(categories) == 0 {
		return nil, apperr.ConfigError("não há categorias cadastradas")
	}
	examples, err := s.exampleRepo.ListExamplesByUser(ctx, req.UserID)
	if err != nil {
		return nil, apperr.DatabaseError("list examples", err)
	}

	result, modelErr := s.invokeDynamic(ctx, clean, categories, examples)
	if modelErr == nil {
		// The model must pick an existing category; anything else degrades.
		if _, ok := findCategory(categories, result.CategoryID); !ok {
			modelErr = apperr.ContractError("categoria_id fora da lista de categorias")
		}
	}
	if modelErr != nil {
		fallback, ok := genericCategory(categories)
		if !ok {
			return nil, modelErr
		}
		logger.WithContext(ctx).WithError(modelErr).
			Warn("dynamic triage degraded to generic category %q", fallback.Name)
		result = &domain.DynamicResult{
			Subject: "Retorno — sua mensagem",
			Reply: "Olá,\n\nRecebemos sua mensagem e vamos dar sequência internamente. " +
				"Retornaremos em breve.",
			CategoryID:        strconv.FormatInt(fallback.ID, 10),
			CategoryRationale: "Categoria genérica aplicada após falha do modelo.",
		}
	}
	*stage = domain.StageReplied

	categoryID, err := strconv.ParseInt(result.CategoryID, 10, 64)
	if err != nil {
		return nil, apperr.ContractError("categoria_id não numérico")
	}

	email := &domain.Email{
		Content:    clean,
		Subject:    &result.Subject,
		Reply:      &result.Reply,
		CategoryID: &categoryID,
	}
	if err := s.emailRepo.CreateEmail(ctx, email); err != nil {
		return nil, apperr.DatabaseError("create email", err)
	}
	*stage = domain.StagePersisted

	return &in.TriageResult{
		Email: email,
		Stage: domain.StagePersisted,
	}, nil
}

func (s *Service) invokeDynamic(ctx context.Context, clean string, categories []*domain.Category, examples []*domain.Example) (*domain.DynamicResult, error) {
	raw, err := s.llm.CompleteJSON(ctx, out.CompletionRequest{
		System:      classification.BuildDynamicSystem(categories, examples),
		User:        classification.BuildDynamicUser(clean),
		Temperature: classification.DynamicTemperature,
		MaxTokens:   classification.DynamicMaxTokens,
	})
	if err != nil {
		return nil, apperr.ModelError(err)
	}
	result, err := classification.NormalizeDynamic(raw)
	if err != nil {
		return nil, apperr.ContractError(err.Error())
	}
	return result, nil
}

func findCategory(categories []*domain.Category, id string) (*domain.Category, bool) {
	for _, cat := range categories {
		if strconv.FormatInt(cat.ID, 10) == id {
			return cat, true
		}
	}
	return nil, false
}

// genericCategory finds the user's catch-all category by name.
func genericCategory(categories []*domain.Category) (*domain.Category, bool) {
	for _, cat := range categories {
		if strings.EqualFold(strings.TrimSpace(cat.Name), "outros") {
			return cat, true
		}
	}
	return nil, false
}

func (s *Service) logFailure(ctx context.Context, stage domain.TriageStage, err error) {
	logger.WithContext(ctx).
		WithError(err).
		WithField("stage", string(stage)).
		Warn("email triage failed")
}

var _ in.TriageService = (*Service)(nil)
