package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"triage_server/config"
	"triage_server/core/domain"
	"triage_server/core/port/in"
	"triage_server/core/port/out"
	"triage_server/core/service/classification"
	"triage_server/core/service/reply"
	"triage_server/pkg/apperr"
)

type stubCompletion struct {
	response string
	err      error
}

func (s *stubCompletion) CompleteJSON(ctx context.Context, req out.CompletionRequest) (string, error) {
	return s.response, s.err
}

type fakeEmailRepo struct {
	created []*domain.Email
	err     error
}

func (f *fakeEmailRepo) GetEmail(ctx context.Context, id int64) (*domain.Email, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEmailRepo) ListEmails(ctx context.Context, filter *domain.EmailFilter) ([]*domain.Email, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeEmailRepo) CreateEmail(ctx context.Context, email *domain.Email) error {
	if f.err != nil {
		return f.err
	}
	email.ID = int64(len(f.created) + 1)
	f.created = append(f.created, email)
	return nil
}

func (f *fakeEmailRepo) UpdateEmail(ctx context.Context, email *domain.Email) error { return nil }
func (f *fakeEmailRepo) DeleteEmail(ctx context.Context, id int64) error           { return nil }

type fakeCategoryRepo struct {
	categories []*domain.Category
}

func (f *fakeCategoryRepo) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCategoryRepo) ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	return f.categories, nil
}

func (f *fakeCategoryRepo) ListUsedColors(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return nil, nil
}

func (f *fakeCategoryRepo) CreateCategory(ctx context.Context, category *domain.Category) error {
	return nil
}

func (f *fakeCategoryRepo) UpdateCategory(ctx context.Context, category *domain.Category) error {
	return nil
}

func (f *fakeCategoryRepo) DeleteCategory(ctx context.Context, id int64, userID uuid.UUID) error {
	return nil
}

type fakeExampleRepo struct {
	examples []*domain.Example
}

func (f *fakeExampleRepo) GetExample(ctx context.Context, id int64) (*domain.Example, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeExampleRepo) ListExamples(ctx context.Context, userID uuid.UUID, categoryID *int64, limit, offset int) ([]*domain.Example, int, error) {
	return f.examples, len(f.examples), nil
}

func (f *fakeExampleRepo) ListExamplesByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Example, error) {
	return f.examples, nil
}

func (f *fakeExampleRepo) CreateExample(ctx context.Context, example *domain.Example) error {
	return nil
}

func (f *fakeExampleRepo) UpdateExample(ctx context.Context, example *domain.Example) error {
	return nil
}

func (f *fakeExampleRepo) DeleteExample(ctx context.Context, id int64, userID uuid.UUID) error {
	return nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(filename string, data []byte) (string, error) {
	return f.text, f.err
}

func (f *fakeExtractor) Supports(filename string) bool {
	return filename == "mail.txt" || filename == "mail.pdf"
}

func newFixedService(classifyStub, replyStub *stubCompletion, emailRepo *fakeEmailRepo) *Service {
	return NewService(
		Config{Mode: config.ModeFixed},
		&fakeExtractor{},
		classification.NewClassifier(classifyStub),
		reply.NewComposer(replyStub, 24, 350),
		&stubCompletion{},
		emailRepo,
		&fakeCategoryRepo{},
		&fakeExampleRepo{},
	)
}

func newDynamicService(llm *stubCompletion, emailRepo *fakeEmailRepo, catRepo *fakeCategoryRepo) *Service {
	return NewService(
		Config{Mode: config.ModeDynamic},
		&fakeExtractor{},
		classification.NewClassifier(&stubCompletion{err: errors.New("unused")}),
		reply.NewComposer(&stubCompletion{err: errors.New("unused")}, 24, 350),
		llm,
		emailRepo,
		catRepo,
		&fakeExampleRepo{},
	)
}

func TestProcessFixedHappyPath(t *testing.T) {
	classifyStub := &stubCompletion{
		response: `{"classificacao":"Produtivo","intent":"status","evidencias":["protocolo"],"conf":0.9,"rationale":"Pede status."}`,
	}
	replyStub := &stubCompletion{
		response: `{"assunto":"Status da solicitação","corpo":"Olá.\n\nAtenciosamente,\nGabriel\nAutoU Invest"}`,
	}
	repo := &fakeEmailRepo{}
	svc := newFixedService(classifyStub, replyStub, repo)

	result, err := svc.Process(context.Background(), &in.TriageRequest{
		Content: "Qual o status do protocolo 123?  \n\n\nEnviado do meu iPhone",
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if result.Stage != domain.StagePersisted {
		t.Errorf("Stage = %q, want persisted", result.Stage)
	}
	if result.Classification == nil || result.Classification.Label != domain.LabelProductive {
		t.Error("expected productive classification")
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d emails, want 1", len(repo.created))
	}
	stored := repo.created[0]
	if stored.Content != "Qual o status do protocolo 123?" {
		t.Errorf("stored content not cleaned: %q", stored.Content)
	}
	if stored.Classification == nil || *stored.Classification != "Produtivo" {
		t.Error("stored classification missing")
	}
	if stored.Subject == nil || *stored.Subject != "Status da solicitação" {
		t.Error("stored subject missing")
	}
}

func TestProcessFixedSurvivesModelOutage(t *testing.T) {
	down := &stubCompletion{err: errors.New("upstream down")}
	repo := &fakeEmailRepo{}
	svc := newFixedService(down, down, repo)

	result, err := svc.Process(context.Background(), &in.TriageRequest{
		Content: "Segue em anexo o comprovante.",
	})
	if err != nil {
		t.Fatalf("Process should degrade, got error: %v", err)
	}
	if result.Classification.Intent != domain.IntentDocumentSend {
		t.Errorf("Intent = %q, want envio_documento", result.Classification.Intent)
	}
	if repo.created[0].Reply == nil || *repo.created[0].Reply == "" {
		t.Error("canned reply should still be persisted")
	}
}

func TestProcessRejectsEmptyContent(t *testing.T) {
	svc := newFixedService(&stubCompletion{}, &stubCompletion{}, &fakeEmailRepo{})

	_, err := svc.Process(context.Background(), &in.TriageRequest{})
	if err == nil {
		t.Fatal("expected error for empty request")
	}

	_, err = svc.Process(context.Background(), &in.TriageRequest{Content: "  \n\n  "})
	if err == nil {
		t.Fatal("expected error for content that cleans to empty")
	}
}

func TestProcessRejectsUnsupportedUpload(t *testing.T) {
	svc := newFixedService(&stubCompletion{}, &stubCompletion{}, &fakeEmailRepo{})

	_, err := svc.Process(context.Background(), &in.TriageRequest{
		Filename: "mail.docx",
		FileData: []byte("x"),
	})
	appErr := apperr.AsAppError(err)
	if appErr.Code != apperr.CodeExtractionFailed {
		t.Errorf("Code = %q, want extraction failure", appErr.Code)
	}
}

func TestProcessDynamicHappyPath(t *testing.T) {
	llm := &stubCompletion{
		response: `{"assunto":"Retorno","resposta":"Olá, segue o andamento.","categoria_id":"2","justificativa_categoria":"Pedido de status."}`,
	}
	repo := &fakeEmailRepo{}
	catRepo := &fakeCategoryRepo{categories: []*domain.Category{
		{ID: 1, Name: "Outros"},
		{ID: 2, Name: "Status"},
	}}
	svc := newDynamicService(llm, repo, catRepo)

	result, err := svc.Process(context.Background(), &in.TriageRequest{Content: "qual o andamento?"})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if result.Email.CategoryID == nil || *result.Email.CategoryID != 2 {
		t.Errorf("CategoryID = %v, want 2", result.Email.CategoryID)
	}
}

func TestProcessDynamicDegradesToGenericCategory(t *testing.T) {
	llm := &stubCompletion{err: errors.New("model down")}
	repo := &fakeEmailRepo{}
	catRepo := &fakeCategoryRepo{categories: []*domain.Category{
		{ID: 1, Name: "Outros"},
	}}
	svc := newDynamicService(llm, repo, catRepo)

	result, err := svc.Process(context.Background(), &in.TriageRequest{Content: "mensagem qualquer"})
	if err != nil {
		t.Fatalf("Process should degrade, got error: %v", err)
	}
	if result.Email.CategoryID == nil || *result.Email.CategoryID != 1 {
		t.Errorf("CategoryID = %v, want the generic category", result.Email.CategoryID)
	}
	if result.Email.Reply == nil || *result.Email.Reply == "" {
		t.Error("degraded run should persist a canned reply")
	}
}

func TestProcessDynamicInventedCategoryDegrades(t *testing.T) {
	llm := &stubCompletion{
		response: `{"assunto":"Retorno","resposta":"Olá.","categoria_id":"99","justificativa_categoria":"inventada"}`,
	}
	repo := &fakeEmailRepo{}
	catRepo := &fakeCategoryRepo{categories: []*domain.Category{
		{ID: 1, Name: "Outros"},
		{ID: 2, Name: "Status"},
	}}
	svc := newDynamicService(llm, repo, catRepo)

	result, err := svc.Process(context.Background(), &in.TriageRequest{Content: "mensagem"})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if result.Email.CategoryID == nil || *result.Email.CategoryID != 1 {
		t.Errorf("CategoryID = %v, want remap to the generic category", result.Email.CategoryID)
	}
}

func TestProcessDynamicNoCategoriesFails(t *testing.T) {
	svc := newDynamicService(&stubCompletion{}, &fakeEmailRepo{}, &fakeCategoryRepo{})

	_, err := svc.Process(context.Background(), &in.TriageRequest{Content: "mensagem"})
	appErr := apperr.AsAppError(err)
	if appErr.Code != apperr.CodeConfigError {
		t.Errorf("Code = %q, want configuration error", appErr.Code)
	}
}

func TestProcessDynamicModelFailureWithoutGenericFails(t *testing.T) {
	llm := &stubCompletion{err: errors.New("model down")}
	catRepo := &fakeCategoryRepo{categories: []*domain.Category{
		{ID: 2, Name: "Status"},
	}}
	svc := newDynamicService(llm, &fakeEmailRepo{}, catRepo)

	_, err := svc.Process(context.Background(), &in.TriageRequest{Content: "mensagem"})
	appErr := apperr.AsAppError(err)
	if appErr.Code != apperr.CodeModelError {
		t.Errorf("Code = %q, want model error", appErr.Code)
	}
}
