package domain

// Label is the binary productivity classification.
type Label string

const (
	LabelProductive   Label = "Produtivo"
	LabelUnproductive Label = "Improdutivo"
)

// Intent identifies what the sender wants. The set is fixed; classification
// output outside it is normalized to IntentOther.
type Intent string

const (
	IntentStatus        Intent = "status"
	IntentProductDoubt  Intent = "duvida_produto"
	IntentDocumentSend  Intent = "envio_documento"
	IntentAccessSupport Intent = "suporte_acesso"
	IntentBilling       Intent = "cobranca"
	IntentRegistration  Intent = "cadastro"
	IntentDispute       Intent = "contestacao"
	IntentInstitutional Intent = "informacao_institucional"
	IntentCourtesy      Intent = "felicitacao_agradecimento"
	IntentMarketingSpam Intent = "marketing_spam"
	IntentOther         Intent = "outros"
)

// Intents lists every valid intent.
var Intents = []Intent{
	IntentStatus,
	IntentProductDoubt,
	IntentDocumentSend,
	IntentAccessSupport,
	IntentBilling,
	IntentRegistration,
	IntentDispute,
	IntentInstitutional,
	IntentCourtesy,
	IntentMarketingSpam,
	IntentOther,
}

// Classification is the normalized output of the fixed-taxonomy classifier.
type Classification struct {
	Label      Label    `json:"classificacao"`
	Intent     Intent   `json:"intent"`
	Evidences  []string `json:"evidencias"`
	Confidence float64  `json:"conf"`
	Rationale  string   `json:"rationale"`
}

// Reply is a composed answer to an inbound email.
type Reply struct {
	Subject string `json:"assunto"`
	Body    string `json:"corpo"`
}

// DynamicResult is the validated output of the dynamic-taxonomy model call:
// a reply plus the chosen user category.
type DynamicResult struct {
	Subject           string `json:"assunto"`
	Reply             string `json:"resposta"`
	CategoryID        string `json:"categoria_id"`
	CategoryRationale string `json:"justificativa_categoria"`
}

// TriageStage tracks an email through the processing pipeline.
type TriageStage string

const (
	StageReceived   TriageStage = "received"
	StageCleaned    TriageStage = "cleaned"
	StageClassified TriageStage = "classified"
	StageReplied    TriageStage = "replied"
	StagePersisted  TriageStage = "persisted"
	StageFailed     TriageStage = "failed"
)
