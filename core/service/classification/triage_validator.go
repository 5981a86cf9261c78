package classification

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"triage_server/core/domain"
)

const (
	maxEvidences    = 5
	maxRationaleLen = 200
	defaultConf     = 0.6
)

// rawClassification mirrors the model's JSON contract before normalization.
// Loose types absorb common contract drift (string conf, single evidence).
type rawClassification struct {
	Classification string `json:"classificacao"`
	Intent         string `json:"intent"`
	Evidences      any    `json:"evidencias"`
	Conf           any    `json:"conf"`
	Rationale      string `json:"rationale"`
}

// Normalize parses the model's raw JSON output and coerces every field into
// the domain contract. It returns an error only when the text is not a JSON
// object at all; field-level violations are repaired with defaults.
func Normalize(raw string) (*domain.Classification, error) {
	var rc rawClassification
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &rc); err != nil {
		return nil, err
	}

	result := &domain.Classification{
		Label:      normalizeLabel(rc.Classification),
		Intent:     normalizeIntent(rc.Intent),
		Evidences:  normalizeEvidences(rc.Evidences),
		Confidence: normalizeConf(rc.Conf),
		Rationale:  normalizeRationale(rc.Rationale),
	}
	return result, nil
}

// normalizeLabel maps anything that is not exactly "produtivo" (case
// insensitive) to Improdutivo.
func normalizeLabel(s string) domain.Label {
	if strings.ToLower(strings.TrimSpace(s)) == "produtivo" {
		return domain.LabelProductive
	}
	return domain.LabelUnproductive
}

func normalizeIntent(s string) domain.Intent {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.IntentOther
	}
	for _, it := range domain.Intents {
		if string(it) == s {
			return it
		}
	}
	return domain.IntentOther
}

func normalizeEvidences(v any) []string {
	var out []string
	switch ev := v.(type) {
	case string:
		out = []string{ev}
	case []any:
		for _, e := range ev {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = ev
	}
	if out == nil {
		out = []string{}
	}
	if len(out) > maxEvidences {
		out = out[:maxEvidences]
	}
	return out
}

func normalizeConf(v any) float64 {
	var conf float64
	switch c := v.(type) {
	case float64:
		conf = c
	case int:
		conf = float64(c)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return defaultConf
		}
		conf = parsed
	default:
		return defaultConf
	}
	if conf < 0.0 {
		return 0.0
	}
	if conf > 1.0 {
		return 1.0
	}
	return conf
}

func normalizeRationale(s string) string {
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > maxRationaleLen {
		s = string(runes[:maxRationaleLen])
	}
	return s
}
