package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/ai"
	"github.com/spigell/cv-screener/internal/logger"
	"github.com/spigell/cv-screener/internal/utils"
)

//go:embed prompt.md
var promptTemplate string

const (
	systemInstruction   = "You write concise, friendly and factual recruiting notes."
	defaultMaxLogLength = 200
	maxNoteLength       = 600
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
}

// NoteWriter asks Gemini for a personal paragraph about a candidate.
type NoteWriter struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewNoteWriter(generator contentGenerator, log *zap.Logger, maxLogLength int) *NoteWriter {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &NoteWriter{
		generator: generator,
		logger:    logger.WithFields(log),
		maxLogLen: maxLogLength,
	}
}

// candidateProfile is what the model gets to see. Contact data stays out.
type candidateProfile struct {
	Name             string   `json:"name"`
	Experience       int      `json:"experienceYears"`
	Education        string   `json:"education,omitempty"`
	Skills           []string `json:"skills"`
	Projects         []string `json:"projects,omitempty"`
	Summary          string   `json:"summary,omitempty"`
	MatchedRequired  []string `json:"matchedRequiredSkills"`
	MatchedPreferred []string `json:"matchedPreferredSkills"`
}

func (w *NoteWriter) WriteNote(ctx context.Context, req ai.NoteRequest) (string, error) {
	c := req.Candidate
	if c == nil {
		return "", errors.New("candidate is required")
	}

	profileJSON, err := json.MarshalIndent(candidateProfile{
		Name:             c.Name,
		Experience:       c.Experience,
		Education:        c.Education.String(),
		Skills:           c.Skills,
		Projects:         c.Projects,
		Summary:          c.Summary,
		MatchedRequired:  c.MatchedRequired,
		MatchedPreferred: c.MatchedPreferred,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidate payload: %w", err)
	}

	criteriaJSON, err := json.MarshalIndent(req.Criteria, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal criteria payload: %w", err)
	}

	prompt := buildPrompt(string(profileJSON), string(criteriaJSON), req.Position, req.Company)

	fields := logger.CandidateFields(c.ID, c.Name)
	w.logger.Debug("gemini generate content request", append(fields,
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, w.maxLogLen)),
	)...)

	raw, err := w.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return "", err
	}

	w.logger.Debug("gemini generate content response", append(fields,
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, w.maxLogLen)),
	)...)

	note := cleanNote(raw)
	if note == "" {
		return "", errors.New("gemini returned an empty note")
	}
	return note, nil
}

func buildPrompt(candidateJSON, criteriaJSON, position, company string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Criteria:\n{{CRITERIA_JSON}}\n\nCandidate:\n{{CANDIDATE_JSON}}\n\nParagraph:"
	}
	// One pass, so values are never scanned for placeholders.
	return strings.NewReplacer(
		"{{CANDIDATE_JSON}}", candidateJSON,
		"{{CRITERIA_JSON}}", criteriaJSON,
		"{{POSITION}}", position,
		"{{COMPANY}}", company,
	).Replace(template)
}

// cleanNote strips fences and quotes a model may wrap around plain text and
// folds the answer into one bounded line.
func cleanNote(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```text")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(strings.TrimSpace(raw), "\"`")
	return utils.TruncateForLog(utils.OneLine(raw), maxNoteLength)
}
