package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bookwright/bookwright/internal/api"
	"github.com/bookwright/bookwright/internal/logger"
)

const systemPrompt = `You are a publishing consultant helping an author define a new book.
Given the author's concept and their choices so far, score each candidate option
from 0 to 100 for how well it fits the concept and its commercial potential.
Respond with a single JSON object of the form
{"scores": {"option_id": 85, ...}, "reasoning": "two or three sentences"}.
Do not include any text outside the JSON object.`

// OpenAI ranks options with a chat completion model. Any OpenAI-compatible
// endpoint works through the base URL override.
type OpenAI struct {
	client *openai.Client
	model  string
	log    *logger.Logger
}

// OpenAIOption configures the engine.
type OpenAIOption func(*openAIConfig)

type openAIConfig struct {
	baseURL string
	model   string
	log     *logger.Logger
}

// WithBaseURL points the engine at an OpenAI-compatible endpoint.
func WithBaseURL(u string) OpenAIOption {
	return func(c *openAIConfig) { c.baseURL = u }
}

// WithModel selects the chat model.
func WithModel(m string) OpenAIOption {
	return func(c *openAIConfig) { c.model = m }
}

// WithLogger overrides the package default logger.
func WithLogger(l *logger.Logger) OpenAIOption {
	return func(c *openAIConfig) { c.log = l }
}

// NewOpenAI creates an engine authenticated with apiKey.
func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAI {
	cfg := openAIConfig{model: openai.GPT4oMini, log: logger.Default}
	for _, opt := range opts {
		opt(&cfg)
	}
	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.baseURL != "" {
		clientCfg.BaseURL = cfg.baseURL
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.model,
		log:    cfg.log,
	}
}

// Suggest scores req.Options with the model and returns them sorted by
// descending score. Options the model did not score keep a zero score and
// sort last.
func (o *OpenAI) Suggest(ctx context.Context, req Request) (Result, error) {
	if len(req.Options) == 0 {
		return Result{}, nil
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.3,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("suggest: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("suggest: empty completion")
	}

	scores, reasoning, err := parseScores(resp.Choices[0].Message.Content)
	if err != nil {
		return Result{}, err
	}

	ranked := applyScores(req.Options, scores)
	o.log.Debug("suggest: ranked %d options for step %s", len(ranked), req.StepKey)
	return Result{Options: ranked, Reasoning: reasoning}, nil
}

func buildPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Book concept: %s\n", req.Concept)
	if len(req.Selections) > 0 {
		b.WriteString("Choices so far:\n")
		for _, k := range sortedKeys(req.Selections) {
			if v := req.Selections[k]; v != "" {
				fmt.Fprintf(&b, "- %s: %s\n", k, v)
			}
		}
	}
	fmt.Fprintf(&b, "\nQuestion: %s\nCandidate options:\n", req.Question)
	for _, opt := range req.Options {
		fmt.Fprintf(&b, "- %s: %s\n", opt.ID, opt.Description)
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type scorePayload struct {
	Scores    map[string]float64 `json:"scores"`
	Reasoning string             `json:"reasoning"`
}

// parseScores pulls the JSON object out of a completion that may be wrapped
// in prose or a markdown fence: everything from the first '{' to the last
// '}' is treated as the payload.
func parseScores(content string) (map[string]float64, string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, "", fmt.Errorf("suggest: no JSON object in completion")
	}
	var payload scorePayload
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return nil, "", fmt.Errorf("suggest: decode completion: %w", err)
	}
	return payload.Scores, payload.Reasoning, nil
}

// applyScores copies the options with clamped model scores and sorts them by
// descending score. The sort is stable so equally scored options keep their
// catalog order.
func applyScores(options []api.Option, scores map[string]float64) []api.Option {
	out := make([]api.Option, len(options))
	copy(out, options)
	for i := range out {
		if s, ok := scores[out[i].ID]; ok {
			out[i].RecommendationScore = clamp(s, 0, 100)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecommendationScore > out[j].RecommendationScore
	})
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
