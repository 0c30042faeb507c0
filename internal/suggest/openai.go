package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/metrics"
)

const (
	defaultModel         = "gpt-3.5-turbo-instruct"
	defaultBaseURL       = "https://api.openai.com/v1"
	defaultTimeout       = 10 * time.Second
	defaultMaxRetries    = 2
	defaultRetryInterval = 500 * time.Millisecond

	maxTokens   = 10
	temperature = 0.1
)

type OpenAIConfig struct {
	APIKey        string
	BaseURL       string
	Model         string
	Timeout       time.Duration
	MaxRetries    uint64
	RetryInterval time.Duration
}

// OpenAISuggester asks the OpenAI completions API to pick one of the known
// categories for a description.
type OpenAISuggester struct {
	cfg        OpenAIConfig
	categories CategorySource
	client     *http.Client
	logger     *logrus.Logger
}

func NewOpenAISuggester(cfg OpenAIConfig, categories CategorySource, logger *logrus.Logger) *OpenAISuggester {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultRetryInterval
	}

	return &OpenAISuggester{
		cfg:        cfg,
		categories: categories,
		client:     &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

func (s *OpenAISuggester) Suggest(ctx context.Context, description string) string {
	if s.cfg.APIKey == "" {
		return s.fallback(errors.New("no API key configured"))
	}

	names, err := s.categoryNames(ctx)
	if err != nil {
		return s.fallback(err)
	}

	prompt := buildPrompt(description, names)

	var answer string
	operation := func() error {
		text, err := s.complete(ctx, prompt)
		if err != nil {
			return err
		}
		answer = text
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.cfg.RetryInterval
	retry := backoff.WithContext(backoff.WithMaxRetries(policy, s.cfg.MaxRetries), ctx)

	if err := backoff.Retry(operation, retry); err != nil {
		return s.fallback(err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return s.fallback(errors.New("empty completion"))
	}

	metrics.SuggestionRequests.WithLabelValues("suggested").Inc()
	s.logger.WithField("suggestion", answer).Debug("OpenAISuggester.Suggest.Complete")
	return answer
}

func (s *OpenAISuggester) fallback(err error) string {
	metrics.SuggestionRequests.WithLabelValues("fallback").Inc()
	s.logger.WithError(err).Warn("OpenAISuggester.Suggest.Fallback")
	return FallbackCategory
}

func (s *OpenAISuggester) categoryNames(ctx context.Context) ([]string, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = strings.ToLower(c.Name)
	}
	return names, nil
}

func buildPrompt(description string, categories []string) string {
	return fmt.Sprintf(
		"Given this transaction description: '%s'\n"+
			"Suggest a single word category that best fits this transaction.\n"+
			"Choose ONLY from these available categories: %s\n"+
			"Reply with ONLY the category name in lowercase, nothing else.",
		description,
		strings.Join(categories, ", "),
	)
}

// complete makes one completions call. Client errors other than 429 are
// permanent; everything else may be retried.
func (s *OpenAISuggester) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       s.cfg.Model,
		Prompt:      prompt,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", backoff.Permanent(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/completions", bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completions request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		statusErr := fmt.Errorf("completions returned status %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return "", backoff.Permanent(statusErr)
		}
		return "", statusErr
	}

	var decoded completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", backoff.Permanent(fmt.Errorf("decode completion: %w", err))
	}
	if len(decoded.Choices) == 0 {
		return "", backoff.Permanent(errors.New("completion has no choices"))
	}

	return decoded.Choices[0].Text, nil
}
