// internal/nlp/phrase/model.go
package phrase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	commonhttp "dinebot/internal/common/http"
	"dinebot/internal/common/logger"
)

var (
	ErrChunkingFailed  = errors.New("PHRASE_CHUNKING_FAILED")
	ErrChunkingTimeout = errors.New("PHRASE_SERVICE_TIMEOUT")
)

// ModelConfig holds the settings for the chunking backend.
type ModelConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// ModelExtractor calls an external noun-phrase chunking service. Responses
// are filtered through the generic-noun list before being returned.
type ModelExtractor struct {
	config *ModelConfig
	client *commonhttp.Client
	logger logger.Logger
}

func NewModelExtractor(config *ModelConfig, log logger.Logger) *ModelExtractor {
	return &ModelExtractor{
		config: config,
		client: commonhttp.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{
			"component": "phrase-extractor",
		}),
	}
}

// NounPhrases posts the text to the chunking service and returns the
// non-generic phrases it found.
func (m *ModelExtractor) NounPhrases(ctx context.Context, text string) ([]string, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"text": text,
	})

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= m.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff between retries
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ErrChunkingTimeout
			}
		}

		// A fresh request each attempt; the body is consumed on send.
		req, err := http.NewRequestWithContext(ctx, "POST", m.config.BaseURL+"/api/nlp/noun-phrases", bytes.NewBuffer(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChunkingFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, lastErr = m.client.Do(req)

		// If the context expired during the request, report a timeout
		// immediately instead of burning the remaining attempts.
		if ctx.Err() != nil ||
			errors.Is(lastErr, context.DeadlineExceeded) ||
			errors.Is(lastErr, context.Canceled) {
			return nil, ErrChunkingTimeout
		}

		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrChunkingTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrChunkingFailed, lastErr)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: no successful response after retries", ErrChunkingFailed)
	}
	defer resp.Body.Close()

	var apiResponse struct {
		Phrases []string `json:"phrases"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("%w: decode error: %v", ErrChunkingFailed, err)
	}

	phrases := FilterGeneric(apiResponse.Phrases)

	m.logger.Debug("noun phrases extracted", map[string]interface{}{
		"raw":      len(apiResponse.Phrases),
		"filtered": len(phrases),
	})

	return phrases, nil
}
