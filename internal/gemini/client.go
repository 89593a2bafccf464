// Package gemini calls the Google Gemini generative-text API to draft
// product descriptions.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"catalogo/internal/model"

	"github.com/rs/zerolog"
)

const generatePath = "/v1beta/models/gemini-2.0-flash:generateContent"

// promptTemplate instructs the model to produce one ready-to-use description
// rather than a list of alternatives.
const promptTemplate = "Você é um assistente útil. Gere uma descrição criativa, completa e objetiva para o produto abaixo. " +
	"Use um texto corrido, fluido e bem formatado, pronto para usar, sem opções múltiplas.\n" +
	"Nome: %s\n" +
	"Categoria: %s\n" +
	"Descrição:"

// placeholderFixups replaces the literal placeholders the model tends to
// leave in clothing descriptions.
var placeholderFixups = strings.NewReplacer(
	"[inserir tipo de tecido]", "algodão premium",
	"[Inserir cores e tamanhos disponíveis]", "preto, branco e cinza; tamanhos P, M, G e GG",
)

// Generator produces a product description from a name and category.
type Generator interface {
	Generate(ctx context.Context, name, category string) (string, error)
}

// Client is an HTTP Generator backed by the Gemini API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     zerolog.Logger
}

// NewClient creates a Gemini API client. The timeout bounds each generation
// call; the upstream service itself offers no latency guarantee.
func NewClient(apiKey, baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.With().Str("component", "gemini-client").Logger(),
	}
}

// request and response mirror the generateContent wire format.
type request struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type response struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate drafts a description for the named product. Network failures,
// non-2xx responses and responses without candidates all surface as the same
// generation error; callers cannot usefully distinguish them.
func (c *Client) Generate(ctx context.Context, name, category string) (string, error) {
	prompt := fmt.Sprintf(promptTemplate, name, category)

	body, err := json.Marshal(request{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	url := fmt.Sprintf("%s%s?key=%s", c.baseURL, generatePath, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("generation request failed")
		return "", model.ErrGenerationFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error().Int("status", resp.StatusCode).Msg("generation service returned an error status")
		return "", model.ErrGenerationFailed
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.logger.Error().Err(err).Msg("failed to decode generation response")
		return "", model.ErrGenerationFailed
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		c.logger.Error().Msg("generation response has no candidates")
		return "", model.ErrGenerationFailed
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	return placeholderFixups.Replace(text), nil
}
