package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"StockKeeper/internal/model"
)

// Intent values extracted from an utterance.
const (
	IntentImport = "import"
	IntentExport = "export"
)

// ParsedAction is the structured result of intent extraction.
// Name and Quantity are mandatory; everything else is best-effort.
type ParsedAction struct {
	Action   string
	Name     string
	Category string
	Quantity int
	Unit     string
	Location string
	MinStock int
}

// Client is the outbound contract to the generative text service.
type Client interface {
	// Chat sends free-form text plus an inventory snapshot and returns
	// the service's reply verbatim.
	Chat(ctx context.Context, message string, snapshot []model.InventoryItem) (string, error)
	// Extract requests structured intent extraction. A schema violation
	// or transport failure is reported as an error.
	Extract(ctx context.Context, message string) (*ParsedAction, error)
}

// GeminiClient talks to a Gemini-style generateContent REST endpoint.
type GeminiClient struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	log     *zap.SugaredLogger
}

// NewGeminiClient builds a client for the given endpoint and model.
func NewGeminiClient(baseURL, apiKey, modelName string, log *zap.SugaredLogger) *GeminiClient {
	return &GeminiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   modelName,
		http:    http.DefaultClient,
		log:     log,
	}
}

type genPart struct {
	Text string `json:"text"`
}

type genContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []genPart `json:"parts"`
}

type genConfig struct {
	Temperature      float64         `json:"temperature,omitempty"`
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type genRequest struct {
	Contents          []genContent `json:"contents"`
	SystemInstruction *genContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  *genConfig   `json:"generationConfig,omitempty"`
}

type genResponse struct {
	Candidates []struct {
		Content struct {
			Parts []genPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate posts one request and returns the first candidate's text.
func (c *GeminiClient) generate(ctx context.Context, payload genRequest) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generative service status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var gr genResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("decoding generative response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty generative response")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// chatSnapshot is the trimmed inventory summary grounding free-form chat.
type chatSnapshot struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Location string `json:"location"`
}

// Chat implements the free-form conversation call.
func (c *GeminiClient) Chat(ctx context.Context, message string, snapshot []model.InventoryItem) (string, error) {
	summary := make([]chatSnapshot, 0, len(snapshot))
	for _, it := range snapshot {
		summary = append(summary, chatSnapshot{Name: it.Name, Quantity: it.Quantity, Location: it.Location})
	}
	ctxJSON, err := json.Marshal(summary)
	if err != nil {
		return "", err
	}
	system := fmt.Sprintf(`You are the warehouse stock assistant.
Your job: track stock levels, answer questions and help with stock-in and stock-out.

STOCK DATA (JSON summary):
%s

ANSWER GUIDELINES:
1. Answer briefly and in a friendly tone.
2. Read exact quantities from the JSON data.
3. If the user wants to take, use or export items, guide them to confirm the quantity.
4. If the user wants to add or import items, guide them to confirm the details.`, ctxJSON)

	return c.generate(ctx, genRequest{
		Contents:          []genContent{{Role: "user", Parts: []genPart{{Text: message}}}},
		SystemInstruction: &genContent{Parts: []genPart{{Text: system}}},
		GenerationConfig:  &genConfig{Temperature: 0.7},
	})
}

// extractSchema constrains the structured extraction output.
const extractSchema = `{
  "type": "OBJECT",
  "properties": {
    "action": {"type": "STRING", "enum": ["import", "export"], "description": "import (stock in) or export (stock out)"},
    "name": {"type": "STRING", "description": "item name"},
    "category": {"type": "STRING", "description": "category, if mentioned"},
    "quantity": {"type": "NUMBER", "description": "quantity"},
    "unit": {"type": "STRING", "description": "unit of measure"},
    "location": {"type": "STRING", "description": "storage location"},
    "minStock": {"type": "NUMBER", "description": "minimum stock, new imports only"}
  },
  "required": ["action", "name", "quantity"]
}`

// Extract implements the structured intent-extraction call.
func (c *GeminiClient) Extract(ctx context.Context, message string) (*ParsedAction, error) {
	prompt := fmt.Sprintf(`Analyze this warehouse command: %q.
Decide whether it is a STOCK-IN action (add new / buy more) or a STOCK-OUT action (take out / use / sell).
- Stock-in keywords: add, import, buy, new, thêm, mua, nhập.
- Stock-out keywords: take, use, sell, remove, subtract, lấy, dùng, xuất, bán, trừ.
Extract the item details.`, message)

	text, err := c.generate(ctx, genRequest{
		Contents: []genContent{{Role: "user", Parts: []genPart{{Text: prompt}}}},
		GenerationConfig: &genConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   json.RawMessage(extractSchema),
		},
	})
	if err != nil {
		return nil, err
	}
	var wire struct {
		Action   string  `json:"action"`
		Name     string  `json:"name"`
		Category string  `json:"category"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
		Location string  `json:"location"`
		MinStock float64 `json:"minStock"`
	}
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return nil, fmt.Errorf("decoding extracted action: %w", err)
	}
	if wire.Action != IntentImport && wire.Action != IntentExport {
		return nil, fmt.Errorf("unknown action %q", wire.Action)
	}
	if strings.TrimSpace(wire.Name) == "" || wire.Quantity <= 0 {
		return nil, errors.New("extracted action missing name or quantity")
	}
	return &ParsedAction{
		Action:   wire.Action,
		Name:     wire.Name,
		Category: wire.Category,
		Quantity: int(wire.Quantity),
		Unit:     wire.Unit,
		Location: wire.Location,
		MinStock: int(wire.MinStock),
	}, nil
}
