package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"mockupgen/internal/domain"
	"mockupgen/internal/infra"
)

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client is a thin facade over the Gemini generateContent REST API, scoped to
// multimodal image editing: the caller submits an ordered list of text and
// inline-image parts and receives the first image the model returns. One
// call, one attempt; retry policy belongs to the caller, and in practice the
// caller bounds the call with a deadline instead of retrying.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *infra.Logger
}

// Part is one ordered element of a generation payload. Exactly one of Text
// or Image is set. Part order is preserved verbatim on the wire because it
// affects how the model attends to the inputs.
type Part struct {
	Text  string
	Image *domain.ImageAsset
}

// TextPart builds an instruction part.
func TextPart(text string) Part { return Part{Text: text} }

// ImagePart builds an inline-image part.
func ImagePart(asset domain.ImageAsset) Part { return Part{Image: &asset} }

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts,omitempty"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type geminiGenerateContentRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiGenerateContentResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// NewClient constructs a Gemini client with sane defaults. Callers may
// provide a nil HTTP client; a reusable one with a request timeout will be
// created.
func NewClient(opts Options) (*Client, error) {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 90 * time.Second}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash-image-preview"
	}

	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		model:      model,
		httpClient: client,
		logger:     logger,
	}, nil
}

// Model returns the configured Gemini model identifier.
func (c *Client) Model() string {
	return c.model
}

// EditImage submits the ordered parts to the model and returns the first
// inline image found in the response. Candidates and parts are scanned in
// iteration order; the first-match rule is deliberate, not an accident of
// the wire format. A response with no candidates fails with
// domain.ErrNoCandidate, a response whose candidates carry no image part
// fails with domain.ErrNoImagePart.
func (c *Client) EditImage(ctx context.Context, parts []Part) (domain.ImageAsset, error) {
	wireParts := make([]geminiPart, 0, len(parts))
	for _, part := range parts {
		if part.Image != nil {
			wireParts = append(wireParts, geminiPart{InlineData: &geminiInlineData{
				MimeType: part.Image.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(part.Image.Data),
			}})
			continue
		}
		wireParts = append(wireParts, geminiPart{Text: part.Text})
	}

	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{Role: "user", Parts: wireParts}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}

	var response geminiGenerateContentResponse
	if err := c.invokeGemini(ctx, fmt.Sprintf("/models/%s:generateContent", url.PathEscape(c.model)), payload, &response); err != nil {
		return domain.ImageAsset{}, err
	}

	if len(response.Candidates) == 0 {
		return domain.ImageAsset{}, domain.ErrNoCandidate
	}

	for _, candidate := range response.Candidates {
		for _, part := range candidate.Content.Parts {
			decoded, err := decodePart(part)
			if err != nil {
				return domain.ImageAsset{}, err
			}
			img, ok := decoded.(inlineImagePart)
			if !ok {
				continue
			}
			c.logger.Debug().
				Str("model", c.model).
				Str("mime_type", img.asset.MIMEType).
				Int("bytes", img.asset.Size()).
				Msg("genai: received edited image")
			return img.asset, nil
		}
	}

	return domain.ImageAsset{}, domain.ErrNoImagePart
}

// decodedPart is the tagged decoding of a response part. Classifying parts
// up front keeps the first-image extraction rule explicit and testable
// instead of duck-typing the wire shape at the extraction site.
type decodedPart interface{ isDecodedPart() }

type textPart struct{ text string }

type inlineImagePart struct{ asset domain.ImageAsset }

type unknownPart struct{}

func (textPart) isDecodedPart()        {}
func (inlineImagePart) isDecodedPart() {}
func (unknownPart) isDecodedPart()     {}

func decodePart(part geminiPart) (decodedPart, error) {
	if part.InlineData != nil && part.InlineData.Data != "" {
		data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
		if err != nil {
			return nil, fmt.Errorf("decode inline data: %w", err)
		}
		mimeType := part.InlineData.MimeType
		if mimeType == "" {
			mimeType = "image/png"
		}
		return inlineImagePart{asset: domain.ImageAsset{Data: data, MIMEType: mimeType}}, nil
	}
	if part.Text != "" {
		return textPart{text: part.Text}, nil
	}
	return unknownPart{}, nil
}

func (c *Client) invokeGemini(ctx context.Context, path string, payload any, out any) error {
	endpoint := c.baseURL + path
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	q := req.URL.Query()
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invoke gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr geminiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("gemini status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		data, _ := io.ReadAll(resp.Body)
		if len(data) > 0 {
			return fmt.Errorf("gemini status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return fmt.Errorf("gemini status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode gemini response: %w", err)
	}
	return nil
}
