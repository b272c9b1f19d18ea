package mockup

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"mockupgen/internal/domain"
	"mockupgen/internal/imagepipe"
	"mockupgen/internal/infra"
	"mockupgen/internal/providers/genai"
)

// Editor is the external generation call the service delegates the actual
// compositing to.
type Editor interface {
	EditImage(ctx context.Context, parts []genai.Part) (domain.ImageAsset, error)
}

// Request describes one mockup generation. Built per HTTP call and immutable
// once constructed.
type Request struct {
	MockupURL             string
	DesignURL             string
	ReferenceURL          string
	Prompt                string
	DesignSize            domain.DesignSize
	RemoveWhiteBackground bool
	Output                domain.OutputSpec
}

// Result is the transcoded output plus generation metadata.
type Result struct {
	imagepipe.TranscodeResult
	GeneratedAt time.Time
}

// Service sequences a generation request: fetch the inputs, normalize them
// to the canonical format, optionally key out the design's white background,
// delegate to the external model under a wall-clock deadline, and transcode
// the returned image into the caller's output envelope.
type Service struct {
	fetcher      *imagepipe.Fetcher
	editor       Editor
	timeout      time.Duration
	keyThreshold uint8
	logger       *infra.Logger
}

// NewService wires the orchestrator. A zero timeout disables the deadline.
func NewService(fetcher *imagepipe.Fetcher, editor Editor, timeout time.Duration, logger *infra.Logger) *Service {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Service{
		fetcher:      fetcher,
		editor:       editor,
		timeout:      timeout,
		keyThreshold: imagepipe.DefaultKeyThreshold,
		logger:       logger,
	}
}

// Generate runs the full pipeline for one request. The model call is a
// single attempt; if it fails or exceeds the deadline the request fails.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	mockupAsset, err := s.fetchNormalized(ctx, req.MockupURL)
	if err != nil {
		return Result{}, err
	}

	designAsset, err := s.fetchNormalized(ctx, req.DesignURL)
	if err != nil {
		return Result{}, err
	}

	if req.RemoveWhiteBackground {
		keyed, err := imagepipe.KeyOutWhite(designAsset.Data, s.keyThreshold)
		if err != nil {
			return Result{}, err
		}
		designAsset = domain.ImageAsset{Data: keyed, MIMEType: "image/png"}
	}

	// Part order is part of the contract with the model: instruction text,
	// optional reference, product photo, design overlay.
	parts := make([]genai.Part, 0, 4)
	parts = append(parts, genai.TextPart(BuildInstruction(req)))
	if req.ReferenceURL != "" {
		referenceAsset, err := s.fetchNormalized(ctx, req.ReferenceURL)
		if err != nil {
			return Result{}, err
		}
		parts = append(parts, genai.ImagePart(referenceAsset))
	}
	parts = append(parts, genai.ImagePart(mockupAsset), genai.ImagePart(designAsset))

	genCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	generated, err := s.editor.EditImage(genCtx, parts)
	if err != nil {
		return Result{}, fmt.Errorf("generate mockup: %w", err)
	}

	transcoded, err := imagepipe.Transcode(generated.Data, req.Output)
	if err != nil {
		return Result{}, err
	}

	s.logger.Info().
		Int("original_bytes", transcoded.OriginalBytes).
		Int("optimized_bytes", transcoded.TranscodedBytes).
		Float64("reduction", transcoded.Reduction).
		Int("width", transcoded.Width).
		Int("height", transcoded.Height).
		Str("mime_type", transcoded.MIMEType).
		Msg("mockup: generated")

	return Result{TranscodeResult: transcoded, GeneratedAt: time.Now().UTC()}, nil
}

func (s *Service) fetchNormalized(ctx context.Context, rawURL string) (domain.ImageAsset, error) {
	asset, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return domain.ImageAsset{}, err
	}
	return imagepipe.NormalizePNG(asset)
}
