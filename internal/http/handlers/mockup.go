package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mockupgen/internal/domain"
	"mockupgen/internal/infra"
	"mockupgen/internal/middleware"
	"mockupgen/internal/mockup"
)

type generateMockupRequest struct {
	MockupURL             string `json:"mockupUrl"`
	DesignURL             string `json:"designUrl"`
	ReferenceURL          string `json:"referenceUrl"`
	OutputFormat          string `json:"outputFormat"`
	Quality               int    `json:"quality"`
	MaxWidth              int    `json:"maxWidth"`
	DesignSize            string `json:"designSize"`
	RemoveWhiteBackground bool   `json:"removeWhiteBackground"`
	Prompt                string `json:"prompt"`
}

type sizeMetrics struct {
	OriginalBytes    int     `json:"originalBytes"`
	OptimizedBytes   int     `json:"optimizedBytes"`
	ReductionPercent float64 `json:"reductionPercent"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
}

type inlineResponse struct {
	Success     bool        `json:"success"`
	Image       string      `json:"image"`
	MimeType    string      `json:"mimeType"`
	Metrics     sizeMetrics `json:"metrics"`
	GeneratedAt string      `json:"generatedAt"`
}

type persistResponse struct {
	Success     bool        `json:"success"`
	URL         string      `json:"url"`
	Filename    string      `json:"filename"`
	MimeType    string      `json:"mimeType"`
	Metrics     sizeMetrics `json:"metrics"`
	GeneratedAt string      `json:"generatedAt"`
}

// GenerateMockup handles POST /api/generate-mockup. Validation happens here
// so an invalid request never reaches the external model; everything past
// validation maps onto the uniform 500 envelope.
func (a *App) GenerateMockup(w http.ResponseWriter, r *http.Request) {
	var req generateMockupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	if req.MockupURL == "" || req.DesignURL == "" {
		a.fail(w, http.StatusBadRequest, domain.ErrMissingFields.Error(), "")
		return
	}

	spec := domain.OutputSpec{
		Format:       req.OutputFormat,
		Quality:      req.Quality,
		MaxDimension: req.MaxWidth,
	}.Normalize()

	result, err := a.Mockups.Generate(r.Context(), mockup.Request{
		MockupURL:             req.MockupURL,
		DesignURL:             req.DesignURL,
		ReferenceURL:          req.ReferenceURL,
		Prompt:                req.Prompt,
		DesignSize:            domain.ParseDesignSize(req.DesignSize),
		RemoveWhiteBackground: req.RemoveWhiteBackground,
		Output:                spec,
	})
	if err != nil {
		a.Logger.Error().
			Err(err).
			Str("mockup_url", req.MockupURL).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Msg("handlers: mockup generation failed")
		a.fail(w, http.StatusInternalServerError, "Failed to generate mockup", err.Error())
		return
	}

	metrics := sizeMetrics{
		OriginalBytes:    result.OriginalBytes,
		OptimizedBytes:   result.TranscodedBytes,
		ReductionPercent: result.Reduction * 100,
		Width:            result.Width,
		Height:           result.Height,
	}
	generatedAt := result.GeneratedAt.Format(time.RFC3339)

	if a.OutputMode == infra.OutputModePersist {
		filename, err := a.Store.SaveMockup(r.Context(), result.Data, result.MIMEType)
		if err != nil {
			a.Logger.Error().Err(err).Msg("handlers: persist mockup failed")
			a.fail(w, http.StatusInternalServerError, "Failed to generate mockup", err.Error())
			return
		}
		a.json(w, http.StatusOK, persistResponse{
			Success:     true,
			URL:         a.PublicBaseURL + "/uploads/" + filename,
			Filename:    filename,
			MimeType:    result.MIMEType,
			Metrics:     metrics,
			GeneratedAt: generatedAt,
		})
		return
	}

	a.json(w, http.StatusOK, inlineResponse{
		Success:     true,
		Image:       fmt.Sprintf("data:%s;base64,%s", result.MIMEType, base64.StdEncoding.EncodeToString(result.Data)),
		MimeType:    result.MIMEType,
		Metrics:     metrics,
		GeneratedAt: generatedAt,
	})
}
