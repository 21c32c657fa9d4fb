package canva

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dripapps/canva-connect/internal/config"
	errs "github.com/dripapps/canva-connect/internal/errors"
)

// Client is a thin typed client for the Canva Connect API. It carries no
// token itself; callers pass the bearer token per request so the client
// stays free of session state.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.CanvaConfig) *Client {
	return &Client{
		baseURL: cfg.GetAPIBaseURL(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListDesigns fetches one page of the user's designs.
func (c *Client) ListDesigns(ctx context.Context, accessToken string) (*DesignList, error) {
	var list DesignList
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/designs", accessToken, nil, &list); err != nil {
		return nil, fmt.Errorf("canva.ListDesigns: %w", err)
	}
	return &list, nil
}

// CreateExport starts an asynchronous PNG export job for a design and
// returns the job id.
func (c *Client) CreateExport(ctx context.Context, accessToken, designID string) (string, error) {
	body := exportRequest{
		DesignID: designID,
		Format:   exportFormat{Type: "png"},
	}

	var resp exportResponse
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/exports", accessToken, body, &resp); err != nil {
		return "", fmt.Errorf("canva.CreateExport: %w", err)
	}

	if resp.Job == nil || resp.Job.ID == "" {
		log.Error().Str("design_id", designID).Msg("Export create response missing job id")
		return "", fmt.Errorf("canva.CreateExport: missing job id: %w", errs.ErrContractViolation)
	}

	return resp.Job.ID, nil
}

// GetExport fetches the current state of an export job. A response that
// decodes but carries no job object comes back as (nil, nil); the poller
// treats that as a transient condition and tries again.
func (c *Client) GetExport(ctx context.Context, accessToken, jobID string) (*ExportJob, error) {
	var resp exportResponse
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/exports/"+jobID, accessToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("canva.GetExport: %w", err)
	}
	return resp.Job, nil
}

func (c *Client) doJSON(ctx context.Context, method, url, accessToken string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read a little of the body for the log; Canva error payloads are small.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Error().Int("status", resp.StatusCode).Str("url", url).Bytes("body", snippet).Msg("Canva API request failed")
		return fmt.Errorf("%s %s: unexpected status %d", method, url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
