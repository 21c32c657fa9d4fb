package designs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dripapps/canva-connect/canva"
	"github.com/dripapps/canva-connect/export"
	errs "github.com/dripapps/canva-connect/internal/errors"
)

// TokenSource yields the access token of the current session, if any.
// Satisfied by auth.AuthorizationService.
type TokenSource interface {
	AccessToken() (string, bool)
}

// ListAPI is the slice of the Canva client the catalog reads designs from.
type ListAPI interface {
	ListDesigns(ctx context.Context, accessToken string) (*canva.DesignList, error)
}

// Exporter drives one export job to completion. Satisfied by export.Runner.
type Exporter interface {
	Run(ctx context.Context, accessToken, designID string) (export.Result, error)
}

// Downloader persists the bytes behind a download URL. Satisfied by
// fetch.Fetcher.
type Downloader interface {
	Download(ctx context.Context, downloadURL, designID string) (string, error)
}

// Catalog lists the user's remote designs with local import state stitched
// in, and runs the import pipeline for a chosen design.
type Catalog struct {
	api        ListAPI
	tokens     TokenSource
	registry   Registry
	exporter   Exporter
	downloader Downloader
}

func NewCatalog(api ListAPI, tokens TokenSource, registry Registry, exporter Exporter, downloader Downloader) *Catalog {
	return &Catalog{
		api:        api,
		tokens:     tokens,
		registry:   registry,
		exporter:   exporter,
		downloader: downloader,
	}
}

// List fetches one page of designs. Missing authentication is an error,
// never an empty result.
func (c *Catalog) List(ctx context.Context) ([]Design, error) {
	accessToken, ok := c.tokens.AccessToken()
	if !ok {
		return nil, fmt.Errorf("designs.List: %w", errs.ErrNotAuthenticated)
	}

	page, err := c.api.ListDesigns(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("designs.List: %w", err)
	}

	list := make([]Design, 0, len(page.Items))
	for _, item := range page.Items {
		if item.ID == "" {
			continue
		}

		design := Design{
			DesignID: item.ID,
			Title:    item.Title,
		}
		if design.Title == "" {
			design.Title = DefaultTitle
		}
		if item.Thumbnail != nil {
			design.ThumbnailURL = item.Thumbnail.URL
		}
		if c.registry.IsImported(item.ID) {
			design.Imported = true
			design.LocalImageURL = ImageURLPrefix + item.ID + ".png"
		}

		list = append(list, design)
	}

	log.Info().Int("designs", len(list)).Msg("Retrieved designs from Canva")

	// Only the first page is fetched; flag when there was more.
	if page.Continuation != "" {
		log.Warn().Msg("More designs available - only the first page is fetched")
	}

	return list, nil
}

// Get returns a single design by listing and filtering; Canva's single-design
// endpoint needs a scope this service does not request.
func (c *Catalog) Get(ctx context.Context, designID string) (Design, error) {
	list, err := c.List(ctx)
	if err != nil {
		return Design{}, err
	}
	for _, design := range list {
		if design.DesignID == designID {
			return design, nil
		}
	}
	return Design{}, fmt.Errorf("designs.Get %q: %w", designID, errs.ErrNotFound)
}

// Import exports a design as PNG, downloads it, and records it as imported.
// Blocks for the whole pipeline; expect seconds, bounded by the export
// runner's polling budget. Returns the local image URL.
//
// Concurrent imports of the same design race on the destination file; the
// last writer wins. Acceptable while the service is single-user.
func (c *Catalog) Import(ctx context.Context, designID string) (string, error) {
	accessToken, ok := c.tokens.AccessToken()
	if !ok {
		return "", fmt.Errorf("designs.Import %q: %w", designID, errs.ErrNotAuthenticated)
	}

	importID := uuid.NewString()
	logger := log.With().Str("import_id", importID).Str("design_id", designID).Logger()
	logger.Info().Msg("Starting PNG import")

	result, err := c.exporter.Run(ctx, accessToken, designID)
	if err != nil {
		logger.Err(err).Str("job_id", result.JobID).Int("attempts", result.Attempts).Str("state", string(result.State)).Msg("Export failed")
		return "", fmt.Errorf("designs.Import %q: %w", designID, err)
	}
	logger.Info().Str("job_id", result.JobID).Int("attempts", result.Attempts).Msg("Export completed")

	localPath, err := c.downloader.Download(ctx, result.DownloadURL, designID)
	if err != nil {
		logger.Err(err).Msg("Download failed")
		return "", fmt.Errorf("designs.Import %q: %w", designID, err)
	}

	if err := c.registry.MarkImported(designID, localPath); err != nil {
		return "", fmt.Errorf("designs.Import %q: %w", designID, err)
	}

	imageURL := ImageURLPrefix + designID + ".png"
	logger.Info().Str("path", localPath).Str("image_url", imageURL).Msg("Design imported")
	return imageURL, nil
}

// LocalImagePath resolves a design id to its registered PNG path.
func (c *Catalog) LocalImagePath(designID string) (string, bool) {
	return c.registry.LocalPath(designID)
}
