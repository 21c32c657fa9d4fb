package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dripapps/canva-connect/internal/config"
	errs "github.com/dripapps/canva-connect/internal/errors"
)

// Fetcher turns an export download URL into a PNG file on local storage.
type Fetcher struct {
	dir        string
	transports []Transport
}

func NewFetcher(cfg config.StorageConfig) *Fetcher {
	return &Fetcher{
		dir:        cfg.GetUploadDir(),
		transports: []Transport{NewPrimaryTransport(), NewFallbackTransport()},
	}
}

// NewFetcherWithTransports exists for callers that need to control the
// download strategies, mainly tests.
func NewFetcherWithTransports(dir string, transports ...Transport) *Fetcher {
	return &Fetcher{dir: dir, transports: transports}
}

// Download fetches the bytes behind downloadURL and writes them to
// <designID>.png in the storage directory, overwriting any previous import
// of the same design. Returns the local file path.
func (f *Fetcher) Download(ctx context.Context, downloadURL, designID string) (string, error) {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", fmt.Errorf("fetch.Download create dir %q: %w", f.dir, err)
	}

	target := filepath.Join(f.dir, designID+".png")
	decoded := decodeOnce(downloadURL)

	var attempts []error
	for _, transport := range f.transports {
		body, err := transport.Fetch(ctx, decoded)
		if err != nil {
			log.Warn().Err(err).Str("design_id", designID).Str("transport", transport.Name()).Msg("Download attempt failed")
			attempts = append(attempts, err)
			continue
		}

		if err := os.WriteFile(target, body, 0o644); err != nil {
			return "", fmt.Errorf("fetch.Download write %q: %w", target, err)
		}

		log.Info().Str("design_id", designID).Str("transport", transport.Name()).Int("bytes", len(body)).Str("path", target).Msg("Downloaded PNG")
		return target, nil
	}

	return "", fmt.Errorf("fetch.Download design %q: %w: %w", designID, errs.ErrDownloadFailed, errors.Join(attempts...))
}

// decodeOnce undoes one level of URL encoding when the URL looks
// double-encoded (an encoded percent sign). Canva sometimes hands out such
// URLs; this is a workaround for that quirk, not general encoding detection.
func decodeOnce(rawURL string) string {
	if !strings.Contains(rawURL, "%25") {
		return rawURL
	}

	decoded, err := url.QueryUnescape(rawURL)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to decode download URL, using original")
		return rawURL
	}
	log.Info().Msg("Download URL was double-encoded, decoded once")
	return decoded
}
