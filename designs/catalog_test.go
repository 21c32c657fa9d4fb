package designs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dripapps/canva-connect/canva"
	"github.com/dripapps/canva-connect/designs"
	"github.com/dripapps/canva-connect/export"
	errs "github.com/dripapps/canva-connect/internal/errors"
)

type fakeTokens struct {
	token string
}

func (f fakeTokens) AccessToken() (string, bool) {
	return f.token, f.token != ""
}

type fakeListAPI struct {
	list *canva.DesignList
	err  error
}

func (f *fakeListAPI) ListDesigns(ctx context.Context, accessToken string) (*canva.DesignList, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

type fakeExporter struct {
	url string
	err error
}

func (f *fakeExporter) Run(ctx context.Context, accessToken, designID string) (export.Result, error) {
	if f.err != nil {
		return export.Result{State: export.StateFailed}, f.err
	}
	return export.Result{State: export.StateSucceeded, JobID: "job-1", DownloadURL: f.url, Attempts: 1}, nil
}

type fakeDownloader struct {
	path  string
	err   error
	calls int
}

func (f *fakeDownloader) Download(ctx context.Context, downloadURL, designID string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.path, nil
}

// catalogFixture holds all test dependencies
type catalogFixture struct {
	api        *fakeListAPI
	registry   designs.Registry
	exporter   *fakeExporter
	downloader *fakeDownloader
	catalog    *designs.Catalog
}

func setupCatalogFixture(t *testing.T, token string, list *canva.DesignList) *catalogFixture {
	t.Helper()

	api := &fakeListAPI{list: list}
	registry := designs.NewInMemoryRegistry()
	exporter := &fakeExporter{url: "https://cdn.example.com/export.png"}
	downloader := &fakeDownloader{path: "/uploads/D1.png"}

	return &catalogFixture{
		api:        api,
		registry:   registry,
		exporter:   exporter,
		downloader: downloader,
		catalog:    designs.NewCatalog(api, fakeTokens{token: token}, registry, exporter, downloader),
	}
}

func TestListRequiresAuthentication(t *testing.T) {
	f := setupCatalogFixture(t, "", &canva.DesignList{})

	_, err := f.catalog.List(t.Context())
	require.ErrorIs(t, err, errs.ErrNotAuthenticated)
}

func TestListDefaultsMissingFields(t *testing.T) {
	f := setupCatalogFixture(t, "token", &canva.DesignList{
		Items: []canva.Design{{ID: "D1"}},
	})

	list, err := f.catalog.List(t.Context())
	require.NoError(t, err)
	require.Equal(t, []designs.Design{{
		DesignID: "D1",
		Title:    "Untitled Design",
		Imported: false,
	}}, list)
}

func TestListMapsRemoteFields(t *testing.T) {
	f := setupCatalogFixture(t, "token", &canva.DesignList{
		Items: []canva.Design{
			{ID: "D1", Title: "Poster", Thumbnail: &canva.Thumbnail{URL: "https://cdn.example.com/d1-thumb.png"}},
		},
		Continuation: "more",
	})

	list, err := f.catalog.List(t.Context())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Poster", list[0].Title)
	require.Equal(t, "https://cdn.example.com/d1-thumb.png", list[0].ThumbnailURL)
}

func TestListOverlaysImportedState(t *testing.T) {
	f := setupCatalogFixture(t, "token", &canva.DesignList{
		Items: []canva.Design{{ID: "D1"}, {ID: "D2"}},
	})

	_, err := f.catalog.Import(t.Context(), "D1")
	require.NoError(t, err)

	list, err := f.catalog.List(t.Context())
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.True(t, list[0].Imported)
	require.Equal(t, "/images/D1.png", list[0].LocalImageURL)
	require.False(t, list[1].Imported)
	require.Empty(t, list[1].LocalImageURL)
}

func TestGetFiltersById(t *testing.T) {
	f := setupCatalogFixture(t, "token", &canva.DesignList{
		Items: []canva.Design{{ID: "D1"}, {ID: "D2", Title: "Banner"}},
	})

	design, err := f.catalog.Get(t.Context(), "D2")
	require.NoError(t, err)
	require.Equal(t, "Banner", design.Title)

	_, err = f.catalog.Get(t.Context(), "D3")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestImportRequiresAuthentication(t *testing.T) {
	f := setupCatalogFixture(t, "", &canva.DesignList{})

	_, err := f.catalog.Import(t.Context(), "D1")
	require.ErrorIs(t, err, errs.ErrNotAuthenticated)
}

func TestImportMarksDesignImported(t *testing.T) {
	f := setupCatalogFixture(t, "token", &canva.DesignList{
		Items: []canva.Design{{ID: "D1"}},
	})

	imageURL, err := f.catalog.Import(t.Context(), "D1")
	require.NoError(t, err)
	require.Equal(t, "/images/D1.png", imageURL)

	require.True(t, f.registry.IsImported("D1"))
	path, ok := f.registry.LocalPath("D1")
	require.True(t, ok)
	require.Equal(t, "/uploads/D1.png", path)
}

func TestImportTwiceIsIdempotent(t *testing.T) {
	f := setupCatalogFixture(t, "token", &canva.DesignList{
		Items: []canva.Design{{ID: "D1"}},
	})

	first, err := f.catalog.Import(t.Context(), "D1")
	require.NoError(t, err)
	second, err := f.catalog.Import(t.Context(), "D1")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 2, f.downloader.calls)

	path, ok := f.registry.LocalPath("D1")
	require.True(t, ok)
	require.Equal(t, "/uploads/D1.png", path)
}

func TestImportExportFailure(t *testing.T) {
	f := setupCatalogFixture(t, "token", &canva.DesignList{})
	f.exporter.err = errs.ErrExportTimeout

	_, err := f.catalog.Import(t.Context(), "D1")
	require.ErrorIs(t, err, errs.ErrExportTimeout)
	require.False(t, f.registry.IsImported("D1"))
	require.Zero(t, f.downloader.calls)
}

func TestImportDownloadFailure(t *testing.T) {
	f := setupCatalogFixture(t, "token", &canva.DesignList{})
	f.downloader.err = errors.New("all transports failed")

	_, err := f.catalog.Import(t.Context(), "D1")
	require.Error(t, err)
	require.False(t, f.registry.IsImported("D1"))
}
