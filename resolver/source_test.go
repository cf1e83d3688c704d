package resolver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihaelamj/stitcher"
	"github.com/mihaelamj/stitcher/stitcherrors"
)

func writeTestFile(t *testing.T, name string, data []byte) Location {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	loc, err := FromPath(path)
	require.NoError(t, err)
	return loc
}

func TestSourceFetchFile(t *testing.T) {
	loc := writeTestFile(t, "api.yaml", []byte("openapi: 3.0.0\n"))

	data, err := NewSource().Fetch(context.Background(), loc)
	require.NoError(t, err)
	assert.Equal(t, "openapi: 3.0.0\n", string(data))
}

func TestSourceFetchMissingFile(t *testing.T) {
	loc, err := FromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	_, err = NewSource().Fetch(context.Background(), loc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, stitcherrors.ErrFetch))

	var fetchErr *stitcherrors.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, loc.String(), fetchErr.Location)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSourceFetchEnforcesSizeLimit(t *testing.T) {
	loc := writeTestFile(t, "big.yaml", []byte(strings.Repeat("a", 100)))

	src := &Source{MaxFileSize: 64}
	_, err := src.Fetch(context.Background(), loc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, stitcherrors.ErrResourceLimit))

	var limitErr *stitcherrors.ResourceLimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, "document_size", limitErr.ResourceType)
	assert.Equal(t, int64(64), limitErr.Limit)
	assert.Equal(t, int64(100), limitErr.Actual)
}

func TestSourceFetchStripsUTF8BOM(t *testing.T) {
	loc := writeTestFile(t, "bom.yaml", append([]byte{0xEF, 0xBB, 0xBF}, []byte("a: 1\n")...))

	data, err := NewSource().Fetch(context.Background(), loc)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(data))
}

func TestSourceFetchTranscodesUTF16(t *testing.T) {
	// "a: 1\n" as UTF-16LE with a BOM.
	payload := []byte{0xFF, 0xFE}
	for _, r := range "a: 1\n" {
		payload = append(payload, byte(r), 0)
	}
	loc := writeTestFile(t, "utf16.yaml", payload)

	data, err := NewSource().Fetch(context.Background(), loc)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(data))
}

func TestSourceFetchRejectsInvalidUTF8(t *testing.T) {
	loc := writeTestFile(t, "binary.yaml", []byte{'a', ':', ' ', 0xC3, 0x28, '\n'})

	_, err := NewSource().Fetch(context.Background(), loc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, stitcherrors.ErrEncoding))
}

func TestSourceFetchURL(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("openapi: 3.0.0\n"))
	}))
	defer server.Close()

	loc, err := FromURL(server.URL + "/api.yaml")
	require.NoError(t, err)

	data, err := NewSource().Fetch(context.Background(), loc)
	require.NoError(t, err)
	assert.Equal(t, "openapi: 3.0.0\n", string(data))
	assert.Equal(t, stitcher.UserAgent(), gotAgent)
}

func TestSourceFetchURLCustomUserAgent(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("a: 1\n"))
	}))
	defer server.Close()

	loc, err := FromURL(server.URL + "/api.yaml")
	require.NoError(t, err)

	src := &Source{UserAgent: "custom/1.0"}
	_, err = src.Fetch(context.Background(), loc)
	require.NoError(t, err)
	assert.Equal(t, "custom/1.0", gotAgent)
}

func TestSourceFetchURLErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	loc, err := FromURL(server.URL + "/missing.yaml")
	require.NoError(t, err)

	_, err = NewSource().Fetch(context.Background(), loc)
	require.Error(t, err)

	var fetchErr *stitcherrors.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}

func TestSourceFetchURLHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	loc, err := FromURL(server.URL + "/slow.yaml")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewSource().Fetch(ctx, loc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
