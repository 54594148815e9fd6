package report

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"projectorcare/internal/handlers"
)

// maxAssetSize bounds a single logo or signature download.
const maxAssetSize = 10 << 20

var (
	errEmptySource     = errors.New("empty asset source")
	errInvalidDataURI  = errors.New("invalid data URI")
	errUnsupportedType = errors.New("image is neither PNG nor JPEG")
	errNotRegularFile  = errors.New("asset path is not a regular file")
	errAssetTooLarge   = errors.New("asset exceeds size limit")
	errLocalSignature  = errors.New("signature must be a data URI or an http(s) URL")
)

// AssetLoader fetches the raw bytes of a logo or signature.
type AssetLoader interface {
	Load(ctx context.Context, source string) ([]byte, error)
}

// SourceLoader resolves data: URIs, http(s) URLs and local file paths. File paths
// are only honoured for configured logos; see loadSignature.
type SourceLoader struct {
	Client *http.Client
}

// NewSourceLoader returns a loader whose HTTP requests time out after timeout.
func NewSourceLoader(timeout time.Duration) *SourceLoader {
	return &SourceLoader{Client: &http.Client{Timeout: timeout}}
}

// Load picks the strategy from the source prefix.
func (l *SourceLoader) Load(ctx context.Context, source string) ([]byte, error) {
	source = strings.TrimSpace(source)
	switch {
	case source == "":
		return nil, errEmptySource
	case strings.HasPrefix(source, "data:"):
		return parseDataURI(source)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return l.fetch(ctx, source)
	default:
		return readFile(source)
	}
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open asset: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat asset: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, errNotRegularFile
	}
	return readLimited(f)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxAssetSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxAssetSize {
		return nil, errAssetTooLarge
	}
	return data, nil
}

// isRemoteSource reports whether source is inline data or an http(s) URL.
func isRemoteSource(source string) bool {
	source = strings.TrimSpace(source)
	return strings.HasPrefix(source, "data:") ||
		strings.HasPrefix(source, "http://") ||
		strings.HasPrefix(source, "https://")
}

func (l *SourceLoader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("parse asset url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build asset request: %w", err)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download asset: unexpected status %d", resp.StatusCode)
	}
	body, err := readLimited(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read asset body: %w", err)
	}
	return body, nil
}

// parseDataURI decodes data:[<mediatype>][;base64],<data>.
func parseDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, errInvalidDataURI
	}
	if !strings.HasSuffix(meta, ";base64") {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidDataURI, err)
		}
		return []byte(unescaped), nil
	}

	payload = strings.TrimSpace(payload)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// some canvases emit unpadded base64
		if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); rawErr == nil {
			return raw, nil
		}
		return nil, fmt.Errorf("%w: %v", errInvalidDataURI, err)
	}
	return data, nil
}

type decodedImage struct {
	format string
	width  int
	height int
}

type imageDecoder struct {
	format string
	config func(io.Reader) (image.Config, error)
}

var (
	pngDecoder  = imageDecoder{format: "PNG", config: png.DecodeConfig}
	jpegDecoder = imageDecoder{format: "JPG", config: jpeg.DecodeConfig}
)

// decodeImage sniffs the bytes and reads the image header with the matching
// decoder. Unrecognised bytes are tried as PNG, then as JPEG.
func decodeImage(data []byte) (decodedImage, error) {
	mime := mimetype.Detect(data)
	order := []imageDecoder{pngDecoder, jpegDecoder}
	if mime.Is("image/jpeg") {
		order = []imageDecoder{jpegDecoder, pngDecoder}
	}
	for _, dec := range order {
		if cfg, err := dec.config(bytes.NewReader(data)); err == nil {
			return decodedImage{format: dec.format, width: cfg.Width, height: cfg.Height}, nil
		}
	}
	return decodedImage{}, fmt.Errorf("%w (detected %s)", errUnsupportedType, mime.String())
}

// loadImage fetches and embeds one optional image. Every failure is logged and
// reported as a nil image.
func loadImage(ctx context.Context, canvas Canvas, loader AssetLoader, name, source string) *Image {
	if strings.TrimSpace(source) == "" {
		return nil
	}

	data, err := loader.Load(ctx, source)
	if err != nil {
		handlers.LogWarn("Report asset unavailable", "asset", name, "source", describeSource(source), "error", err)
		return nil
	}

	img, err := canvas.EmbedImage(name, data)
	if err != nil {
		handlers.LogWarn("Report asset could not be embedded", "asset", name, "source", describeSource(source), "error", err)
		return nil
	}
	return img
}

// loadSignature is loadImage for signatures, which arrive with the report data
// and so may never name a path on this host.
func loadSignature(ctx context.Context, canvas Canvas, loader AssetLoader, name, source string) *Image {
	if strings.TrimSpace(source) == "" {
		return nil
	}
	if !isRemoteSource(source) {
		handlers.LogWarn("Report asset rejected", "asset", name, "error", errLocalSignature)
		return nil
	}
	return loadImage(ctx, canvas, loader, name, source)
}

// describeSource keeps base64 payloads out of the logs.
func describeSource(source string) string {
	if strings.HasPrefix(source, "data:") {
		meta, _, _ := strings.Cut(source, ",")
		return meta + ",…"
	}
	return source
}
