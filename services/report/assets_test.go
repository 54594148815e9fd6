package report

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 80, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h)))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(w, h), nil))
	return buf.Bytes()
}

func TestParseDataURI(t *testing.T) {
	payload := []byte("signature-bytes")
	encoded := base64.StdEncoding.EncodeToString(payload)

	tests := []struct {
		name    string
		uri     string
		want    []byte
		wantErr bool
	}{
		{"png base64", "data:image/png;base64," + encoded, payload, false},
		{"no media type", "data:;base64," + encoded, payload, false},
		{"unpadded", "data:image/jpeg;base64," + base64.RawStdEncoding.EncodeToString(payload), payload, false},
		{"percent encoded", "data:text/plain,hello%20there", []byte("hello there"), false},
		{"missing comma", "data:image/png;base64", nil, true},
		{"bad base64", "data:image/png;base64,!!!", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDataURI(tt.uri)
			if tt.wantErr {
				assert.ErrorIs(t, err, errInvalidDataURI)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeImage(t *testing.T) {
	p, err := decodeImage(pngBytes(t, 30, 10))
	require.NoError(t, err)
	assert.Equal(t, decodedImage{format: "PNG", width: 30, height: 10}, p)

	j, err := decodeImage(jpegBytes(t, 16, 8))
	require.NoError(t, err)
	assert.Equal(t, decodedImage{format: "JPG", width: 16, height: 8}, j)

	_, err = decodeImage([]byte("GIF89a not really"))
	assert.ErrorIs(t, err, errUnsupportedType)
}

func TestSourceLoader(t *testing.T) {
	img := pngBytes(t, 4, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sig.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(img)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, img, 0o600))

	loader := NewSourceLoader(2 * time.Second)
	ctx := context.Background()

	got, err := loader.Load(ctx, srv.URL+"/sig.png")
	require.NoError(t, err)
	assert.Equal(t, img, got)

	_, err = loader.Load(ctx, srv.URL+"/missing.png")
	assert.ErrorContains(t, err, "unexpected status 404")

	got, err = loader.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, img, got)

	got, err = loader.Load(ctx, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(img))
	require.NoError(t, err)
	assert.Equal(t, img, got)

	_, err = loader.Load(ctx, "  ")
	assert.ErrorIs(t, err, errEmptySource)
}

func TestLoadImageDegradesToNil(t *testing.T) {
	rec := &recorder{}
	loader := NewSourceLoader(time.Second)
	ctx := context.Background()

	assert.Nil(t, loadImage(ctx, rec, loader, "empty", ""))
	assert.Nil(t, loadImage(ctx, rec, loader, "missing", filepath.Join(t.TempDir(), "nope.png")))
	assert.Nil(t, loadImage(ctx, rec, loader, "garbage", "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("garbage"))))
	assert.Empty(t, rec.embedded)

	jpg := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegBytes(t, 10, 5))
	img := loadImage(ctx, rec, loader, "signature-site", jpg)
	require.NotNil(t, img)
	assert.Equal(t, &Image{Name: "signature-site", Width: 10, Height: 5}, img)
}

func TestDescribeSourceHidesPayload(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,…", describeSource("data:image/png;base64,AAAA"))
	assert.Equal(t, "https://example.com/a.png", describeSource("https://example.com/a.png"))
}

func TestReadFileRejectsSpecialAndOversizedFiles(t *testing.T) {
	_, err := readFile(t.TempDir())
	assert.ErrorIs(t, err, errNotRegularFile)

	if _, statErr := os.Stat("/dev/zero"); statErr == nil {
		_, err = readFile("/dev/zero")
		assert.ErrorIs(t, err, errNotRegularFile)
	}

	big := filepath.Join(t.TempDir(), "big.png")
	require.NoError(t, os.WriteFile(big, make([]byte, maxAssetSize+1), 0o600))
	_, err = readFile(big)
	assert.ErrorIs(t, err, errAssetTooLarge)
}

func TestLoadSignatureRejectsLocalPaths(t *testing.T) {
	logs := captureLogs(t)
	path := filepath.Join(t.TempDir(), "server-secret.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 8, 8), 0o600))

	rec := &recorder{}
	loader := NewSourceLoader(time.Second)

	assert.Nil(t, loadSignature(context.Background(), rec, loader, "signature-engineer", path))
	assert.Nil(t, loadSignature(context.Background(), rec, loader, "signature-site", "file://"+path))
	assert.Empty(t, rec.embedded)
	assert.Contains(t, logs.String(), "Report asset rejected")
	assert.NotContains(t, logs.String(), path)

	inline := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 8, 8))
	assert.NotNil(t, loadSignature(context.Background(), rec, loader, "signature-engineer", inline))
}

func TestRequestSignaturePathIsNotEmbedded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server-secret.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 8, 8), 0o600))

	var d MaintenanceReportData
	body, err := json.Marshal(map[string]any{"engineerSignatureUrl": path, "siteSignatureUrl": path})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &d))

	rec := &recorder{}
	require.NoError(t, NewGenerator().render(context.Background(), rec, &d))

	assert.Empty(t, rec.embedded)
	assert.Empty(t, rec.images)
	assert.Contains(t, rec.textsOnPage(2), "ENGINEER'S SIGNATURE")
}

func TestDecodeImageTrustsBytesOverDeclaredType(t *testing.T) {
	rec := &recorder{}
	mislabeled := "data:image/png;base64," + base64.StdEncoding.EncodeToString(jpegBytes(t, 12, 6))

	img := loadImage(context.Background(), rec, NewSourceLoader(time.Second), "signature-engineer", mislabeled)
	require.NotNil(t, img)
	assert.Equal(t, 12.0, img.Width)

	_, err := decodeImage([]byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"))
	assert.ErrorIs(t, err, errUnsupportedType)
	assert.ErrorContains(t, err, "image/gif")
}
