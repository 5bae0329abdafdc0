package ascii

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/colthorp/lolfetch-go/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCell(t *testing.T) {
	tests := []struct {
		name string
		in   color.NRGBA
		want rune
	}{
		{"white", color.NRGBA{255, 255, 255, 255}, '@'},
		{"black", color.NRGBA{0, 0, 0, 255}, '"'},
		{"mid gray", color.NRGBA{128, 128, 128, 255}, '+'},
		{"transparent", color.NRGBA{255, 255, 255, 127}, ' '},
		{"alpha threshold", color.NRGBA{255, 255, 255, 128}, '@'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cell(tt.in).Ch)
		})
	}

	c := cell(color.NRGBA{10, 20, 30, 255})
	require.NotNil(t, c.FG)
	assert.Equal(t, uint8(20), c.FG.G)
	assert.Nil(t, cell(color.NRGBA{}).FG)
}

func TestRenderDimensions(t *testing.T) {
	art := Render(uniform(64, 64, color.NRGBA{255, 255, 255, 255}), 40, 20)
	require.Len(t, art, 20)
	for _, line := range art {
		require.Equal(t, 40, line.Width())
		for _, c := range line {
			assert.Equal(t, '@', c.Ch)
		}
	}

	assert.Nil(t, Render(uniform(1, 1, color.NRGBA{}), 0, 10))
}

func TestRenderBrightensDarkPixels(t *testing.T) {
	// Black is brightened to 45 before sampling
	art := Render(uniform(8, 8, color.NRGBA{0, 0, 0, 255}), 4, 4)
	assert.Equal(t, ',', art[0][0].Ch)
}

func TestRenderTransparent(t *testing.T) {
	art := Render(uniform(8, 8, color.NRGBA{}), 4, 2)
	assert.Equal(t, "    ", art[1].String())
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, uniform(16, 16, color.NRGBA{255, 255, 255, 255})), 0644))

	art, err := FromFile(path, 10, 5)
	require.NoError(t, err)
	assert.Len(t, art, 5)

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.png"), 10, 5)
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))
	_, err = FromFile(bad, 10, 5)
	assert.Error(t, err)
}

func TestFromURL(t *testing.T) {
	data := encodePNG(t, uniform(16, 16, color.NRGBA{255, 255, 255, 255}))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/icon.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	fetcher := api.NewStaticData(srv.URL)
	art, err := FromURL(context.Background(), fetcher, srv.URL+"/icon.png", 6, 3)
	require.NoError(t, err)
	assert.Len(t, art, 3)
	assert.Equal(t, "@@@@@@", art[0].String())

	_, err = FromURL(context.Background(), fetcher, srv.URL+"/missing.png", 6, 3)
	assert.ErrorIs(t, err, api.ErrNotFound)
}
