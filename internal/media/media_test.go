package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// TestIsImage 测试魔术字节检测
func TestIsImage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"png", encodePNG(t, 2, 2), true},
		{"jpeg header", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}, true},
		{"webp header", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), true},
		{"gif header", []byte("GIF89a\x01\x00"), true},
		{"svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), true},
		{"svg with prolog", []byte("<?xml version=\"1.0\"?>\n<svg></svg>"), true},
		{"html", []byte("<html><body>nope</body></html>"), false},
		{"short", []byte{0x89}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsImage(tt.data); got != tt.want {
				t.Errorf("IsImage() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestProbe 测试尺寸读取
func TestProbe(t *testing.T) {
	info, err := Probe(encodePNG(t, 7, 5))
	if err != nil {
		t.Fatalf("Probe(png) error = %v", err)
	}
	if info.Format != "png" || info.Width != 7 || info.Height != 5 {
		t.Errorf("Probe(png) = %+v", info)
	}

	var gbuf bytes.Buffer
	pal := image.NewPaletted(image.Rect(0, 0, 3, 9), []color.Color{color.Black, color.White})
	if err := gif.Encode(&gbuf, pal, nil); err != nil {
		t.Fatal(err)
	}
	info, err = Probe(gbuf.Bytes())
	if err != nil || info.Format != "gif" || info.Height != 9 {
		t.Errorf("Probe(gif) = %+v, %v", info, err)
	}

	info, err = Probe([]byte("<svg></svg>"))
	if err != nil || info.Format != "svg" {
		t.Errorf("Probe(svg) = %+v, %v", info, err)
	}

	if _, err := Probe([]byte("plain text")); !errors.Is(err, ErrNotImage) {
		t.Errorf("Probe(text) error = %v, want ErrNotImage", err)
	}
	if _, err := Probe([]byte("RIFF\x00\x00\x00\x00WEBPjunk")); err == nil {
		t.Error("Probe(truncated webp) should fail to decode")
	}
}

// TestFetch 测试下载与校验
func TestFetch(t *testing.T) {
	pngData := encodePNG(t, 2, 2)
	mux := http.NewServeMux()
	mux.HandleFunc("/ok.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngData)
	})
	mux.HandleFunc("/text", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	data, info, err := Fetch(context.Background(), srv.URL+"/ok.png", srv.Client())
	if err != nil || info.Format != "png" || !bytes.Equal(data, pngData) {
		t.Errorf("Fetch(ok) = %+v, %v", info, err)
	}
	if _, _, err := Fetch(context.Background(), srv.URL+"/text", srv.Client()); !errors.Is(err, ErrNotImage) {
		t.Errorf("Fetch(text) error = %v", err)
	}
	if _, _, err := Fetch(context.Background(), srv.URL+"/missing", srv.Client()); err == nil {
		t.Error("Fetch(404) should fail")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, _, err := Fetch(ctx, srv.URL+"/slow", srv.Client()); err == nil {
		t.Error("Fetch(slow) should fail on context deadline")
	}
}
