package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePNG(t *testing.T, dir, name string, c color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// uncompressed 24-bit truecolor TGA, bottom-left origin, with a version 2 footer
func tgaBytes() []byte {
	header := []byte{0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 0, 1, 0, 24, 0}
	pixels := []byte{0, 0, 255, 255, 0, 0} // BGR: red, blue
	footer := append(make([]byte, 8), []byte("TRUEVISION-XFILE.\x00")...)
	out := append(header, pixels...)
	return append(out, footer...)
}

func waitDone(t *testing.T, tex *Texture) {
	t.Helper()
	select {
	case <-tex.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("texture %s never finished loading", tex.Name)
	}
}

func TestDecodePNG(t *testing.T) {
	path := writePNG(t, t.TempDir(), "metal.png", color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	img, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if img.Rect.Dx() != 4 || img.Rect.Dy() != 4 {
		t.Errorf("size = %v", img.Rect)
	}
	if got := img.NRGBAAt(1, 1); got.R != 200 || got.G != 100 || got.B != 50 {
		t.Errorf("pixel = %v", got)
	}
}

func TestDecodeTGA(t *testing.T) {
	img, format, err := Decode(tgaBytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if format != "tga" {
		t.Errorf("format = %q, want tga", format)
	}
	if img.Rect.Dx() != 2 || img.Rect.Dy() != 1 {
		t.Fatalf("size = %v", img.Rect)
	}
	if got := img.NRGBAAt(0, 0); got.R != 255 || got.B != 0 {
		t.Errorf("first pixel = %v, want red", got)
	}
}

func TestDecodeUnsupported(t *testing.T) {
	_, _, err := Decode([]byte("not an image at all"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestAverageColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{B: 255, A: 0})
	avg := AverageColor(img)
	if avg[0] != 1 || avg[2] != 0 {
		t.Errorf("AverageColor = %v, transparent pixel should not contribute", avg)
	}
	if AverageColor(image.NewNRGBA(image.Rect(0, 0, 1, 1))) != [3]float32{1, 1, 1} {
		t.Error("fully transparent image should average to white")
	}
}

func TestLoaderLoadsAsync(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "overlay.png", color.NRGBA{G: 255, A: 255})

	l := NewLoader(WithBaseDir(dir), WithWorkers(1))
	defer l.Close()

	tex := l.Load("overlay.png")
	waitDone(t, tex)
	if !tex.Ready() {
		t.Fatalf("texture not ready: %v", tex.Err())
	}
	img, version := tex.Image()
	if img == nil || version != 1 {
		t.Errorf("Image() = %v, version %d", img != nil, version)
	}
	if avg := tex.Average(); avg[1] != 1 {
		t.Errorf("Average() = %v, want green", avg)
	}
}

func TestLoaderMissingFileDegradesSilently(t *testing.T) {
	l := NewLoader(WithBaseDir(t.TempDir()))
	defer l.Close()

	tex := l.Load("brushed-metal.jpg")
	waitDone(t, tex)
	if tex.Ready() {
		t.Error("missing texture reported ready")
	}
	if tex.Err() == nil {
		t.Error("missing texture has no error")
	}
	if tex.Average() != [3]float32{1, 1, 1} {
		t.Errorf("unloaded texture average = %v, want white", tex.Average())
	}
}

func TestLoaderClosed(t *testing.T) {
	l := NewLoader()
	l.Close()
	l.Close()
	tex := l.Load("anything.png")
	waitDone(t, tex)
	if !errors.Is(tex.Err(), ErrLoaderClosed) {
		t.Errorf("Err() = %v, want ErrLoaderClosed", tex.Err())
	}
}

func TestTextureDispose(t *testing.T) {
	tex := FromImage("solid", image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	released := false
	tex.OnDispose(func() { released = true })
	tex.Dispose()
	if !released || !tex.Disposed() || tex.Ready() {
		t.Errorf("after Dispose: released=%v disposed=%v ready=%v", released, tex.Disposed(), tex.Ready())
	}
	tex.SetImage(image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	if tex.Ready() {
		t.Error("SetImage after Dispose restored pixels")
	}
}

func TestLoaderCloseDoesNotWaitForDecode(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	l := NewLoader(WithWorkers(1)).(*loader)
	l.decode = func(string) (*image.NRGBA, error) {
		close(started)
		<-release
		return image.NewNRGBA(image.Rect(0, 0, 2, 2)), nil
	}

	tex := l.Load("slow.png")
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("decode never started")
	}

	tex.Dispose()
	closed := make(chan struct{})
	go func() {
		l.Close()
		l.Wait()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(time.Second):
		close(release)
		t.Fatal("Close blocked on a running decode")
	}

	close(release)
	time.Sleep(20 * time.Millisecond)
	if img, _ := tex.Image(); img != nil {
		t.Error("disposed texture received pixels after Close")
	}
}
