package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// binaryPath holds the path to the compiled pixfishtool binary. Set in TestMain.
var binaryPath string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "pixfishtool-test-bin-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmp)

	binaryPath = filepath.Join(tmp, "pixfishtool")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = rootDir()
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		binaryPath = ""
		os.Exit(m.Run())
	}

	os.Exit(m.Run())
}

func rootDir() string {
	dir, err := filepath.Abs(".")
	if err != nil {
		panic(err)
	}
	return dir
}

func skipIfNoBinary(t *testing.T) {
	t.Helper()
	if binaryPath == "" {
		t.Skip("pixfishtool binary not built; skipping")
	}
}

func runTool(t *testing.T, stdin []byte, args ...string) (stdout, stderr []byte, err error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

func createTestPNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 64), G: uint8(y * 64), B: 100, A: 255})
		}
	}
	path := filepath.Join(dir, "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test PNG: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("encoding test PNG: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing test PNG: %v", err)
	}
	return path
}

func TestFormats_ListsStandardCatalog(t *testing.T) {
	skipIfNoBinary(t)
	stdout, stderr, err := runTool(t, nil, "formats")
	if err != nil {
		t.Fatalf("formats failed: %v\nstderr: %s", err, stderr)
	}
	out := string(stdout)
	for _, want := range []string{"Types:", "Models:", "Spaces:", "Formats"} {
		if !strings.Contains(out, want) {
			t.Errorf("formats output missing section %q:\n%s", want, out)
		}
	}
}

func TestConvert_RawBufferU8ToDouble(t *testing.T) {
	skipIfNoBinary(t)
	src := []byte{0, 64, 128, 255}
	stdout, stderr, err := runTool(t, src, "convert", "R'G'B'A u8", "RGBA double", "1")
	if err != nil {
		t.Fatalf("convert failed: %v\nstderr: %s", err, stderr)
	}
	if len(stdout) != 4*8 {
		t.Fatalf("convert output length = %d, want 32 bytes (4 float64 samples)", len(stdout))
	}
	a := math.Float64frombits(binary.LittleEndian.Uint64(stdout[24:32]))
	if math.Abs(a-1.0) > 1e-9 {
		t.Errorf("alpha sample = %g, want 1.0 for an input alpha of 255", a)
	}
}

func TestConvert_UnknownFormatErrors(t *testing.T) {
	skipIfNoBinary(t)
	_, stderr, err := runTool(t, []byte{0, 0, 0, 0}, "convert", "not a format", "RGBA double", "1")
	if err == nil {
		t.Fatalf("expected an error for an unknown format name")
	}
	if !strings.Contains(string(stderr), "convert:") {
		t.Errorf("stderr missing convert: prefix: %s", stderr)
	}
}

func TestConvert_ImageFlagDecodesPNG(t *testing.T) {
	skipIfNoBinary(t)
	dir := t.TempDir()
	pngPath := createTestPNG(t, dir)

	stdout, stderr, err := runTool(t, nil, "convert", "-image", pngPath, "R'G'B'A u8")
	if err != nil {
		t.Fatalf("convert -image failed: %v\nstderr: %s", err, stderr)
	}
	lines := bytes.SplitN(stdout, []byte("\n"), 2)
	if len(lines) != 2 {
		t.Fatalf("expected a header line followed by raw pixel bytes")
	}
	var w, h int
	if _, err := fmt.Sscanf(string(lines[0]), "%d %d", &w, &h); err != nil {
		t.Fatalf("parsing header %q: %v", lines[0], err)
	}
	if w != 4 || h != 4 {
		t.Errorf("decoded size = %dx%d, want 4x4", w, h)
	}
	if len(lines[1]) != 4*4*4 {
		t.Errorf("pixel payload length = %d, want %d", len(lines[1]), 4*4*4)
	}
}

func TestVerify_IdentityFormatPairIsExact(t *testing.T) {
	skipIfNoBinary(t)
	stdout, stderr, err := runTool(t, nil, "verify", "RGBA double", "RGBA double")
	if err != nil {
		t.Fatalf("verify failed: %v\nstderr: %s", err, stderr)
	}
	if !strings.Contains(string(stdout), "Round-trip max per-channel error") {
		t.Errorf("verify output missing error summary: %s", stdout)
	}
	if !strings.Contains(string(stdout), "Round-trip max per-channel error: 0 (") {
		t.Errorf("identity round trip reported a nonzero error: %s", stdout)
	}
}

func TestSwatch_UnknownColorErrors(t *testing.T) {
	skipIfNoBinary(t)
	dir := t.TempDir()
	_, stderr, err := runTool(t, nil, "swatch", "not-a-color", "RGBA double", filepath.Join(dir, "out.png"))
	if err == nil {
		t.Fatalf("expected an error for an unknown color name")
	}
	if !strings.Contains(string(stderr), "unknown color name") {
		t.Errorf("stderr missing unknown-color message: %s", stderr)
	}
}

func TestSwatch_WritesPNG(t *testing.T) {
	skipIfNoBinary(t)
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.png")
	_, stderr, err := runTool(t, nil, "swatch", "cornflowerblue", "R'G'B' u8", outPath)
	if err != nil {
		t.Fatalf("swatch failed: %v\nstderr: %s", err, stderr)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading swatch output: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("swatch output file is empty")
	}
}
