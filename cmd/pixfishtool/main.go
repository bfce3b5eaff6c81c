// Command pixfishtool exercises the pixfish conversion engine from the
// command line: listing the registry, converting raw pixel buffers,
// verifying that a conversion chain round-trips within tolerance, and
// rendering a named color as a pixel-format swatch.
//
// Usage:
//
//	pixfishtool formats                       List registered types/models/spaces/formats
//	pixfishtool convert <from> <to> <n>        Convert n pixels, stdin -> stdout
//	pixfishtool convert -image <path> <to>     Decode an image (WebP, PNG, ...) and convert it
//	pixfishtool verify <from> <to>             Round-trip a format pair and report error
//	pixfishtool verify -image <path> <from> <to>  Round-trip using pixels drawn from an image
//	pixfishtool swatch <color> <format> <out>  Render a named color as a PNG swatch
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"strconv"

	"golang.org/x/image/colornames"
	_ "golang.org/x/image/webp" // registers "webp" with image.Decode, for convert/verify's -image flag

	"github.com/pixfish/pixfish"
	"github.com/pixfish/pixfish/internal/registry"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	pixfish.Init()
	defer pixfish.Exit()

	var err error
	switch os.Args[1] {
	case "formats":
		err = runFormats(os.Args[2:])
	case "convert":
		err = runConvert(os.Args[2:])
	case "verify":
		err = runVerify(os.Args[2:])
	case "swatch":
		err = runSwatch(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "pixfishtool: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "pixfishtool: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  pixfishtool formats                            List registered types/models/spaces/formats
  pixfishtool convert <from> <to> <n>            Convert n pixels, stdin -> stdout
  pixfishtool convert -image <path> <to>         Decode an image and convert it
  pixfishtool verify <from> <to>                 Round-trip a format pair and report error
  pixfishtool verify -image <path> <from> <to>   Round-trip using pixels drawn from an image
  pixfishtool swatch <color> <format> <out>      Render a named color as a PNG swatch

<from>/<to> are format-name encodings, e.g. "RGBA float" or "R'G'B'A u8".
-image accepts any format image.Decode supports, including WebP.
BABL_TOLERANCE sets the max per-channel error "verify" accepts (default 1e-3).
`)
}

// --- formats ---

func runFormats(args []string) error {
	fmt.Println("Types:")
	for _, n := range pixfish.DumpTypes() {
		fmt.Println("  " + n)
	}
	fmt.Println("Models:")
	for _, n := range pixfish.DumpModels() {
		fmt.Println("  " + n)
	}
	fmt.Println("Spaces:")
	for _, n := range pixfish.DumpSpaces() {
		fmt.Println("  " + n)
	}
	fmt.Println("Formats (interned so far):")
	for _, n := range pixfish.DumpFormats() {
		fmt.Println("  " + n)
	}
	return nil
}

// --- convert ---

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	imagePath := fs.String("image", "", "decode a WebP/PNG/etc image instead of reading raw pixels from stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()

	if *imagePath != "" {
		if len(rest) < 1 {
			return fmt.Errorf("convert: usage: pixfishtool convert -image <path> <to>")
		}
		return convertImage(*imagePath, rest[0])
	}

	if len(rest) < 3 {
		return fmt.Errorf("convert: usage: pixfishtool convert <from> <to> <n>")
	}
	fromH, err := pixfish.Format(rest[0])
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	toH, err := pixfish.Format(rest[1])
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	n, err := strconv.Atoi(rest[2])
	if err != nil || n <= 0 {
		return fmt.Errorf("convert: invalid pixel count %q", rest[2])
	}

	fish, err := pixfish.GetFish(fromH, toH)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	src := make([]byte, pixfish.FormatBytesPerPixel(fromH)*n)
	if _, err := io.ReadFull(os.Stdin, src); err != nil {
		return fmt.Errorf("convert: reading stdin: %w", err)
	}

	dst := make([]byte, pixfish.FormatBytesPerPixel(toH)*n)
	if _, err := pixfish.Process(fish, src, dst, n); err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	_, err = os.Stdout.Write(dst)
	return err
}

// convertImage decodes the image at path (WebP, PNG, or anything else
// registered with image.Decode -- the blank import of
// golang.org/x/image/webp above adds WebP to that set), converts every
// pixel from "R'G'B'A u8" to the named destination format, and writes the
// converted bytes to stdout preceded by a "width height\n" header so the
// caller can reinterpret the raw stream.
func convertImage(path, to string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("convert: decoding %s: %w", path, err)
	}

	toH, err := pixfish.Format(to)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	fromH, err := pixfish.Format("R'G'B'A u8")
	if err != nil {
		return err
	}
	fish, err := pixfish.GetFish(fromH, toH)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	bounds := img.Bounds()
	n := bounds.Dx() * bounds.Dy()
	src := make([]byte, 4*n)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			src[i*4+0] = byte(r >> 8)
			src[i*4+1] = byte(g >> 8)
			src[i*4+2] = byte(b >> 8)
			src[i*4+3] = byte(a >> 8)
			i++
		}
	}

	dst := make([]byte, pixfish.FormatBytesPerPixel(toH)*n)
	if _, err := pixfish.Process(fish, src, dst, n); err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	fmt.Fprintf(os.Stderr, "convert: decoded %s as %s, %dx%d\n", path, format, bounds.Dx(), bounds.Dy())
	fmt.Fprintf(os.Stdout, "%d %d\n", bounds.Dx(), bounds.Dy())
	_, err = os.Stdout.Write(dst)
	return err
}

// --- verify ---

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	imagePath := fs.String("image", "", "draw probe pixels from a decoded WebP/PNG/etc image instead of a synthetic pattern")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()

	if len(rest) < 2 {
		return fmt.Errorf("verify: usage: pixfishtool verify [-image <path>] <from> <to>")
	}
	tolerance := 1e-3
	if s := os.Getenv("BABL_TOLERANCE"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			tolerance = v
		}
	}

	fromH, err := pixfish.Format(rest[0])
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	toH, err := pixfish.Format(rest[1])
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	fwd, err := pixfish.GetFish(fromH, toH)
	if err != nil {
		fmt.Printf("%s -> %s: NO PATH (%v)\n", rest[0], rest[1], err)
		return nil
	}
	back, err := pixfish.GetFish(toH, fromH)
	if err != nil {
		fmt.Printf("%s <- %s: NO PATH (%v)\n", rest[1], rest[0], err)
		return nil
	}

	fmt.Printf("Chain %s -> %s:\n", rest[0], rest[1])
	printChain(fwd)
	fmt.Printf("Chain %s -> %s:\n", rest[1], rest[0])
	printChain(back)

	doubleFmt, err := pixfish.Format("RGBA double")
	if err != nil {
		return err
	}
	toRGBA, err := pixfish.GetFish(fromH, doubleFmt)
	if err != nil {
		return err
	}

	probes := 16
	var src []byte
	if *imagePath != "" {
		src, probes, err = probePixelsFromImage(*imagePath, fromH, probes)
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
	} else {
		src = make([]byte, pixfish.FormatBytesPerPixel(fromH)*probes)
		for i := range src {
			src[i] = byte((i * 37) % 256)
		}
	}

	mid := make([]byte, pixfish.FormatBytesPerPixel(toH)*probes)
	if _, err := pixfish.Process(fwd, src, mid, probes); err != nil {
		return fmt.Errorf("verify: forward: %w", err)
	}
	roundTripped := make([]byte, pixfish.FormatBytesPerPixel(fromH)*probes)
	if _, err := pixfish.Process(back, mid, roundTripped, probes); err != nil {
		return fmt.Errorf("verify: backward: %w", err)
	}

	origRGBA := make([]byte, pixfish.FormatBytesPerPixel(doubleFmt)*probes)
	if _, err := pixfish.Process(toRGBA, src, origRGBA, probes); err != nil {
		return err
	}
	rtRGBA := make([]byte, pixfish.FormatBytesPerPixel(doubleFmt)*probes)
	rtToRGBA, err := pixfish.GetFish(fromH, doubleFmt)
	if err != nil {
		return err
	}
	if _, err := pixfish.Process(rtToRGBA, roundTripped, rtRGBA, probes); err != nil {
		return err
	}

	maxErr := maxAbsDiff(decodeDoubles(origRGBA), decodeDoubles(rtRGBA))
	verdict := "PASS"
	if maxErr > tolerance {
		verdict = "FAIL"
	}
	fmt.Printf("Round-trip max per-channel error: %.6g (tolerance %.6g) -> %s\n", maxErr, tolerance, verdict)
	return nil
}

// probePixelsFromImage decodes path, takes up to the first max pixels in
// raster order as "R'G'B'A u8", and converts them to fromH so verify can
// exercise round-tripping on real image data instead of a synthetic
// pattern. Returns the actual number of probe pixels obtained, which may
// be less than max for small images.
func probePixelsFromImage(path string, fromH registry.Handle, max int) ([]byte, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
	}

	bounds := img.Bounds()
	n := bounds.Dx() * bounds.Dy()
	if n > max {
		n = max
	}
	if n == 0 {
		return nil, 0, fmt.Errorf("%s decoded to zero pixels", path)
	}

	u8Fmt, err := pixfish.Format("R'G'B'A u8")
	if err != nil {
		return nil, 0, err
	}
	u8 := make([]byte, 4*n)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y && i < n; y++ {
		for x := bounds.Min.X; x < bounds.Max.X && i < n; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			u8[i*4+0] = byte(r >> 8)
			u8[i*4+1] = byte(g >> 8)
			u8[i*4+2] = byte(b >> 8)
			u8[i*4+3] = byte(a >> 8)
			i++
		}
	}

	if fromH == u8Fmt {
		return u8, n, nil
	}
	toFrom, err := pixfish.GetFish(u8Fmt, fromH)
	if err != nil {
		return nil, 0, err
	}
	out := make([]byte, pixfish.FormatBytesPerPixel(fromH)*n)
	if _, err := pixfish.Process(toFrom, u8, out, n); err != nil {
		return nil, 0, err
	}
	return out, n, nil
}

func printChain(f *pixfish.Fish) {
	if len(f.Chain.Ops) == 0 {
		fmt.Println("  (identity / memcpy)")
		return
	}
	for _, op := range f.Chain.Ops {
		fmt.Println("  " + op.Name)
	}
}

func decodeDoubles(b []byte) []float64 {
	out := make([]float64, len(b)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8 : i*8+8]))
	}
	return out
}

func maxAbsDiff(a, b []float64) float64 {
	m := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > m {
			m = d
		}
	}
	return m
}

// --- swatch ---

func runSwatch(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("swatch: usage: pixfishtool swatch <color> <format> <out.png>")
	}
	c, ok := colornames.Map[args[0]]
	if !ok {
		return fmt.Errorf("swatch: unknown color name %q (see golang.org/x/image/colornames)", args[0])
	}

	u8Fmt, err := pixfish.Format("R'G'B'A u8")
	if err != nil {
		return err
	}
	targetFmt, err := pixfish.Format(args[1])
	if err != nil {
		return fmt.Errorf("swatch: %w", err)
	}

	fish, err := pixfish.GetFish(u8Fmt, targetFmt)
	if err != nil {
		return fmt.Errorf("swatch: %w", err)
	}
	back, err := pixfish.GetFish(targetFmt, u8Fmt)
	if err != nil {
		return fmt.Errorf("swatch: %w", err)
	}

	src := []byte{c.R, c.G, c.B, c.A}
	mid := make([]byte, pixfish.FormatBytesPerPixel(targetFmt))
	if _, err := pixfish.Process(fish, src, mid, 1); err != nil {
		return fmt.Errorf("swatch: %w", err)
	}
	back4 := make([]byte, 4)
	if _, err := pixfish.Process(back, mid, back4, 1); err != nil {
		return fmt.Errorf("swatch: %w", err)
	}

	const size = 64
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	swatchColor := color.RGBA{R: back4[0], G: back4[1], B: back4[2], A: back4[3]}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, swatchColor)
		}
	}

	out, err := os.Create(args[2])
	if err != nil {
		return err
	}
	defer out.Close()

	fmt.Printf("swatch %q through %q: round-tripped RGBA u8 = %v\n", args[0], args[1], back4)
	return png.Encode(out, img)
}
