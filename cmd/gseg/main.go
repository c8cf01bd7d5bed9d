// Command gseg segments images into regions from the command line.
//
// Usage:
//
//	gseg run [options] <input>         segment a PNG/JPEG/GIF/BMP image
//	gseg merge [options] <input.seg> <label> <label>...
//	gseg info <input.seg>              describe a segmentation artifact
//
// "run" writes a recolored PNG, prints the region-size report, and can
// persist a .seg artifact that "merge" and "info" operate on later.
package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	_ "golang.org/x/image/bmp"

	"github.com/between-dimensions/imgseg"
	"github.com/between-dimensions/imgseg/gaussian"
	"github.com/between-dimensions/imgseg/segfile"
)

// VERSION is injected by buildflags.
var VERSION = "SELFBUILD"

func main() {
	app := cli.NewApp()
	app.Name = "gseg"
	app.Usage = "graph-based color image segmentation"
	app.Version = VERSION
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "segment an image and emit a recolored PNG plus the region-size report",
			ArgsUsage: "<input image>",
			Flags: []cli.Flag{
				cli.Float64Flag{
					Name:  "k",
					Value: 300,
					Usage: "region scale parameter; larger k produces larger regions",
				},
				cli.BoolFlag{
					Name:  "gaussian",
					Usage: "pre-smooth the image with a Gaussian blur",
				},
				cli.IntFlag{
					Name:  "mask",
					Value: 5,
					Usage: "Gaussian mask size (odd, >= 3)",
				},
				cli.Float64Flag{
					Name:  "sigma",
					Value: 0.8,
					Usage: "Gaussian standard deviation",
				},
				cli.StringFlag{
					Name:  "o, out",
					Usage: `recolored PNG path (default: <input>_seg.png, "-" for stdout)`,
				},
				cli.StringFlag{
					Name:  "report",
					Usage: "region-size report path (default: stdout)",
				},
				cli.StringFlag{
					Name:  "seg",
					Usage: "also persist the segmentation to this .seg artifact",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "palette seed for reproducible coloring (0 = random)",
				},
			},
			Action: runSegment,
		},
		{
			Name:      "merge",
			Usage:     "coalesce regions of a .seg artifact into one",
			ArgsUsage: "<input.seg> <label> <label>...",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "o, out",
					Usage: "output artifact path (default: rewrite input)",
				},
				cli.StringFlag{
					Name:  "png",
					Usage: "also write a recolored PNG of the merged labelling",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "palette seed for reproducible coloring (0 = random)",
				},
			},
			Action: runMerge,
		},
		{
			Name:      "info",
			Usage:     "describe a .seg artifact",
			ArgsUsage: "<input.seg>",
			Action:    runInfo,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("gseg: %+v", err)
	}
}

// openInput returns a reader for path, or stdin when path is "-".
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func runSegment(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("run: missing input image")
	}
	inputPath := c.Args().First()

	in, err := openInput(inputPath)
	if err != nil {
		return errors.Wrap(err, "run")
	}
	src, _, err := image.Decode(in)
	in.Close()
	if err != nil {
		return errors.Wrapf(err, "run: decoding %s", inputPath)
	}

	img := imgseg.FromImage(src)
	if c.Bool("gaussian") {
		img, err = gaussian.Smooth(img, c.Int("mask"), c.Float64("sigma"))
		if err != nil {
			return errors.Wrap(err, "run: smoothing")
		}
	}

	k := c.Float64("k")
	labels, err := imgseg.Segment(img, k)
	if err != nil {
		return errors.Wrap(err, "run: segmenting")
	}

	outPath := c.String("out")
	if outPath == "" {
		outPath = defaultName(inputPath, "_seg.png")
	}
	if err := writePNG(outPath, renderLabels(labels, img.W, img.H, c.Int64("seed"))); err != nil {
		return errors.Wrap(err, "run: writing PNG")
	}

	if err := writeReport(c.String("report"), labels); err != nil {
		return errors.Wrap(err, "run: writing report")
	}

	if segPath := c.String("seg"); segPath != "" {
		seg := &segfile.Segmentation{Width: img.W, Height: img.H, K: k, Labels: labels}
		if err := writeSeg(segPath, seg); err != nil {
			return errors.Wrap(err, "run: writing artifact")
		}
	}

	fmt.Fprintf(os.Stderr, "Segmented %s: %d regions (k=%g) → %s\n",
		inputPath, len(imgseg.RegionSizes(labels)), k, outPath)
	return nil
}

func runMerge(c *cli.Context) error {
	if c.NArg() < 3 {
		return errors.New("merge: need an artifact and at least two labels")
	}
	segPath := c.Args().First()

	selected := make([]int32, 0, c.NArg()-1)
	for _, arg := range c.Args().Tail() {
		v, err := strconv.ParseInt(arg, 10, 32)
		if err != nil {
			return errors.Wrapf(err, "merge: label %q", arg)
		}
		selected = append(selected, int32(v))
	}

	f, err := os.Open(segPath)
	if err != nil {
		return errors.Wrap(err, "merge")
	}
	seg, err := segfile.Read(f)
	f.Close()
	if err != nil {
		return errors.Wrapf(err, "merge: reading %s", segPath)
	}

	imgseg.Merge(seg.Labels, selected)

	outPath := c.String("out")
	if outPath == "" {
		outPath = segPath
	}
	if err := writeSeg(outPath, seg); err != nil {
		return errors.Wrap(err, "merge: writing artifact")
	}

	if pngPath := c.String("png"); pngPath != "" {
		if err := writePNG(pngPath, renderLabels(seg.Labels, seg.Width, seg.Height, c.Int64("seed"))); err != nil {
			return errors.Wrap(err, "merge: writing PNG")
		}
	}

	fmt.Fprintf(os.Stderr, "Merged %d labels → %s (%d regions)\n",
		len(selected), outPath, len(imgseg.RegionSizes(seg.Labels)))
	return nil
}

func runInfo(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("info: missing input artifact")
	}
	inputPath := c.Args().First()

	in, err := openInput(inputPath)
	if err != nil {
		return errors.Wrap(err, "info")
	}
	defer in.Close()
	seg, err := segfile.Read(in)
	if err != nil {
		return errors.Wrapf(err, "info: reading %s", inputPath)
	}

	regions := imgseg.RegionSizes(seg.Labels)
	fmt.Printf("File:       %s\n", inputPath)
	fmt.Printf("Dimensions: %d x %d\n", seg.Width, seg.Height)
	fmt.Printf("k:          %g\n", seg.K)
	fmt.Printf("Regions:    %d\n", len(regions))
	top := regions
	if len(top) > 10 {
		top = top[:10]
	}
	for _, r := range top {
		fmt.Printf("  region %-8d %d px\n", r.Label, r.Pixels)
	}
	return nil
}

// defaultName swaps inputPath's extension for the given suffix.
func defaultName(inputPath, suffix string) string {
	if inputPath == "-" {
		return "output" + suffix
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return base + suffix
}

// writePNG writes img to path, or stdout when path is "-".
func writePNG(path string, img image.Image) error {
	if path == "-" {
		return png.Encode(os.Stdout, img)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	return out.Close()
}

// writeReport writes the region-size report to path, or stdout when
// path is empty or "-".
func writeReport(path string, labels []int32) error {
	if path == "" || path == "-" {
		return imgseg.WriteReport(os.Stdout, labels)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := imgseg.WriteReport(out, labels); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	return out.Close()
}

func writeSeg(path string, seg *segfile.Segmentation) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := segfile.Write(out, seg); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	return out.Close()
}
