package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/fraster-cli/internal/dither"
	"github.com/AnyUserName/fraster-cli/internal/hasher"
	"github.com/AnyUserName/fraster-cli/internal/raster"
	"github.com/AnyUserName/fraster-cli/internal/writer"
)

var (
	writeOut        string
	writeBitDepth   int
	writeLevel      int
	writeStrategy   string
	writeDither     bool
	writeDitherSeed string
	writeColorspace string
	writeChannels   int
	writeResize     []int
)

var writeCmd = &cobra.Command{
	Use:   "write <input-image>",
	Short: "Re-encode an image as PNG through the float pipeline",
	Long: `Decodes an image (png, jpg, gif, bmp, tiff, webp), converts it to a
floating-point buffer and encodes it back to PNG with the configured bit
depth, dithering, compression and metadata.`,
	Args: cobra.ExactArgs(1),
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().StringVarP(&writeOut, "out", "o", "", "output path (default: input name with .png)")
	writeCmd.Flags().IntVar(&writeBitDepth, "bit-depth", 8, "output bit depth: 8 or 16")
	writeCmd.Flags().IntVar(&writeLevel, "level", 6, "deflate effort 0-9")
	writeCmd.Flags().StringVar(&writeStrategy, "compression", "default",
		"deflate strategy: default, filtered, huffman, rle, fixed")
	writeCmd.Flags().BoolVar(&writeDither, "dither", true, "dither before 8-bit quantization")
	writeCmd.Flags().StringVar(&writeDitherSeed, "dither-seed", "", "named dither seed (empty = default)")
	writeCmd.Flags().StringVar(&writeColorspace, "colorspace", "sRGB",
		"colorspace label for gamma/profile metadata (unknown = no color info)")
	writeCmd.Flags().IntVar(&writeChannels, "channels", 0,
		"output channels 1-4 (0 = keep input's 4)")
	writeCmd.Flags().IntSliceVar(&writeResize, "resize", nil, "resize to W,H before encoding")
	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	input := args[0]
	start := time.Now()

	if writeBitDepth != 8 && writeBitDepth != 16 {
		return fmt.Errorf("bit depth must be 8 or 16, got %d", writeBitDepth)
	}
	strategy, ok := writer.ParseStrategy(writeStrategy)
	if !ok {
		return fmt.Errorf("unknown compression strategy %q", writeStrategy)
	}

	out := writeOut
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
	}

	// imaging.Open applies EXIF orientation on the way in.
	img, err := imaging.Open(input, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	if len(writeResize) == 2 {
		img = imaging.Resize(img, writeResize[0], writeResize[1], imaging.Lanczos)
	} else if writeResize != nil {
		return fmt.Errorf("--resize wants W,H, got %v", writeResize)
	}

	region := raster.FromImage(img)
	logVerbose("input:  %s (%dx%d)", input, region.Width(), region.Height())

	dstChannels := writeChannels
	if dstChannels == 0 {
		dstChannels = region.Channels
	}

	opts := writer.DefaultOptions()
	opts.Depth = writer.Depth(writeBitDepth)
	opts.CompressionLevel = writeLevel
	opts.Strategy = strategy
	opts.Dither = writeDither
	opts.Colorspace = writeColorspace
	if writeDitherSeed != "" {
		opts.DitherSeed = dither.SeedFromString(writeDitherSeed)
	}
	// The region was built for this call; let the ditherer consume it.
	opts.DitherInPlace = true

	if err := writer.Encode(out, region, raster.Full(region.Channels), dstChannels, opts); err != nil {
		return fmt.Errorf("encode %s: %w", out, err)
	}

	f, err := os.Open(out)
	if err != nil {
		return fmt.Errorf("reopen %s: %w", out, err)
	}
	defer f.Close()
	hash, err := hasher.ContentHashReader(f, 16)
	if err != nil {
		return fmt.Errorf("hash %s: %w", out, err)
	}
	info, _ := f.Stat()
	var size int64
	if info != nil {
		size = info.Size()
	}

	fmt.Printf("%s  %dx%d  %d-bit  %s  %s  %s\n",
		out, region.Width(), region.Height(), writeBitDepth,
		formatBytes(size), hash, time.Since(start).Round(time.Millisecond))
	return nil
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
