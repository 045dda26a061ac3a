package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "fraster",
	Short: "Float-raster to PNG transcoder",
	Long: `fraster — writes floating-point image buffers as PNG with control
over bit depth, dithering, deflate effort/strategy, and the gamma,
resolution and offset metadata the stock encoders drop.

The write command also accepts ordinary image files, routing them
through the same float pipeline.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"fraster %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[fraster] "+format+"\n", args...)
	}
}
