package main

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ably/vcdiff-go"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [flags] delta_file",
	Short: "apply a delta to a dictionary and write the target bytes.",
	Long: `Apply a VCDIFF delta to a dictionary (source) file, reconstructing
the target byte sequence. Inputs compressed with gzip are decompressed
transparently, and "-" reads from stdin or writes to stdout.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		sourcePath, _ := cmd.Flags().GetString("source")
		outPath, _ := cmd.Flags().GetString("output")
		maxTarget, _ := cmd.Flags().GetUint64("max-target-size")

		var source []byte
		if sourcePath != "" {
			var err error
			if source, err = readInput(sourcePath); err != nil {
				log.Fatal(err)
			}
		}
		delta, err := readInput(args[0])
		if err != nil {
			log.Fatal(err)
		}

		decoder := vcdiff.NewDecoder(
			vcdiff.WithMaxTargetSize(maxTarget),
			vcdiff.WithLogger(vcdiff.NewStdLogger(), decoderLogLevel(cmd)),
		)
		start := time.Now()
		target, err := decoder.Decode(source, delta)
		if err != nil {
			log.Fatal(err)
		}
		log.Debugf("decoded %d bytes from a %d byte delta in %s", len(target), len(delta), time.Since(start))

		if err := writeOutput(outPath, target); err != nil {
			log.Fatal(err)
		}
	},
}

func decoderLogLevel(cmd *cobra.Command) vcdiff.LogLevel {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return vcdiff.LogDebug
	}
	return vcdiff.LogNone
}

func init() {
	decodeCmd.Flags().StringP("source", "s", "", "dictionary (source) file the delta was encoded against")
	decodeCmd.Flags().StringP("output", "o", "-", "output file (default stdout)")
	decodeCmd.Flags().Uint64("max-target-size", 0, "abort if the target would exceed this many bytes (0 = no limit)")
}
