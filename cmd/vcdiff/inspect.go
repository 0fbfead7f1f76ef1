package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ugorji/go/codec"

	"github.com/ably/vcdiff-go"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] delta_file",
	Short: "print the header and per-window layout of a delta.",
	Long: `Walk a delta's framing without applying it, printing the stream
header and the source, target and section lengths of every window. No
dictionary is needed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		delta, err := readInput(args[0])
		if err != nil {
			log.Fatal(err)
		}
		info, err := vcdiff.Inspect(delta)
		if err != nil {
			log.Fatal(err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			var h codec.JsonHandle
			h.Indent = 2
			if err := codec.NewEncoder(os.Stdout, &h).Encode(info); err != nil {
				log.Fatal(err)
			}
			fmt.Println()
			return
		}
		printInfo(info, len(delta))
	},
}

func printInfo(info *vcdiff.DeltaInfo, deltaSize int) {
	fmt.Printf("version: 0x%02x\n", info.Header.Version)
	fmt.Printf("checksums allowed: %v\n", info.Header.ChecksumsAllowed)
	fmt.Printf("custom code table: %v\n", info.Header.CustomCodeTable)
	if len(info.Header.AppHeader) > 0 {
		fmt.Printf("application header: %d bytes\n", len(info.Header.AppHeader))
	}
	fmt.Printf("delta size: %d bytes, %d windows\n", deltaSize, len(info.Windows))

	var target uint64
	for i, w := range info.Windows {
		source := "none"
		switch {
		case w.SourceFromDictionary:
			source = fmt.Sprintf("dictionary[%d:%d]", w.SourcePosition, w.SourcePosition+w.SourceLength)
		case w.SourceFromTarget:
			source = fmt.Sprintf("target[%d:%d]", w.SourcePosition, w.SourcePosition+w.SourceLength)
		}
		checksum := ""
		if w.HasChecksum {
			checksum = fmt.Sprintf(" adler32=%08x", w.Checksum)
		}
		fmt.Printf("window %d: source %s, target %d bytes (data %d, instructions %d, addresses %d)%s\n",
			i, source, w.TargetLength, w.DataLength, w.InstructionsLength, w.AddressesLength, checksum)
		target += uint64(w.TargetLength)
	}
	fmt.Printf("total target: %d bytes\n", target)
}

func init() {
	inspectCmd.Flags().Bool("json", false, "emit window metadata as JSON")
}
