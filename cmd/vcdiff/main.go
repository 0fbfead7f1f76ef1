// Command vcdiff applies and inspects VCDIFF (RFC 3284) deltas.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via
// "go install".
var Version string

var rootCmd = &cobra.Command{
	Use:   "vcdiff",
	Short: "Apply and inspect VCDIFF (RFC 3284) binary deltas.",
	Run: func(cmd *cobra.Command, args []string) {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Print("vcdiff ")
			if Version != "" {
				fmt.Println(Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Println(info.Main.Version)
			} else {
				fmt.Println("(unknown version)")
			}
			return
		}
		fmt.Print(cmd.UsageString())
	},
}

func init() {
	rootCmd.Flags().Bool("version", false, "print the version and exit")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(inspectCmd)
}

func configureLogging(cmd *cobra.Command) {
	log.SetOutput(os.Stderr)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
