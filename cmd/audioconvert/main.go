// Command audioconvert converts audio files between formats using the
// conversion pipeline.
//
// Usage:
//
//	audioconvert convert input.flac output.wav --rate 48000 --bits 16 --channels 2
//	audioconvert convert in.wav out.wav --normalize --fade-in 0.5 --fade-out 2
//	audioconvert formats
//
// The input container is detected from the file extension; the output
// container from the output file's extension unless --container is given.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
