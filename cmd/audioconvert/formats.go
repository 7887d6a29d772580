package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	audioconvert "github.com/mkarjalainen/go-audio-convert"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported containers and codec capabilities",
	Args:  cobra.NoArgs,
	Run:   runFormats,
}

func runFormats(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CONTAINER\tCODEC\tEXTENSIONS\tENCODE\tLOSSLESS\tBIT DEPTHS\tMAX RATE\tMAX CH")
	for _, info := range audioconvert.Codecs() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			info.Container,
			info.Name,
			strings.Join(info.Extensions, ","),
			yesNo(info.CanEncode),
			yesNo(info.Lossless),
			joinInts(info.BitDepths),
			info.MaxSampleRate,
			info.MaxChannels,
		)
	}
	w.Flush()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}
