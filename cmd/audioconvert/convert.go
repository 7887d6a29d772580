package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	audioconvert "github.com/mkarjalainen/go-audio-convert"
)

var (
	flagRate         int
	flagBits         int
	flagChannels     int
	flagContainer    string
	flagQuality      string
	flagNormalize    bool
	flagDither       bool
	flagNoiseShaping bool
	flagFadeIn       float64
	flagFadeOut      float64
	flagTrimStart    float64
	flagTrimEnd      float64
	flagLoudness     float64
	flagQuiet        bool
)

var rootCmd = &cobra.Command{
	Use:   "audioconvert",
	Short: "Convert audio files between formats",
	Long: `audioconvert converts audio files between containers, sample rates,
bit depths and channel counts, with optional trimming, fades,
normalization, loudness normalization and dithering.

Supported input containers: wav, flac, mp3, ogg. Output: wav.`,
}

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert one audio file",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().IntVar(&flagRate, "rate", 44100, "target sample rate in Hz")
	convertCmd.Flags().IntVar(&flagBits, "bits", 16, "target bit depth (16, 24, 32)")
	convertCmd.Flags().IntVar(&flagChannels, "channels", 2, "target channel count")
	convertCmd.Flags().StringVar(&flagContainer, "container", "", "output container (default: from output extension)")
	convertCmd.Flags().StringVar(&flagQuality, "quality", "sinc", "resample quality: linear, cubic, sinc")
	convertCmd.Flags().BoolVar(&flagNormalize, "normalize", false, "peak-normalize to 95% of full scale")
	convertCmd.Flags().BoolVar(&flagDither, "dither", false, "dither when reducing bit depth")
	convertCmd.Flags().BoolVar(&flagNoiseShaping, "noise-shaping", false, "enable noise shaping during dithering")
	convertCmd.Flags().Float64Var(&flagFadeIn, "fade-in", 0, "fade-in duration in seconds")
	convertCmd.Flags().Float64Var(&flagFadeOut, "fade-out", 0, "fade-out duration in seconds")
	convertCmd.Flags().Float64Var(&flagTrimStart, "trim-start", 0, "trim start time in seconds")
	convertCmd.Flags().Float64Var(&flagTrimEnd, "trim-end", 0, "trim end time in seconds (0 = end of clip)")
	convertCmd.Flags().Float64Var(&flagLoudness, "loudness", 0, "loudness normalization target in LUFS (0 = disabled)")
	convertCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress progress output")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(formatsCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	input, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	inputContainer, ok := audioconvert.ContainerForExtension(extension(inputPath))
	if !ok {
		return fmt.Errorf("unsupported input extension %q", extension(inputPath))
	}

	outputContainer := flagContainer
	if outputContainer == "" {
		outputContainer, ok = audioconvert.ContainerForExtension(extension(outputPath))
		if !ok {
			return fmt.Errorf("unsupported output extension %q", extension(outputPath))
		}
	}

	quality, err := parseQuality(flagQuality)
	if err != nil {
		return err
	}

	options := audioconvert.ConversionOptions{
		Format: audioconvert.AudioFormat{
			Container:  outputContainer,
			SampleRate: flagRate,
			BitDepth:   flagBits,
			Channels:   flagChannels,
		},
		Normalize:       flagNormalize,
		Dither:          flagDither,
		NoiseShaping:    flagNoiseShaping,
		FadeIn:          flagFadeIn,
		FadeOut:         flagFadeOut,
		ResampleQuality: quality,
	}
	if flagTrimStart > 0 || flagTrimEnd > 0 {
		options.Trim = &audioconvert.TrimRange{Start: flagTrimStart, End: flagTrimEnd}
	}
	if flagLoudness != 0 {
		options.NormalizeLoudness = true
		options.TargetLoudness = flagLoudness
	}

	var onProgress audioconvert.ProgressFunc
	var bar *progressbar.ProgressBar
	if !flagQuiet {
		bar = progressbar.NewOptions(100,
			progressbar.OptionSetDescription(filepath.Base(inputPath)),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
		)
		onProgress = func(p audioconvert.ConversionProgress) {
			bar.Set(p.Percent)
			bar.Describe(fmt.Sprintf("%-10s %s", p.Phase, p.Step))
		}
	}

	result := audioconvert.Convert(input, audioconvert.AudioFormat{Container: inputContainer}, options, onProgress)
	if bar != nil {
		bar.Finish()
		fmt.Println()
	}

	if !result.Success {
		return fmt.Errorf("conversion failed at %s stage: %s", result.Stage, result.Error)
	}

	if err := os.WriteFile(outputPath, result.Output, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if !flagQuiet {
		printSummary(result)
	}
	return nil
}

func printSummary(result audioconvert.ConversionResult) {
	fmt.Printf("Format:        %s %d Hz / %d bit / %d ch\n",
		result.Format.Container, result.Format.SampleRate, result.Format.BitDepth, result.Format.Channels)
	fmt.Printf("Size:          %d -> %d bytes\n", result.OriginalSize, result.ConvertedSize)
	fmt.Printf("Peak:          %.2f dBFS\n", result.Metrics.PeakDB)
	fmt.Printf("RMS:           %.2f dBFS\n", result.Metrics.RMSDB)
	fmt.Printf("Dynamic range: %.2f dB\n", result.Metrics.DynamicRangeDB)
	fmt.Printf("Loudness:      %.2f LUFS (approx)\n", result.Metrics.Loudness)
	fmt.Printf("SNR:           %.2f dB\n", result.Metrics.SNRDB)
	fmt.Printf("Duration:      %s\n", result.Duration.Round(time.Millisecond))
}

func parseQuality(name string) (audioconvert.ResampleQuality, error) {
	switch strings.ToLower(name) {
	case "linear":
		return audioconvert.ResampleLinear, nil
	case "cubic":
		return audioconvert.ResampleCubic, nil
	case "sinc":
		return audioconvert.ResampleSinc, nil
	default:
		return 0, fmt.Errorf("unknown quality %q (want linear, cubic or sinc)", name)
	}
}

func extension(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
