// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the convert CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/file-converter/internal/convert"
	"github.com/pdiddy/file-converter/internal/logger"
	"github.com/pdiddy/file-converter/internal/ui"
	"github.com/pdiddy/file-converter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// appLog is configured in PersistentPreRunE from --verbose.
var appLog = logger.Discard()

// configErr holds a config file read failure other than "not found".
var configErr error

const example = "Example: convert report.docx pdf"

// usageError marks argument errors that should be followed by an example.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// rootCmd converts one file when given arguments and hosts the subcommands.
var rootCmd = &cobra.Command{
	Use:   "convert <input_file> <output_format>",
	Short: "Convert documents between text-bearing formats",
	Long: `convert reads a document, extracts its text, and writes the text in another
format. Inputs: txt, md, docx, pdf, rtf, odt, html (htm). Outputs: txt, md,
docx, pdf, rtf, odt, html. Results land in a single output directory,
~/Desktop/Converted Documents unless configured otherwise.

Text is carried across; styles, images, and tables are not. PDFs are read
through OCR by default.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := log.WarnLevel
		if verbose {
			level = log.DebugLevel
		}
		appLog = logger.NewWithLevel(cmd.ErrOrStderr(), level)
		if configErr != nil {
			return configErr
		}
		if used := viper.ConfigFileUsed(); used != "" {
			appLog.ConfigLoaded(used)
		}
		return nil
	},
	RunE: runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./file-converter.yaml or ~/.config/file-converter/file-converter.yaml)")
	pf.String("output-dir", "", "directory converted files are written to (default: ~/Desktop/Converted Documents)")
	pf.String("pdf-extract", "", "PDF text extraction: ocr, text, or auto (default: ocr)")
	pf.BoolP("verbose", "v", false, "log debug detail to stderr")
	rootCmd.Flags().Bool("dry-run", false, "validate and print the output path without converting")

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != rootCmd {
			defaultHelp(cmd, args)
			return
		}
		printBanner(cmd.OutOrStdout(), cmd)
	})
}

func printBanner(w io.Writer, cmd *cobra.Command) {
	fmt.Fprintln(w, ui.Banner("convert"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() {
			fmt.Fprintf(w, "  %-10s %s\n", sub.Name(), sub.Short)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, cmd.LocalFlags().FlagUsages())
}

// bindFlags ties flags to their config keys.
func bindFlags() {
	pf := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("output_dir", pf.Lookup("output-dir"))
	_ = viper.BindPFlag("pdf.extract", pf.Lookup("pdf-extract"))
	_ = viper.BindPFlag("web.addr", serveCmd.Flags().Lookup("addr"))
}

// setDefaults registers every config key so env variables and flags can
// override it.
func setDefaults(cfg types.Config) {
	viper.SetDefault("output_dir", cfg.OutputDir)
	viper.SetDefault("pdf.extract", string(cfg.PDF.Extract))
	viper.SetDefault("pdf.dpi", cfg.PDF.DPI)
	viper.SetDefault("pdf.languages", cfg.PDF.Languages)
	viper.SetDefault("pdf.rasterizer", cfg.PDF.Rasterizer)
	viper.SetDefault("pdf.font_family", cfg.PDF.FontFamily)
	viper.SetDefault("pdf.font_size", cfg.PDF.FontSize)
	viper.SetDefault("rtf.font", cfg.RTF.Font)
	viper.SetDefault("web.addr", cfg.Web.Addr)
	viper.SetDefault("web.max_upload_mb", cfg.Web.MaxUploadMB)
	viper.SetDefault("web.allowed_origins", cfg.Web.AllowedOrigins)
}

func initConfig() {
	bindFlags()
	setDefaults(types.DefaultConfig())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("file-converter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "file-converter"))
		}
	}

	viper.SetEnvPrefix("FILE_CONVERTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configErr = nil
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = fmt.Errorf("reading config: %w", err)
		}
	}
}

// loadConfig decodes the effective configuration.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.OutputDir = expandHome(cfg.OutputDir)
	if !cfg.PDF.Extract.Valid() {
		return cfg, fmt.Errorf("invalid pdf.extract %q: want ocr, text, or auto", cfg.PDF.Extract)
	}
	return cfg, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func runConvert(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return cmd.Help()
	case 1:
		return &usageError{fmt.Errorf("missing output format for %s", args[0])}
	case 2:
	default:
		return &usageError{fmt.Errorf("expected 2 arguments, got %d", len(args))}
	}
	input, format := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	conv := convert.New(cfg)
	out := cmd.OutOrStdout()

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		req, err := conv.Validate(input, format)
		if err != nil {
			return err
		}
		path, err := conv.OutputPath(req)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, path)
		return nil
	}

	if req, err := conv.Validate(input, format); err == nil && req.Input == req.Output {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Warning("input and output are both "+req.Output.Ext()+"; re-rendering into the output directory"))
	}
	fmt.Fprintln(out, ui.Progress(filepath.Base(input)))
	appLog.ConversionStarted(input, format)
	start := time.Now()
	path, err := conv.Convert(input, format)
	if err != nil {
		appLog.ConversionFailed(input, format, err)
		return err
	}
	appLog.ConversionCompleted(input, path, time.Since(start))
	fmt.Fprintln(out, ui.Success(path))
	return nil
}

// execute runs the root command and maps the outcome to an exit code.
func execute(stderr io.Writer) int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintln(stderr, ui.Error(err.Error()))
	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr, ui.Hint(example))
	}
	return 1
}

func main() {
	os.Exit(execute(os.Stderr))
}
