// Command finch renders an HTML page, from a URL or a local file, to a
// PNG image or to flattened text on stdout.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finch/pkg/paint"
	"finch/pkg/render"
	"finch/pkg/resource"
	"finch/std/net"
)

var (
	outPath  string
	viewport string
	cssPath  string
	textMode bool
	timeout  time.Duration
	verbose  bool
)

func main() {
	root := &cobra.Command{
		Use:           "finch",
		Short:         "A small block-flow HTML renderer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	renderCmd := &cobra.Command{
		Use:   "render <url-or-file>",
		Short: "Render a page to a PNG image or to text",
		Long: `render parses an HTML page and its stylesheets, lays it out in
block flow against the given viewport, and either rasterizes the result
to a PNG or prints it as flattened text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args[0])
		},
	}
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "page.png", "output PNG path")
	renderCmd.Flags().StringVar(&viewport, "viewport", "1280x720", "viewport size as WIDTHxHEIGHT")
	renderCmd.Flags().StringVar(&cssPath, "css", "", "extra stylesheet file applied after page styles")
	renderCmd.Flags().BoolVarP(&textMode, "text", "t", false, "print flattened text instead of rendering an image")
	renderCmd.Flags().DurationVar(&timeout, "timeout", net.DefaultTimeout, "network fetch timeout")
	root.AddCommand(renderCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "finch:", err)
		os.Exit(1)
	}
}

func runRender(target string) error {
	width, height, err := parseViewport(viewport)
	if err != nil {
		return err
	}

	log, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	var extraCSS []string
	if cssPath != "" {
		sheet, err := os.ReadFile(cssPath)
		if err != nil {
			return fmt.Errorf("reading stylesheet: %w", err)
		}
		extraCSS = append(extraCSS, string(sheet))
	}

	engine := resource.NewEngine(float64(width), float64(height), log)

	var page *resource.Page
	if net.IsNetworkURL(target) {
		page, err = engine.LoadPage(resource.DefaultFetcher(timeout, log), target, extraCSS...)
	} else {
		var source []byte
		source, err = os.ReadFile(target)
		if err != nil {
			return fmt.Errorf("reading page: %w", err)
		}
		page, err = engine.RenderPage(string(source), extraCSS...)
	}
	if err != nil {
		return err
	}

	if textMode {
		if page.Document.Title != "" {
			fmt.Println(page.Document.Title)
			fmt.Println(strings.Repeat("=", len(page.Document.Title)))
		}
		fmt.Println(runsToText(page.Runs))
		return nil
	}

	r := render.NewRenderer(width, height)
	r.Render(page.DisplayList)
	if err := r.SavePNG(outPath); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	log.Info("rendered", zap.String("out", outPath),
		zap.Int("width", width), zap.Int("height", height))
	return nil
}

func parseViewport(s string) (width, height int, err error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid viewport %q, want WIDTHxHEIGHT", s)
	}
	width, err = strconv.Atoi(parts[0])
	if err == nil {
		height, err = strconv.Atoi(parts[1])
	}
	if err != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid viewport %q, want WIDTHxHEIGHT", s)
	}
	return width, height, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// runsToText joins flattened runs into display lines, separating words
// with single spaces and honoring break markers.
func runsToText(runs []paint.Run) string {
	var b strings.Builder
	atLineStart := true
	for _, run := range runs {
		if run.IsBreak {
			b.WriteString("\n")
			atLineStart = true
			continue
		}
		if !atLineStart && !strings.HasSuffix(b.String(), " ") {
			b.WriteString(" ")
		}
		b.WriteString(run.Text)
		atLineStart = false
	}
	return b.String()
}
