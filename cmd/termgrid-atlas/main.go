// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command termgrid-atlas builds a termgrid font atlas file from one or
// more font files and writes it to disk, ready for gpu.LoadAtlas.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gogpu/termgrid"
	"github.com/gogpu/termgrid/atlas"
	"github.com/gogpu/termgrid/atlasgen"
	"github.com/gogpu/termgrid/rasterize"
)

func main() {
	var (
		regular    = flag.String("font", "", "path to the regular-weight font file (required)")
		bold       = flag.String("font-bold", "", "path to the bold font file, defaults to -font")
		italic     = flag.String("font-italic", "", "path to the italic font file, defaults to -font")
		boldIt     = flag.String("font-bold-italic", "", "path to the bold-italic font file, defaults to -font")
		emoji      = flag.String("font-emoji", "", "path to an emoji font file, optional")
		name       = flag.String("name", "", "font name recorded in the atlas file (required)")
		pixels     = flag.Float64("size", 16, "rasterization size in pixels-per-em")
		charset    = flag.String("charset", "", "path to a UTF-8 text file whose grapheme clusters are baked into the atlas (required)")
		output     = flag.String("output", "atlas.termgrid", "output atlas file path")
		normalOnly = flag.Bool("normal-only", false, "bake only the Normal style, skipping bold/italic/bold-italic variants")
		verbose    = flag.Bool("v", false, "log build progress to stderr")
	)
	flag.Parse()

	if *verbose {
		termgrid.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}
	log := termgrid.Logger()

	if *regular == "" || *name == "" || *charset == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(*regular, *bold, *italic, *boldIt, *emoji, *name, *pixels, *charset, *normalOnly)
	if err != nil {
		log.Error("termgrid-atlas: load config", "error", err)
		os.Exit(1)
	}

	a, report, err := atlasgen.Build(*cfg)
	if err != nil {
		log.Error("termgrid-atlas: build", "error", err)
		os.Exit(1)
	}

	log.Info("termgrid-atlas: built atlas",
		"font", cfg.FontName,
		"requested_clusters", report.RequestedClusters,
		"encoded_glyphs", report.EncodedGlyphs,
		"missing_clusters", len(report.MissingClusters))
	for _, c := range report.MissingClusters {
		log.Warn("termgrid-atlas: cluster missing from every face", "cluster", c)
	}

	data, err := atlas.Encode(a)
	if err != nil {
		log.Error("termgrid-atlas: encode", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*output, data, 0o644); err != nil {
		log.Error("termgrid-atlas: write output", "error", err, "path", *output)
		os.Exit(1)
	}

	log.Info("termgrid-atlas: wrote atlas file", "path", *output, "bytes", len(data))
}

func loadConfig(regular, bold, italic, boldItalic, emoji, name string, pixelSize float64, charsetPath string, normalOnly bool) (*atlasgen.Config, error) {
	text, err := os.ReadFile(charsetPath)
	if err != nil {
		return nil, err
	}

	regularSrc, err := rasterize.NewFontSourceFromFile(regular)
	if err != nil {
		return nil, err
	}

	faces := [4]*rasterize.FontSource{rasterize.StyleNormal: regularSrc}
	for style, path := range map[rasterize.Style]string{
		rasterize.StyleBold:       bold,
		rasterize.StyleItalic:     italic,
		rasterize.StyleBoldItalic: boldItalic,
	} {
		if path == "" {
			continue
		}
		src, err := rasterize.NewFontSourceFromFile(path)
		if err != nil {
			return nil, err
		}
		faces[style] = src
	}

	var emojiSrc *rasterize.FontSource
	if emoji != "" {
		emojiSrc, err = rasterize.NewFontSourceFromFile(emoji)
		if err != nil {
			return nil, err
		}
	}

	cfg := &atlasgen.Config{
		FontName:  name,
		PixelSize: pixelSize,
		Faces:     faces,
		EmojiFont: emojiSrc,
		Text:      string(text),
	}
	if normalOnly {
		cfg.Styles = []rasterize.Style{rasterize.StyleNormal}
	}
	return cfg, nil
}
