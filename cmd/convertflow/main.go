// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	convertflow "github.com/nicholasgasior/convertflow-go"
	"github.com/nicholasgasior/convertflow-go/internal/config"
	"github.com/nicholasgasior/convertflow-go/internal/logging"
)

var version = "dev"

const usage = `Usage: convertflow <command> [flags] [files]

Commands:
  detect     Print the detected type of each file
  options    List conversion targets and operations for each file
  convert    Convert files to the format given by -to
  merge      Merge PDF files into merged.pdf
  split      Write every page of a PDF to its own file
  compress   Re-encode images as JPEG at a lower quality
  grayscale  Convert images to grayscale
  version    Print the version

Run 'convertflow <command> -h' for the flags of a command.
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	cmd, args := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		outDir   string
		target   string
		quality  int
		logLevel string
		quiet    bool
	)
	fs.StringVar(&outDir, "o", ".", "Output directory")
	fs.StringVar(&outDir, "output", ".", "Output directory")
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&quiet, "q", false, "Do not print progress")
	if cmd == "convert" {
		fs.StringVar(&target, "to", "", "Target format code, e.g. pdf, png, json")
	}
	if cmd == "compress" {
		fs.IntVar(&quality, "quality", cfg.CompressQuality, "JPEG quality 1-100")
	}
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: convertflow %s [flags] files...\n\nFlags:\n", cmd)
		fs.PrintDefaults()
	}

	switch cmd {
	case "version", "-v", "--version":
		fmt.Fprintf(stdout, "convertflow %s\n", version)
		return 0
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	case "detect", "options", "convert", "merge", "split", "compress", "grayscale":
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usage)
		return 2
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	files := fs.Args()
	if len(files) == 0 {
		fs.Usage()
		return 2
	}

	log := logging.New(cfg.Env, logLevel)
	opts := []convertflow.Option{
		convertflow.WithLogger(log),
		convertflow.WithJPEGQuality(cfg.JPEGQuality),
		convertflow.WithCompressQuality(cfg.CompressQuality),
		convertflow.WithFallbackTickDelay(cfg.FallbackDelay),
	}
	if quality > 0 {
		opts = append(opts, convertflow.WithCompressQuality(quality))
	}
	c := &cli{
		engine: convertflow.New(opts...),
		log:    log,
		outDir: outDir,
		stdout: stdout,
		stderr: stderr,
		quiet:  quiet,
	}

	switch cmd {
	case "detect":
		return c.detect(files)
	case "options":
		return c.options(files)
	case "convert":
		if target == "" {
			fmt.Fprintln(stderr, "Error: -to is required")
			return 2
		}
		return c.convert(ctx, files, target)
	case "merge":
		return c.merge(ctx, files)
	case "split":
		return c.split(ctx, files)
	case "compress":
		return c.each(ctx, files, c.engine.RecompressImage)
	default:
		return c.each(ctx, files, c.engine.GrayscaleImage)
	}
}

type cli struct {
	engine *convertflow.Engine
	log    zerolog.Logger
	outDir string
	stdout io.Writer
	stderr io.Writer
	quiet  bool
}

func (c *cli) detect(paths []string) int {
	for _, path := range paths {
		d := convertflow.Detect(filepath.Base(path), "")
		fmt.Fprintf(c.stdout, "%s\t%s/%s\t%s\t%.2f\n", path, d.Category, d.Subcategory, d.Label, d.Confidence)
	}
	return 0
}

func (c *cli) options(paths []string) int {
	for _, path := range paths {
		d := convertflow.Detect(filepath.Base(path), "")
		opts := convertflow.OptionsFor(d)
		formats := make([]string, len(opts))
		for i, o := range opts {
			formats[i] = o.Format
			if o.IsRecommended {
				formats[i] += "*"
			}
		}
		ops := convertflow.OperationsFor(d)
		ids := make([]string, len(ops))
		for i, op := range ops {
			ids[i] = op.ID
		}
		fmt.Fprintf(c.stdout, "%s\n  targets:    %s\n  operations: %s\n", path, strings.Join(formats, " "), strings.Join(ids, " "))
	}
	return 0
}

func (c *cli) convert(ctx context.Context, paths []string, target string) int {
	files, ok := c.readAll(paths)
	if !ok {
		return 1
	}
	status := 0
	items := c.engine.ConvertBatch(ctx, files, target, func(i, percent int) {
		c.progress(files[i].Name, percent)
	})
	for _, item := range items {
		if item.Err != nil {
			fmt.Fprintf(c.stderr, "Error: %v\n", item.Err)
			status = 1
			continue
		}
		if !c.write(item.Result) {
			status = 1
		}
	}
	return status
}

func (c *cli) merge(ctx context.Context, paths []string) int {
	files, ok := c.readAll(paths)
	if !ok {
		return 1
	}
	res, err := c.engine.MergeDocuments(ctx, files, func(p int) { c.progress(convertflow.MergedName, p) })
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return 1
	}
	if !c.write(res) {
		return 1
	}
	return 0
}

func (c *cli) split(ctx context.Context, paths []string) int {
	files, ok := c.readAll(paths)
	if !ok {
		return 1
	}
	status := 0
	for _, f := range files {
		pages, err := c.engine.SplitDocument(ctx, f, func(p int) { c.progress(f.Name, p) })
		if err != nil {
			fmt.Fprintf(c.stderr, "Error: %v\n", err)
			status = 1
			continue
		}
		for _, page := range pages {
			if !c.write(page) {
				status = 1
			}
		}
	}
	return status
}

type singleOp func(context.Context, convertflow.File, convertflow.ProgressFunc) (*convertflow.Result, error)

func (c *cli) each(ctx context.Context, paths []string, op singleOp) int {
	files, ok := c.readAll(paths)
	if !ok {
		return 1
	}
	status := 0
	for _, f := range files {
		res, err := op(ctx, f, func(p int) { c.progress(f.Name, p) })
		if err != nil {
			fmt.Fprintf(c.stderr, "Error: %v\n", err)
			status = 1
			continue
		}
		if !c.write(res) {
			status = 1
		}
	}
	return status
}

func (c *cli) readAll(paths []string) ([]convertflow.File, bool) {
	files := make([]convertflow.File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(c.stderr, "Error reading %s: %v\n", path, err)
			return nil, false
		}
		files = append(files, convertflow.File{
			Name:     filepath.Base(path),
			Data:     data,
			MIMEType: convertflow.SniffMIME(data, path),
		})
	}
	return files, true
}

func (c *cli) write(res *convertflow.Result) bool {
	if err := os.MkdirAll(c.outDir, 0o755); err != nil {
		fmt.Fprintf(c.stderr, "Error creating %s: %v\n", c.outDir, err)
		return false
	}
	path := filepath.Join(c.outDir, res.Name)
	if err := os.WriteFile(path, res.Data, 0o644); err != nil {
		fmt.Fprintf(c.stderr, "Error writing output: %v\n", err)
		return false
	}
	c.log.Debug().Str("path", path).Str("mime", res.MIMEType).Msg("wrote output")
	fmt.Fprintln(c.stdout, path)
	return true
}

func (c *cli) progress(name string, percent int) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.stderr, "\r%s %3d%%", name, percent)
	if percent == 100 {
		fmt.Fprintln(c.stderr)
	}
}
