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

// Package convertflow detects file types, lists the conversions each type
// supports and runs them, degrading to a placeholder artifact whenever no
// real transform exists for a pair.
package convertflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nicholasgasior/convertflow-go/internal/pdfdoc"
)

const (
	defaultJPEGQuality     = 92
	defaultCompressQuality = 60
)

var errNoTarget = errors.New("no target format")

// Engine runs conversions. It holds configuration only and is safe for
// concurrent use.
type Engine struct {
	log             zerolog.Logger
	codec           pdfdoc.Codec
	jpegQuality     int
	compressQuality int
	fallbackDelay   time.Duration
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:             zerolog.Nop(),
		jpegQuality:     defaultJPEGQuality,
		compressQuality: defaultCompressQuality,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.codec == nil {
		e.codec = pdfdoc.NewCodec()
	}
	return e
}

// route sends a category, optionally narrowed to some subcategories, to a
// transform. A nil subcategory list matches the whole category.
type route struct {
	category      Category
	subcategories []Subcategory
	transform     transformFunc
}

func (r route) matches(d FileTypeDescriptor) bool {
	return d.Category == r.category && (r.subcategories == nil || slices.Contains(r.subcategories, d.Subcategory))
}

// routes is consulted in order; the first match wins. Anything unmatched
// goes to the fallback.
var routes = []route{
	{CategoryImage, nil, convertImage},
	{CategoryDocument, []Subcategory{SubPDF}, convertPDF},
	{CategoryDocument, []Subcategory{SubText}, convertText},
	{CategoryDocument, []Subcategory{SubMarkdown}, convertMarkdown},
	{CategoryDocument, []Subcategory{SubHTML}, convertHTML},
	{CategoryDocument, []Subcategory{SubJSON}, convertJSON},
	{CategoryDocument, []Subcategory{SubXML}, convertXML},
	{CategoryDocument, []Subcategory{SubYAML}, convertYAML},
	{CategoryDocument, []Subcategory{SubTOML}, convertTOML},
	{CategoryDocument, []Subcategory{SubCode}, convertCode},
	{CategorySpreadsheet, []Subcategory{SubCSV}, convertCSV},
	{CategorySpreadsheet, []Subcategory{SubTSV}, convertTSV},
	{CategoryDocument, []Subcategory{SubWord, SubRichText, SubOpenDocument}, convertDocument},
	{CategorySpreadsheet, []Subcategory{SubExcel, SubOpenDocument}, convertSpreadsheet},
	{CategoryDocument, []Subcategory{SubLaTeX}, convertLatex},
}

// transformFor returns the transform for d, or the fallback.
func transformFor(d FileTypeDescriptor) (transformFunc, bool) {
	for _, r := range routes {
		if r.matches(d) {
			return r.transform, true
		}
	}
	return func(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error) {
		return e.simulate(ctx, f, target, p)
	}, false
}

// Convert turns f into target. d is normally the result of Detect on f's
// name. Progress starts at 10 and ends at 100 on success. Every failure is
// returned as a *DispatchError naming the file.
func (e *Engine) Convert(ctx context.Context, f File, target string, d FileTypeDescriptor, onProgress ProgressFunc) (*Result, error) {
	p := newProgress(onProgress)
	return dispatch(ctx, e, f.Name, target, p, func(target string) (*Result, error) {
		transform, routed := transformFor(d)
		e.log.Debug().
			Str("file", f.Name).
			Str("category", string(d.Category)).
			Str("subcategory", string(d.Subcategory)).
			Str("target", target).
			Bool("fallback", !routed).
			Msg("routing conversion")
		res, err := transform(ctx, e, f, target, p)
		var pair *UnsupportedPairError
		if errors.As(err, &pair) {
			pair.Source = d.Subcategory
		}
		return res, err
	})
}

// dispatch wraps one operation in the progress bookends and the error
// boundary shared by conversions and batch operations.
func dispatch[T any](ctx context.Context, e *Engine, name, target string, p *progress, run func(target string) (T, error)) (T, error) {
	var zero T
	id := uuid.NewString()
	target = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(target), "."))

	fail := func(err error) (T, error) {
		e.log.Error().
			Err(err).
			Str("conversion_id", id).
			Str("file", name).
			Str("target", target).
			Msg("conversion failed")
		return zero, &DispatchError{File: name, Target: target, Err: err}
	}

	if target == "" {
		return fail(errNoTarget)
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	p.report(10)
	out, err := guard(target, run)
	if err != nil {
		return fail(err)
	}
	p.report(100)

	e.log.Info().
		Str("conversion_id", id).
		Str("file", name).
		Str("target", target).
		Msg("conversion finished")
	return out, nil
}

// guard reports a panic inside run as an error.
func guard[T any](target string, run func(target string) (T, error)) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return run(target)
}

// ConvertFile reads a local file, detects its type and converts it.
func (e *Engine) ConvertFile(ctx context.Context, path, target string, onProgress ProgressFunc) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DispatchError{File: filepath.Base(path), Target: target, Err: fmt.Errorf("read input: %w", err)}
	}
	f := File{
		Name:     filepath.Base(path),
		Data:     data,
		MIMEType: SniffMIME(data, path),
	}
	return e.Convert(ctx, f, target, Detect(f.Name, f.MIMEType), onProgress)
}
