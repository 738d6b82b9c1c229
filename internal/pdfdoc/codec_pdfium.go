//go:build !nopdfium

package pdfdoc

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"strings"
	"sync"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
)

var (
	pdfiumPool     pdfium.Pool
	pdfiumPoolOnce sync.Once
	pdfiumPoolErr  error
)

func initPdfiumPool() {
	pdfiumPool, pdfiumPoolErr = webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
}

// PdfiumCodec runs PDFium compiled to WebAssembly. The runtime is started on
// first use and shared by every PdfiumCodec in the process.
type PdfiumCodec struct {
	// InstanceTimeout bounds the wait for a free PDFium instance.
	InstanceTimeout time.Duration
}

// NewCodec returns the codec for this build.
func NewCodec() Codec {
	return &PdfiumCodec{InstanceTimeout: 30 * time.Second}
}

func (c *PdfiumCodec) instance(ctx context.Context) (pdfium.Pdfium, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pdfiumPoolOnce.Do(initPdfiumPool)
	if pdfiumPoolErr != nil {
		return nil, fmt.Errorf("init pdfium: %w", pdfiumPoolErr)
	}
	timeout := c.InstanceTimeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	inst, err := pdfiumPool.GetInstance(timeout)
	if err != nil {
		return nil, fmt.Errorf("get pdfium instance: %w", err)
	}
	return inst, nil
}

// withDocument opens data on a fresh instance and hands both to fn.
func (c *PdfiumCodec) withDocument(ctx context.Context, data []byte, fn func(pdfium.Pdfium, references.FPDF_DOCUMENT, int) error) error {
	inst, err := c.instance(ctx)
	if err != nil {
		return err
	}
	defer inst.Close()

	doc, count, err := openDocument(inst, data)
	if err != nil {
		return err
	}
	defer inst.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: doc})

	return fn(inst, doc, count)
}

func openDocument(inst pdfium.Pdfium, data []byte) (references.FPDF_DOCUMENT, int, error) {
	opened, err := inst.OpenDocument(&requests.OpenDocument{File: &data})
	if err != nil {
		return "", 0, fmt.Errorf("open PDF: %w", err)
	}
	count, err := inst.FPDF_GetPageCount(&requests.FPDF_GetPageCount{Document: opened.Document})
	if err != nil {
		inst.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: opened.Document})
		return "", 0, fmt.Errorf("get page count: %w", err)
	}
	return opened.Document, count.PageCount, nil
}

func (c *PdfiumCodec) PageCount(ctx context.Context, data []byte) (int, error) {
	var pages int
	err := c.withDocument(ctx, data, func(_ pdfium.Pdfium, _ references.FPDF_DOCUMENT, n int) error {
		pages = n
		return nil
	})
	return pages, err
}

func (c *PdfiumCodec) ExtractText(ctx context.Context, data []byte) ([]string, error) {
	var out []string
	err := c.withDocument(ctx, data, func(inst pdfium.Pdfium, doc references.FPDF_DOCUMENT, n int) error {
		out = make([]string, 0, n)
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			resp, err := inst.GetPageText(&requests.GetPageText{
				Page: requests.Page{
					ByIndex: &requests.PageByIndex{Document: doc, Index: i},
				},
			})
			if err != nil {
				return fmt.Errorf("page %d text: %w", i+1, err)
			}
			out = append(out, strings.TrimSpace(resp.Text))
		}
		return nil
	})
	return out, err
}

func (c *PdfiumCodec) RenderPage(ctx context.Context, data []byte, index int, scale float64) (image.Image, error) {
	var img image.Image
	err := c.withDocument(ctx, data, func(inst pdfium.Pdfium, doc references.FPDF_DOCUMENT, n int) error {
		if index < 0 || index >= n {
			return fmt.Errorf("page %d out of range (document has %d)", index+1, n)
		}
		resp, err := inst.RenderPageInDPI(&requests.RenderPageInDPI{
			Page: requests.Page{
				ByIndex: &requests.PageByIndex{Document: doc, Index: index},
			},
			DPI: int(72 * scale),
		})
		if err != nil {
			return fmt.Errorf("render page %d: %w", index+1, err)
		}
		defer resp.Cleanup()

		// The rendered buffer lives in the runtime's memory until Cleanup.
		src := resp.Result.Image
		dst := image.NewRGBA(src.Bounds())
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		img = dst
		return nil
	})
	return img, err
}

func (c *PdfiumCodec) Merge(ctx context.Context, docs [][]byte) ([]byte, error) {
	inst, err := c.instance(ctx)
	if err != nil {
		return nil, err
	}
	defer inst.Close()

	created, err := inst.FPDF_CreateNewDocument(&requests.FPDF_CreateNewDocument{})
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	dest := created.Document
	defer inst.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: dest})

	total := 0
	for i, data := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, n, err := openDocument(inst, data)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
		_, err = inst.FPDF_ImportPages(&requests.FPDF_ImportPages{
			Source:      src,
			Destination: dest,
			Index:       total,
		})
		inst.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: src})
		if err != nil {
			return nil, fmt.Errorf("document %d: import pages: %w", i+1, err)
		}
		total += n
	}
	return saveCopy(inst, dest)
}

func (c *PdfiumCodec) SplitPages(ctx context.Context, data []byte) ([][]byte, error) {
	var out [][]byte
	err := c.withDocument(ctx, data, func(inst pdfium.Pdfium, src references.FPDF_DOCUMENT, n int) error {
		out = make([][]byte, 0, n)
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			page, err := extractPage(inst, src, i)
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			out = append(out, page)
		}
		return nil
	})
	return out, err
}

func extractPage(inst pdfium.Pdfium, src references.FPDF_DOCUMENT, index int) ([]byte, error) {
	created, err := inst.FPDF_CreateNewDocument(&requests.FPDF_CreateNewDocument{})
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	defer inst.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: created.Document})

	pageRange := fmt.Sprint(index + 1)
	if _, err := inst.FPDF_ImportPages(&requests.FPDF_ImportPages{
		Source:      src,
		Destination: created.Document,
		PageRange:   &pageRange,
	}); err != nil {
		return nil, fmt.Errorf("import page: %w", err)
	}
	return saveCopy(inst, created.Document)
}

func saveCopy(inst pdfium.Pdfium, doc references.FPDF_DOCUMENT) ([]byte, error) {
	saved, err := inst.FPDF_SaveAsCopy(&requests.FPDF_SaveAsCopy{Document: doc})
	if err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	if saved.FileBytes == nil {
		return nil, fmt.Errorf("save document: no output")
	}
	return *saved.FileBytes, nil
}
