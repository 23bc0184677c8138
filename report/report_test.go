package report

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crodriguezm/sgsst/model"
)

func TestPageCursor(t *testing.T) {
	t.Run("place advances by the block height", func(t *testing.T) {
		cur := newCursor(nil)
		cur.y = 45

		assert.Equal(t, 45.0, cur.place(7))
		assert.Equal(t, 52.0, cur.place(7))
		assert.Equal(t, 59.0, cur.y)
	})

	t.Run("break resets below the top margin", func(t *testing.T) {
		breaks := 0
		cur := newCursor(func() { breaks++ })
		cur.y = 235

		assert.False(t, cur.breakIfPast(240))
		assert.True(t, cur.breakIfPast(230))
		assert.Equal(t, 20.0, cur.y)
		assert.Equal(t, 2, cur.pages)
		assert.Equal(t, 1, breaks)
	})
}

func jpegURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 180, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// inflateStreams concatenates every zlib content stream of a rendered
// document, so tests can look at the drawn text.
func inflateStreams(raw []byte) []byte {
	var out []byte
	for _, part := range bytes.Split(raw, []byte(">>\nstream\n"))[1:] {
		end := bytes.Index(part, []byte("endstream"))
		if end < 0 {
			continue
		}
		zr, err := zlib.NewReader(bytes.NewReader(part[:end]))
		if err != nil {
			continue
		}
		if data, err := io.ReadAll(zr); err == nil {
			out = append(out, data...)
		}
		zr.Close()
	}
	return out
}

func TestFileName(t *testing.T) {
	ins := model.Inspection{Consecutive: "EXT-AB12"}
	assert.Equal(t, "Inspeccion_EXT-AB12.pdf", FileName(ins))
}

func TestWritePDF(t *testing.T) {
	t.Run("small record fits one page", func(t *testing.T) {
		photo := jpegURI(t, 40, 40)
		ins := model.Inspection{
			Variant:       model.Signage,
			Consecutive:   "SIG-AB12",
			BuildingName:  "Torre Central",
			InspectorName: "Carlos Ruiz",
			Items: []model.Item{
				model.SignageItem{ID: "1", Area: "Recepción", SignalType: "Evacuación", Quantity: 2, Photo1: photo, Photo2: photo},
				model.SignageItem{ID: "2", Area: "Sótano", SignalType: "Informativa", Quantity: 1},
			},
			SignatureURL: photo,
		}

		pdf, err := render(ins)
		require.NoError(t, err)
		assert.Equal(t, 1, pdf.PageCount())

		var buf bytes.Buffer
		require.NoError(t, pdf.Output(&buf))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	})

	t.Run("long records paginate", func(t *testing.T) {
		photo := jpegURI(t, 40, 40)
		items := make([]model.Item, 40)
		for i := range items {
			items[i] = model.SignageItem{ID: fmt.Sprintf("s-%d", i), Area: "Piso", Photo1: photo, Photo2: photo}
		}
		ins := model.Inspection{
			Variant:       model.Signage,
			Consecutive:   "SIG-ZZ99",
			BuildingName:  "Torre Central",
			InspectorName: "Carlos Ruiz",
			Items:         items,
		}

		pdf, err := render(ins)
		require.NoError(t, err)
		assert.Greater(t, pdf.PageCount(), 1)
	})

	t.Run("photo evidence is one headed block per record", func(t *testing.T) {
		photo := jpegURI(t, 40, 40)
		ins := model.Inspection{
			Variant:       model.Signage,
			Consecutive:   "SIG-3F0T",
			BuildingName:  "Torre Central",
			InspectorName: "Carlos Ruiz",
			Items: []model.Item{
				model.SignageItem{ID: "1", Area: "Piso 1", Photo1: photo},
				model.SignageItem{ID: "2", Area: "Piso 2", Photo1: photo},
				model.SignageItem{ID: "3", Area: "Piso 3", Photo1: photo},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, WritePDF(ins, &buf))

		content := inflateStreams(buf.Bytes())
		assert.Equal(t, 1, bytes.Count(content, []byte("EVIDENCIA FOTOGR")),
			"heading appears once, before the photo rows")
	})

	t.Run("no photos, no evidence block", func(t *testing.T) {
		ins := model.Inspection{
			Variant:       model.Signage,
			Consecutive:   "SIG-0F0T",
			BuildingName:  "Torre Central",
			InspectorName: "Carlos Ruiz",
			Items:         []model.Item{model.SignageItem{ID: "1", Area: "Piso 1"}},
		}

		var buf bytes.Buffer
		require.NoError(t, WritePDF(ins, &buf))
		assert.Zero(t, bytes.Count(inflateStreams(buf.Bytes()), []byte("EVIDENCIA FOTOGR")))
	})

	t.Run("items without local ids keep their own photos", func(t *testing.T) {
		ins := model.Inspection{
			Variant:     model.SafetyConditions,
			Consecutive: "INS-2IMG",
			Items: []model.Item{
				model.Finding{Area: "Bodega", Photo1: jpegURI(t, 40, 40)},
				model.Finding{Area: "Azotea", Photo1: jpegURI(t, 60, 30)},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, WritePDF(ins, &buf))
		assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("/Subtype /Image")),
			"both photos embedded, no name collision")
	})

	t.Run("broken photo assets are skipped, not fatal", func(t *testing.T) {
		ins := model.Inspection{
			Variant:     model.SafetyConditions,
			Consecutive: "INS-0K0K",
			Items: []model.Item{
				model.Finding{ID: "1", Area: "Bodega", Photo1: "data:image/jpeg;base64,bm90IGEgcGhvdG8="},
			},
			SignatureURL: "not even a data uri",
		}

		var buf bytes.Buffer
		require.NoError(t, WritePDF(ins, &buf))
		assert.NotEmpty(t, buf.Bytes())
	})

	t.Run("work permit renders its head block", func(t *testing.T) {
		ins := model.Inspection{
			Variant:     model.WorkPermits,
			Consecutive: "WP-1234",
			Permit: &model.PermitDetails{
				ContractorCompany: "Alturas SAS",
				RequiredPermit:    "Trabajo en Alturas",
				WorkerCount:       2,
			},
			Items: []model.Item{
				model.WorkerItem{ID: "1", Name: "Pedro Pérez", CC: "123"},
				model.WorkerItem{ID: "2", Name: "Juan Díaz", CC: "456"},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, WritePDF(ins, &buf))
		assert.NotEmpty(t, buf.Bytes())
	})

	t.Run("unknown variant fails", func(t *testing.T) {
		ins := model.Inspection{
			Variant: model.Variant("NOPE"),
			Items:   []model.Item{model.Finding{ID: "1"}},
		}
		var buf bytes.Buffer
		assert.Error(t, WritePDF(ins, &buf))
	})
}
