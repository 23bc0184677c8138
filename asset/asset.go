// Package asset turns uploaded camera photos and signature strokes into
// compact JPEG data URIs, the only image form the record store accepts.
package asset

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

// Kind selects the compression profile for an upload.
type Kind string

const (
	Photo     Kind = "photo"
	Signature Kind = "signature"
)

// maxEdge is the longest image side kept after resizing.
const maxEdge = 1024

func quality(kind Kind) int {
	if kind == Signature {
		return 50
	}
	return 70
}

// Encode reads one image, shrinks it to at most maxEdge on its long side
// and re-encodes it as a JPEG data URI. Undecodable input is reported as
// ok=false with no error; callers drop the asset and move on.
func Encode(r io.Reader, kind Kind) (uri string, ok bool) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", false
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxEdge || h > maxEdge {
		if w >= h {
			img = imaging.Resize(img, maxEdge, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, maxEdge, imaging.Lanczos)
		}
	}

	if kind == Signature {
		// signature strokes come in on a transparent canvas; JPEG has
		// no alpha, so flatten onto white first
		flat := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
		img = imaging.OverlayCenter(flat, img, 1.0)
	}

	var buf bytes.Buffer
	err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality(kind)})
	if err != nil {
		return "", false
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), true
}

// Payload splits a data URI into its raw bytes and MIME type.
func Payload(uri string) (data []byte, mime string, err error) {
	rest, found := strings.CutPrefix(uri, "data:")
	if !found {
		return nil, "", errors.New("not a data URI")
	}
	meta, b64, found := strings.Cut(rest, ",")
	if !found {
		return nil, "", errors.New("malformed data URI")
	}
	mime, _, _ = strings.Cut(meta, ";")

	data, err = base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, "", fmt.Errorf("decode data URI: %w", err)
	}
	return data, mime, nil
}

// Decode parses a data URI back into an image.
func Decode(uri string) (image.Image, error) {
	data, _, err := Payload(uri)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
