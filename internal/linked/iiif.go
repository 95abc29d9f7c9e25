// Copyright Whalen Digital Projects, 2026. All rights reserved.

package linked

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// presentationVersion tags the two competing IIIF Presentation API
// schemas a manifest may declare.
type presentationVersion int

const (
	presentationUnknown presentationVersion = iota
	presentationV2
	presentationV3
)

const (
	contextV2 = "http://iiif.io/api/presentation/2/context.json"
	contextV3 = "http://iiif.io/api/presentation/3/context.json"
)

// manifestVersion inspects the manifest's declared @context, which may be
// a single value or an array.
func manifestVersion(manifest Document) presentationVersion {
	match := func(s string) presentationVersion {
		switch s {
		case contextV3:
			return presentationV3
		case contextV2:
			return presentationV2
		}
		return presentationUnknown
	}

	switch ctx := manifest["@context"].(type) {
	case string:
		return match(ctx)
	case []any:
		for _, raw := range ctx {
			if s, ok := raw.(string); ok {
				if v := match(s); v != presentationUnknown {
					return v
				}
			}
		}
	}
	return presentationUnknown
}

// FindManifest locates and fetches the object's IIIF manifest. Two
// structural shapes are tried in order: a digitally_carried_by wrapper
// whose item conforms to the presentation API, then a direct subject_of
// item.
func (e *Engine) FindManifest(ctx context.Context, doc Document) Document {
	if doc == nil {
		e.logf("data not available")
		return nil
	}
	conformsToIIIF := func(item Document) bool {
		return strings.HasPrefix(item.first("conforms_to").ID(), "http://iiif.io/api/presentation")
	}

	for _, raw := range doc.seq("subject_of") {
		for _, carried := range AsDocument(raw).seq("digitally_carried_by") {
			item := AsDocument(carried)
			if !conformsToIIIF(item) {
				continue
			}
			if manifest := e.fetch(ctx, item.first("access_point").ID()); manifest != nil {
				return manifest
			}
		}
	}
	for _, raw := range doc.seq("subject_of") {
		item := AsDocument(raw)
		if !conformsToIIIF(item) {
			continue
		}
		if manifest := e.fetch(ctx, item.ID()); manifest != nil {
			return manifest
		}
	}
	return nil
}

// LocateImage extracts the canonical image access URI from a IIIF
// manifest. Each presentation version has one fixed deep path; this is a
// structural pattern match, not general IIIF parsing. Unrecognized or
// absent context yields "".
func LocateImage(manifest Document) string {
	switch manifestVersion(manifest) {
	case presentationV3:
		return manifest.first("items").first("items").first("items").doc("body").ID()
	case presentationV2:
		return manifest.first("sequences").first("canvases").first("images").doc("resource").str("@id")
	}
	return ""
}

// imageExtent returns the full-size pixel dimensions recorded in a v3
// manifest body.
func imageExtent(manifest Document) (width, height int) {
	body := manifest.first("items").first("items").first("items").doc("body")
	if w, ok := body["width"].(float64); ok {
		width = int(w)
	}
	if h, ok := body["height"].(float64); ok {
		height = int(h)
	}
	return width, height
}

const fullRegion = "/full/full/0/default.jpg"

// ResizeURI rewrites a IIIF image URI to a reduced size. spec is either a
// pixel count ("800") or a percentage ("50%"), applied to the image's
// largest dimension; the other dimension scales proportionally on the
// image server.
func ResizeURI(manifest Document, imageURI, spec string) (string, error) {
	width, height := imageExtent(manifest)
	largest := width
	byWidth := true
	if height > width {
		largest = height
		byWidth = false
	}

	var target int
	if strings.HasSuffix(spec, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(spec, "%"), 64)
		if err != nil {
			return "", fmt.Errorf("invalid resize percentage %q", spec)
		}
		if pct > 100 {
			return "", fmt.Errorf("resize percentage cannot exceed 100%%")
		}
		target = int(float64(largest)*pct/100 + 0.5)
	} else {
		px, err := strconv.Atoi(spec)
		if err != nil {
			return "", fmt.Errorf("invalid resize value %q: provide pixels or a percentage", spec)
		}
		if largest > 0 && px > largest {
			return "", fmt.Errorf("resize of %d px exceeds the largest full-size dimension (%d px)", px, largest)
		}
		target = px
	}

	var size string
	if byWidth {
		size = fmt.Sprintf("/full/%d,/0/default.jpg", target)
	} else {
		size = fmt.Sprintf("/full/,%d/0/default.jpg", target)
	}
	return strings.Replace(imageURI, fullRegion, size, 1), nil
}
