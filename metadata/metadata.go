package metadata

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"maps"
	"os"
	"path"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rwcarlsen/goexif/exif"
)

// Extract returns descriptive properties for supported image and document
// formats. Purely informational: nothing here contributes to a threat
// score. Unsupported MIME types yield an empty map.
func Extract(path string, mimeType string, maxBytes int64) map[string]interface{} {
	meta := make(map[string]interface{})

	switch {
	case mimeType == "image/jpeg" || mimeType == "image/png" || mimeType == "image/tiff":
		maps.Copy(meta, imageProps(path, maxBytes))
	case mimeType == "application/pdf":
		maps.Copy(meta, pdfProps(path, maxBytes))
	case strings.HasPrefix(mimeType, "application/vnd.openxmlformats-officedocument"),
		strings.HasPrefix(mimeType, "application/vnd.ms-"):
		maps.Copy(meta, officeProps(path, maxBytes))
	}

	return meta
}

// imageProps extracts a subset of EXIF tags.
func imageProps(path string, maxBytes int64) map[string]interface{} {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var reader io.Reader = f
	if maxBytes > 0 {
		reader = io.LimitReader(f, maxBytes)
	}
	x, err := exif.Decode(reader)
	if err != nil {
		return nil
	}

	meta := make(map[string]interface{})
	if tm, err := x.DateTime(); err == nil {
		meta["datetime"] = tm.Format(time.RFC3339)
	}
	if makeTag, err := x.Get(exif.Make); err == nil {
		meta["make"] = makeTag.String()
	}
	if modelTag, err := x.Get(exif.Model); err == nil {
		meta["model"] = modelTag.String()
	}
	return meta
}

// pdfProps reads standard PDF document information.
func pdfProps(path string, maxBytes int64) map[string]interface{} {
	if maxBytes > 0 {
		info, err := os.Stat(path)
		if err != nil || info.Size() > maxBytes {
			return nil
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	info, err := api.PDFInfo(f, path, nil, false, nil)
	if err != nil {
		return nil
	}

	meta := make(map[string]interface{})
	if info.Title != "" {
		meta["title"] = info.Title
	}
	if info.Author != "" {
		meta["author"] = info.Author
	}
	if info.Creator != "" {
		meta["creator"] = info.Creator
	}
	if info.Producer != "" {
		meta["producer"] = info.Producer
	}
	return meta
}

// officeProps parses core properties from an OOXML container.
func officeProps(path string, maxBytes int64) map[string]interface{} {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil
	}
	defer r.Close()

	var coreFile *zip.File
	for _, f := range r.File {
		if f.Name == "docProps/core.xml" {
			if maxBytes > 0 && f.UncompressedSize64 > uint64(maxBytes) {
				return nil
			}
			coreFile = f
			break
		}
	}
	if coreFile == nil {
		return nil
	}

	rc, err := coreFile.Open()
	if err != nil {
		return nil
	}
	defer rc.Close()

	type coreProperties struct {
		Title       string `xml:"title"`
		Subject     string `xml:"subject"`
		Creator     string `xml:"creator"`
		Keywords    string `xml:"keywords"`
		Description string `xml:"description"`
	}

	var props coreProperties
	var reader io.Reader = rc
	if maxBytes > 0 {
		reader = io.LimitReader(rc, maxBytes)
	}
	if err := xml.NewDecoder(reader).Decode(&props); err != nil {
		return nil
	}

	meta := make(map[string]interface{})
	if props.Title != "" {
		meta["title"] = props.Title
	}
	if props.Subject != "" {
		meta["subject"] = props.Subject
	}
	if props.Creator != "" {
		meta["creator"] = props.Creator
	}
	if props.Keywords != "" {
		meta["keywords"] = props.Keywords
	}
	if props.Description != "" {
		meta["description"] = props.Description
	}
	return meta
}

// MacroPayload reports whether an OOXML container carries an embedded VBA
// project, and the entry name that triggered it. Non-zip input reports
// false; the caller decides what a macro is worth.
func MacroPayload(zipPath string) (bool, string) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return false, ""
	}
	defer r.Close()

	for _, f := range r.File {
		base := strings.ToLower(path.Base(f.Name))
		if base == "vbaproject.bin" || base == "vbadata.xml" {
			return true, f.Name
		}
	}
	return false, ""
}
