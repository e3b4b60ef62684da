// Package classify maps file extensions to semantic categories. The mapping
// drives which analysis techniques run against a file, so it stays a closed
// enum: adding a category means updating every switch that dispatches on it.
package classify

import (
	"path/filepath"
	"strings"
)

type Category int

const (
	Unknown Category = iota
	Text
	Code
	Image
	Video
	Audio
	Document
	Executable
	Archive
	Mobile
	Email
	Web
	Database
	Font
	CAD
	Game
	System
	Scientific
	Blockchain
)

var categoryNames = map[Category]string{
	Unknown:    "unknown",
	Text:       "text",
	Code:       "code",
	Image:      "image",
	Video:      "video",
	Audio:      "audio",
	Document:   "document",
	Executable: "executable",
	Archive:    "archive",
	Mobile:     "mobile",
	Email:      "email",
	Web:        "web",
	Database:   "database",
	Font:       "font",
	CAD:        "cad",
	Game:       "game",
	System:     "system",
	Scientific: "scientific",
	Blockchain: "blockchain",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

func (c Category) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// Categories returns every declared category, Unknown included.
func Categories() []Category {
	out := make([]Category, 0, len(categoryNames))
	for c := Unknown; c <= Blockchain; c++ {
		out = append(out, c)
	}
	return out
}

/// NormalizeExt reduces a path or bare extension to the lookup key: the final
// extension, lower-cased, with a leading dot. Inputs with a separator or an
// interior dot are treated as paths; anything else as a bare extension.
func NormalizeExt(pathOrExt string) string {
	s := strings.TrimSpace(pathOrExt)
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, `/\`) || strings.Contains(s[1:], ".") {
		s = filepath.Ext(s)
		if s == "" {
			return ""
		}
	}
	if !strings.HasPrefix(s, ".") {
		s = "." + s
	}
	return strings.ToLower(s)
}

// Classify returns the category for a path or bare extension. Unmapped and
// missing extensions yield Unknown; the function is total.
func Classify(pathOrExt string) Category {
	ext := NormalizeExt(pathOrExt)
	if ext == "" {
		return Unknown
	}
	if cat, ok := extTable[ext]; ok {
		return cat
	}
	return Unknown
}

// BinaryMedia reports whether the extension belongs to the compressed or
// binary media set that text heuristics must skip. This is a separate table
// from the category mapping: image covers both .png (suppressed) and .svg
// (plain XML, scanned), cad covers both .dwg and .dxf.
func BinaryMedia(pathOrExt string) bool {
	ext := NormalizeExt(pathOrExt)
	if ext == "" {
		return false
	}
	_, ok := binaryMediaExts[ext]
	return ok
}

// TableSize returns the number of mapped extensions.
func TableSize() int {
	return len(extTable)
}
