package mime

import (
	"path/filepath"
	"strings"
)

// Extension maps file extensions (with the leading dot) onto content types.
// The table is read-only at runtime
var Extension = map[string]MIME{
	".manifest": CacheManifest,
	".htm":      HTML,
	".html":     HTML,
	".png":      PNG,
	".jpg":      JPG,
	".jpeg":     JPG,
	".svg":      SVG,
	".css":      CSS,
	".js":       JS,
	".mjs":      JS,
	".wasm":     WASM,
	".json":     JSON,
	".xml":      XML,
	".txt":      Plain,
	".pdf":      PDF,
	".gif":      GIF,
	".webp":     WEBP,
	".ico":      ICO,
	".zip":      ZIP,
	".gz":       GZIP,
}

// ByExtension returns a MIME corresponding to the extension of the passed
// path. The lookup is case-insensitive, unknown and empty extensions fall
// back to application/octet-stream
func ByExtension(path string) MIME {
	ext := filepath.Ext(path)
	if m, found := Extension[ext]; found {
		return m
	}
	if m, found := Extension[strings.ToLower(ext)]; found {
		return m
	}

	return OctetStream
}
