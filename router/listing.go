package router

import (
	"html"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/indigo-web/fileserve/http"
	"github.com/indigo-web/fileserve/http/mime"
	"github.com/indigo-web/fileserve/http/status"
)

// listing renders the contents of a directory without an index file, the way
// ancient web servers do. Directories get a trailing slash. With
// Accept: application/json the listing is returned as a plain JSON array
func (s *Static) listing(request *http.Request, dir string) *http.Response {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return http.Error(request, status.ErrInternalServerError)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}

		names = append(names, name)
	}
	sort.Strings(names)

	if strings.Contains(request.Headers.Value("accept"), mime.JSON) {
		return request.Respond().JSON(names)
	}

	return request.Respond().
		ContentType(mime.HTML).
		String(renderListing(request.Path, names))
}

func renderListing(path string, names []string) string {
	title := "Directory listing for " + html.EscapeString(path)

	b := new(strings.Builder)
	b.WriteString("<!DOCTYPE HTML>\n<html>\n<head>\n<title>")
	b.WriteString(title)
	b.WriteString("</title>\n</head>\n<body>\n<h1>")
	b.WriteString(title)
	b.WriteString("</h1>\n<hr>\n<ul>\n")

	for _, name := range names {
		// the href needs percent-encoding on top of the HTML escaping, or
		// names containing #, ? or % produce links to nowhere. The trailing
		// slash of directories must survive it
		href := (&url.URL{Path: name}).EscapedPath()

		b.WriteString(`<li><a href="`)
		b.WriteString(html.EscapeString(href))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(name))
		b.WriteString("</a></li>\n")
	}

	b.WriteString("</ul>\n<hr>\n</body>\n</html>\n")

	return b.String()
}
