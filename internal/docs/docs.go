package docs

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/russross/blackfriday/v2"
)

// PagesFS holds the Markdown help pages served under /docs.
//
//go:embed pages/*.md
var PagesFS embed.FS

// ErrPageNotFound is returned for codes with no embedded page.
var ErrPageNotFound = errors.New("help page not found")

// Page describes one help page.
type Page struct {
	Code  string
	Title string
}

// Provider reads help pages from the embedded filesystem
type Provider struct {
	fsys fs.FS
}

func NewProvider() *Provider {
	return &Provider{fsys: PagesFS}
}

// GetPage returns the raw Markdown of a page.
func (p *Provider) GetPage(code string) ([]byte, error) {
	if code == "" || strings.ContainsAny(code, `/\.`) {
		return nil, fmt.Errorf("%w: %q", ErrPageNotFound, code)
	}
	content, err := fs.ReadFile(p.fsys, "pages/"+code+".md")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrPageNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read embedded page %s: %w", code, err)
	}
	return content, nil
}

// GetAllPages lists the available pages, index first.
func (p *Provider) GetAllPages() ([]Page, error) {
	entries, err := fs.ReadDir(p.fsys, "pages")
	if err != nil {
		return nil, err
	}
	var pages []Page
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		code := strings.TrimSuffix(name, ".md")
		content, err := p.GetPage(code)
		if err != nil {
			return nil, err
		}
		page := Page{Code: code, Title: title(content, code)}
		if code == "index" {
			pages = append([]Page{page}, pages...)
			continue
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// Render converts a page to HTML.
func (p *Provider) Render(code string) (Page, template.HTML, error) {
	content, err := p.GetPage(code)
	if err != nil {
		return Page{}, "", err
	}
	html := blackfriday.Run(content, blackfriday.WithExtensions(blackfriday.CommonExtensions|blackfriday.AutoHeadingIDs))
	return Page{Code: code, Title: title(content, code)}, template.HTML(html), nil
}

// title is the text of the first level-one heading.
func title(content []byte, fallback string) string {
	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return fallback
}
