package markup

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/avinava/panelhost/internal/registry"
	"github.com/avinava/panelhost/internal/shared/id"
)

// ErrAssetMissing is wrapped when a bundled asset cannot be resolved at
// render time. The caller surfaces it as a user-facing notification and
// aborts the open.
var ErrAssetMissing = fmt.Errorf("bundled asset not found")

// pageTemplate is the fixed document skeleton: one mount element, one
// stylesheet link, one nonce-guarded script tag. The content policy denies
// every source by default; only the bundled stylesheet and the script
// carrying the current nonce may load.
var pageTemplate = template.Must(template.New("panel").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta http-equiv="Content-Security-Policy" content="default-src 'none'; style-src {{.StyleURI}}; script-src 'nonce-{{.Nonce}}'; connect-src {{.ConnectSrc}};">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<link rel="stylesheet" href="{{.StyleURI}}">
	<title>{{.Title}}</title>
</head>
<body>
	<div id="root"></div>
	<script nonce="{{.Nonce}}" src="{{.ScriptURI}}"></script>
</body>
</html>
`))

// Document is a rendered panel page plus the nonce it was rendered with.
type Document struct {
	HTML  string
	Nonce string
}

// Generator renders panel documents for registered kinds.
type Generator struct {
	registry   *registry.Registry
	assetRoot  string // directory holding the bundled assets
	assetBase  string // URI prefix the surface loads assets from
	connectSrc string // origin the surface may open its channel to
}

// NewGenerator creates a markup generator.
//
// assetRoot is where bundled assets live on disk, assetBase the URI prefix
// they are served under, connectSrc the sole origin the surface may connect
// back to.
func NewGenerator(reg *registry.Registry, assetRoot, assetBase, connectSrc string) *Generator {
	return &Generator{
		registry:   reg,
		assetRoot:  assetRoot,
		assetBase:  assetBase,
		connectSrc: connectSrc,
	}
}

// RenderDocument produces the document for a panel kind with a fresh
// nonce. Each call generates a new nonce; no two renders share one.
func (g *Generator) RenderDocument(kind string) (Document, error) {
	k, ok := g.registry.Get(kind)
	if !ok {
		return Document{}, fmt.Errorf("unknown panel kind %s", kind)
	}

	for _, asset := range []string{k.Script, k.Style} {
		if err := g.resolve(asset); err != nil {
			return Document{}, err
		}
	}

	nonce := id.NewNonce()

	var b strings.Builder
	err := pageTemplate.Execute(&b, struct {
		Title      string
		Nonce      string
		ScriptURI  string
		StyleURI   string
		ConnectSrc string
	}{
		Title:      k.Title,
		Nonce:      nonce,
		ScriptURI:  g.assetURI(k.Script),
		StyleURI:   g.assetURI(k.Style),
		ConnectSrc: g.connectSrc,
	})
	if err != nil {
		return Document{}, fmt.Errorf("failed to render panel %s: %w", kind, err)
	}

	return Document{HTML: b.String(), Nonce: nonce}, nil
}

// Render satisfies panel.Renderer.
func (g *Generator) Render(kind string) (string, error) {
	doc, err := g.RenderDocument(kind)
	if err != nil {
		return "", err
	}
	return doc.HTML, nil
}

// resolve checks that a bundled asset exists on disk.
func (g *Generator) resolve(asset string) error {
	path := filepath.Join(g.assetRoot, filepath.FromSlash(asset))
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrAssetMissing, asset)
	}
	return nil
}

func (g *Generator) assetURI(asset string) string {
	return strings.TrimSuffix(g.assetBase, "/") + "/" + asset
}
