package exporters

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// stylesheetAssetKey is the manifest asset file the page template links.
const stylesheetAssetKey = "stylesheet"

// rendererConfigFromSelection flattens a theme selection into the renderer
// configuration html_page consumes. Variant tokens, templates, and assets
// override their base-manifest counterparts.
func rendererConfigFromSelection(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	tokens := copyStringMap(manifest.Tokens)
	partials := copyStringMap(manifest.Templates)
	files := copyStringMap(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		mergeStringMap(tokens, variant.Tokens)
		mergeStringMap(partials, variant.Templates)
		mergeStringMap(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, files),
	}
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return strings.TrimSuffix(prefix, "/") + "/" + file
	}
}

// applyThemeView folds the theme configuration into a page view context.
func applyThemeView(view map[string]any, cfg *theme.RendererConfig) {
	if cfg == nil {
		return
	}
	view["theme"] = cfg.Theme
	view["variant"] = cfg.Variant
	view["css_vars"] = cssVarsStyle(cfg.CSSVars)
	if cfg.AssetURL != nil {
		view["stylesheet"] = cfg.AssetURL(stylesheetAssetKey)
	}
}

// cssVarsStyle emits the custom-property block for the page head. Keys sort
// so repeated exports stay byte-identical.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func copyStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeStringMap(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}
