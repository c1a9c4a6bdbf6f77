package splashutil

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DefaultIconSize is used for icons whose directory carries no size.
const DefaultIconSize = 38

// iconExts are the raster formats the loader can decode. Scalable icons are
// never considered.
var iconExts = []string{".png", ".gif", ".jpg", ".jpeg", ".bmp"}

// IconTheme resolves bare icon names to files in freedesktop icon theme
// directories.
type IconTheme struct {
	// Dirs are the icon base directories, searched in order.
	Dirs []string
	// Themes are the theme names tried in each base directory.
	Themes []string
}

// DefaultIconTheme searches ~/.icons, $XDG_DATA_DIRS/icons and
// /usr/share/pixmaps, with $SPLASH_ICON_THEME ahead of hicolor.
func DefaultIconTheme() IconTheme {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".icons"))
	}
	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, d := range filepath.SplitList(dataDirs) {
		if d != "" {
			dirs = append(dirs, filepath.Join(d, "icons"))
		}
	}
	dirs = append(dirs, "/usr/share/pixmaps")

	var themes []string
	if t := os.Getenv("SPLASH_ICON_THEME"); t != "" {
		themes = append(themes, t)
	}
	themes = append(themes, "hicolor")
	return IconTheme{Dirs: dirs, Themes: themes}
}

type iconMatch struct {
	path string
	size int
}

// Lookup finds name and reports the icon's base size, or 0 when the
// directory does not say. The smallest sized match wins.
func (t IconTheme) Lookup(name string) (string, int, bool) {
	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		return "", 0, false
	}
	for _, dir := range t.Dirs {
		for _, theme := range t.Themes {
			if m := t.lookupTheme(filepath.Join(dir, theme), name); len(m) > 0 {
				return m[0].path, m[0].size, true
			}
		}
		// Unthemed icons directly in the base directory.
		for _, ext := range iconExts {
			p := filepath.Join(dir, name+ext)
			if isFile(p) {
				return p, 0, true
			}
		}
	}
	return "", 0, false
}

func (t IconTheme) lookupTheme(root, name string) []iconMatch {
	var out []iconMatch
	for _, ext := range iconExts {
		// <theme>/<size>/<context>/<name>.<ext>
		paths, _ := filepath.Glob(filepath.Join(root, "*", "*", name+ext))
		for _, p := range paths {
			sizeDir := filepath.Base(filepath.Dir(filepath.Dir(p)))
			size, ok := parseIconSize(sizeDir)
			if !ok || !isFile(p) {
				continue
			}
			out = append(out, iconMatch{path: p, size: size})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i].size) < rank(out[j].size)
	})
	return out
}

// rank orders sized icons first, smallest first.
func rank(size int) int {
	if size <= 0 {
		return int(^uint(0) >> 1)
	}
	return size
}

// parseIconSize understands "48x48", "48x48@2" and "48". Scalable and
// symbolic directories are rejected.
func parseIconSize(dir string) (int, bool) {
	if dir == "scalable" || dir == "symbolic" {
		return 0, false
	}
	dir, _, _ = strings.Cut(dir, "@")
	w, _, _ := strings.Cut(dir, "x")
	n, err := strconv.Atoi(w)
	if err != nil {
		return 0, true
	}
	return n, true
}

func isFile(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}
