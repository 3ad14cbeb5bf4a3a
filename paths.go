package tileable

import (
	"path/filepath"
	"strings"
)

// OutputPath derives the default output path: <stem>_tileable<ext>
func OutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_tileable" + ext
}

// PreviewPath derives the preview path from the output path by replacing
// the first '.' of the file name with "_preview.". Directory components
// are left alone so relative paths like ./out.png stay valid. A name
// without a dot gets the suffix appended.
func PreviewPath(output string) string {
	dir, name := filepath.Split(output)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return dir + name[:i] + "_preview" + name[i:]
	}
	return dir + name + "_preview"
}
