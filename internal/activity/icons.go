package activity

// * SVG path data per kind, drawn in a 24x24 viewBox
var icons = map[Kind]string{
	KindPush:        "M7 10l5 5 5-5H7z",
	KindCreate:      "M19 13h-6v6h-2v-6H5v-2h6V5h2v6h6v2z",
	KindWatch:       "M12 4.5C7 4.5 2.73 7.61 1 12c1.73 4.39 6 7.5 11 7.5s9.27-3.11 11-7.5c-1.73-4.39-6-7.5-11-7.5zM12 17c-2.76 0-5-2.24-5-5s2.24-5 5-5 5 2.24 5 5-2.24 5-5 5zm0-8c-1.66 0-3 1.34-3 3s1.34 3 3 3 3-1.34 3-3-1.34-3-3-3z",
	KindFork:        "M6 3a3 3 0 0 0-1 5.83V15.17A3 3 0 1 0 7 15.17V13h6a3 3 0 0 0 3-3V8.83A3 3 0 1 0 14 8.83V10a1 1 0 0 1-1 1H7V8.83A3 3 0 0 0 6 3z",
	KindPullRequest: "M6 3a3 3 0 0 0-1 5.83v6.34A3 3 0 1 0 7 15.17V8.83A3 3 0 0 0 6 3zm12 12.17V9a4 4 0 0 0-4-4h-1.59l1.3-1.29-1.42-1.42L8.59 6l3.7 3.71 1.42-1.42L12.41 7H14a2 2 0 0 1 2 2v6.17a3 3 0 1 0 2 0z",
}

const defaultIcon = "M13 16h-1v-4h-1m1-4h.01M21 12a9 9 0 11-18 0 9 9 0 0118 0z"

// Icon returns the SVG path for k, or the default glyph for unknown kinds.
func Icon(k Kind) string {
	if path, ok := icons[k]; ok {
		return path
	}
	return defaultIcon
}
