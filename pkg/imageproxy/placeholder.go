package imageproxy

// placeholderSVG is served whenever a thumbnail can't be produced, so a
// failed upstream call never breaks page layout with a broken-image icon.
var placeholderSVG = []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="400" height="400" viewBox="0 0 400 400">` +
	`<rect width="400" height="400" fill="#E8E8E8"/>` +
	`<rect x="120" y="140" width="160" height="120" rx="8" fill="#BDBDBD"/>` +
	`<circle cx="165" cy="180" r="14" fill="#E8E8E8"/>` +
	`<path d="M135 245 L185 195 L215 225 L240 200 L265 245 Z" fill="#E8E8E8"/>` +
	`</svg>`)

const placeholderContentType = "image/svg+xml"
