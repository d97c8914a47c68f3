package models

import "strings"

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

// IsAllowedImageType reports whether a Content-Type may be stored as a
// product image. Parameters such as charset are ignored.
func IsAllowedImageType(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	_, ok := allowedImageTypes[strings.ToLower(strings.TrimSpace(mediaType))]
	return ok
}
