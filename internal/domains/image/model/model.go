package model

const (
	EntityName = "image"

	DefaultFolder    = "rooms"
	DefaultMaxSizeMB = 5
)

var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// extensions for base64 uploads, which carry a media type instead of a file name
var contentTypeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

func ExtensionFor(contentType string) string {
	return contentTypeExtensions[contentType]
}
