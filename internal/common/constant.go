package common

// AuthorizationHeaderName carries the bearer access token on inbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the access token in the Authorization header.
const BearerPrefix = "Bearer "

// MaxUploadSize is the largest prescription image accepted, in bytes.
const MaxUploadSize = 16 << 20

// AllowedImageExtensions lists prescription file extensions, lower-case and
// without the leading dot.
var AllowedImageExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"bmp":  {},
	"webp": {},
}
