// Package branding centralizes product identity strings shared by the
// service surfaces.
package branding

// AppName is the product name shown on user-facing surfaces.
const AppName = "SignBridge"

// Version is the published API version reported by service meta endpoints.
const Version = "1.0.0"
