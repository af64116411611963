package apiframework

// Version is stamped at build time via -ldflags.
var Version = "unknown"

// GetVersion reports the build version of the running binary.
func GetVersion() string {
	return Version
}

// AboutServer is the payload of the /version endpoint.
type AboutServer struct {
	Version        string `json:"version"`
	NodeInstanceID string `json:"nodeInstanceID"`
}
