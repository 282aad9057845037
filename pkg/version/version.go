package version

// Version is the current version of tana. It's set at build time with
// ldflags for release builds.
var Version = "development"
