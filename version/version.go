package version

// Version is the current release, overridable at build time with
// -ldflags "-X vakta/version.Version=x.y.z".
var Version = "0.3.0"
