package version

// Version is the current release of lingomap.
const Version = "v0.4.2"
