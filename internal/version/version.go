package version

// Version is the current version of voiceterm.
const Version = "0.4.1"
