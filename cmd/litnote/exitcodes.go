package main

// Exit codes
const (
	ExitSuccess             = 0 // Success
	ExitError               = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError         = 2 // Configuration error (missing directories, invalid paths)
	ExitMetadataUnavailable = 3 // The DOI resolved to no metadata; nothing was written
)
