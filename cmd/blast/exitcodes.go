package main

// Exit codes
const (
	ExitSuccess     = 0 // Success, including a get/delete/open of a missing key
	ExitError       = 1 // General error (I/O failure, usage error, open failure)
	ExitConfigError = 2 // Configuration error (unreadable or invalid config file)
	ExitInvalidKey  = 3 // Key does not match <word1>[.<word2>]
	ExitNotFound    = 4 // move source key does not exist
)
