package interfaces

// OutputHandler manages destinations for the session summary
type OutputHandler interface {
	// WriteToClipboard copies content to the system clipboard
	WriteToClipboard(content string) error

	// WriteToStdout writes content to standard output
	WriteToStdout(content string) error

	// WriteToFile writes content to the specified file path
	WriteToFile(content string, path string) error
}
