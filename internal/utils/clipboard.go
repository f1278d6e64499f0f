package utils

import "github.com/atotto/clipboard"

// CopyToClipboard places text on the system clipboard.
func CopyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// PasteFromClipboard reads the current clipboard text.
func PasteFromClipboard() (string, error) {
	return clipboard.ReadAll()
}
