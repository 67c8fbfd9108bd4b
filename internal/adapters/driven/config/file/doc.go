// Package file provides file-based configuration and prompt storage.
// Configuration lives in a TOML file, prompts in user-editable text files
// with embedded defaults.
package file
