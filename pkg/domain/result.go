package domain

import "time"

// Result summarizes a successful generation.
type Result struct {
	Request        Request       `json:"request"`
	PackagePath    string        `json:"package_path"`
	EntryPath      string        `json:"entry_path"`
	ModulesWritten int           `json:"modules_written"`
	Duration       time.Duration `json:"duration"`
}

// File is a single planned output file, relative to the package directory.
type File struct {
	Name    string `json:"name"`
	Content []byte `json:"content"`
}
