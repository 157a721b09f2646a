package model

// FileMatch is a file found by the scanner together with the pattern its
// base name satisfied.
type FileMatch struct {
	Path    string
	Pattern string
}
