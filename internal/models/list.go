package models

// ListDirRequest represents a request to list a directory under the served root.
type ListDirRequest struct {
	// Path is relative to the root. Empty means the root itself.
	Path string
}

// ListingResult is the JSON body of a successful listing.
// Files keeps the order the file system enumerated the entries in.
type ListingResult struct {
	Files []string `json:"files"`
}
