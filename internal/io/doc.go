// Package ioutils provides file system and image helpers for the gallery
// export.
//
// # File Operations
//
//	dir := filepath.Join(root, ioutils.SanitizeFileName(artist.Name))
//	err := ioutils.WriteFile(filepath.Join(dir, "portrait.jpg"), data)
//
// # Image Processing
//
//	thumb, err := ioutils.Thumbnail(data, 800)
package ioutils
