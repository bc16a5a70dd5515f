// Package gallery exports an artist's portrait and gallery images to disk.
//
// # Saver
//
// The Saver downloads the portrait (images[0]) and the bounded gallery
// slice (images[1..6]) concurrently:
//
//	saver := gallery.NewSaver(settings, client, func(e gallery.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//	summary, err := saver.Save(ctx, artist)
//	fmt.Println(summary) // "6 images (1.2 MB) in ~/Pictures/AllOfArt/Claude Monet"
//
// # Concurrency
//
// gallery_concurrency limits parallel downloads. Failed downloads are
// retried gallery_retries times with exponential backoff. A failed image
// does not stop the others.
//
// # Resizing
//
// With gallery_max_size > 0 every image is scaled to fit and stored as
// JPEG.
package gallery
