// Package http provides the HTTP client shared by the artist fetcher and
// the gallery saver.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Mapping non-2xx responses to *StatusError
//   - JSON decoding
//
// # Basic Usage
//
//	client := http.NewClient(http.WithTimeout(10 * time.Second))
//
//	var artist model.Artist
//	if err := client.GetJSON(ctx, url, &artist); err != nil {
//	    var se *http.StatusError
//	    if errors.As(err, &se) && se.Code == 404 {
//	        // not found
//	    }
//	}
package http
