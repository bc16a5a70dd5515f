// Package detail implements the artist page state: fetching the record for
// the current identifier, tab selection, and the render decision.
//
// Fetches are tagged with a generation token. A result is applied only if
// its token is still current, so a slow response for an earlier identifier
// can never overwrite the record of a later one:
//
//	req, ok := ctrl.OnIdentifierAvailable(ctx, id)
//	if ok {
//	    go func() { results <- ctrl.Fetch(req) }()
//	}
//	...
//	ctrl.Apply(<-results) // false when stale
package detail
