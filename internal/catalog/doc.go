// Package catalog is the data source for the gallery: an HTTP client for the
// users/albums/photos JSON API and the typed identifiers shared by every other
// package.
//
// # Endpoints
//
//	GET {base}/users/                  all users
//	GET {base}/albums?userId=N         albums of one user
//	GET {base}/photos?albumId=N        photos of one album
//	GET {base}/photos?id=A&id=B&       bulk fetch (favorites)
//	GET {base}/photos?id=N             single photo, one-element array
//
// The query parameter for child lists is the parent's identifier text, so
// ID.String() ("userId=1") is used verbatim as the raw query.
//
// # Errors
//
// Every failure is a *LoadError carrying an ErrorKind (network, timeout,
// http status, decode, not found). Each request is bounded by the client
// timeout (30 seconds unless configured otherwise).
//
// # Images
//
// ProbeImage stands in for an image element's load/error events: it fetches
// the image, checks the status and decodes the header. Probes share a rate
// limiter so that expanding a large album does not flood the image host.
package catalog
