// Package feed is the HTTP client behind the feed component.
//
// An endpoint serves a small JSON object with the text to show and an
// optional colour. The client sends Accept and User-Agent headers, treats
// any status >= 400 as an error and bounds the request time and the
// response size. Polling cadence and backoff live in the app package.
package feed
