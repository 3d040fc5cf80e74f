// Package handler implements the HTTP layer: request decoding, payload
// validation, service dispatch, and RFC 9457 problem responses.
package handler
