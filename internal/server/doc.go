// Package server exposes the HTTP surface: feedback collection API,
// dashboard aggregates, health and metrics endpoints, and the
// websocket change event stream.
package server
