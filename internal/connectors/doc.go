// Package connectors provides clients for external literature sources.
// Each connector knows how to search and fetch from a specific upstream;
// pubmed is the only source today.
package connectors
