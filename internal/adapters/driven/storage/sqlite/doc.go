// Package sqlite provides the persistent collection store.
//
// A single SQLite database file holds every collection: chunk rows carry
// the entry text, its embedding (computed by the bound embedding service
// at upsert time), and the fixed metadata schema as explicit columns.
// Topic completion markers live in their own table so a partially
// ingested topic is retried on the next run.
//
// Similarity queries are a brute-force cosine scan over the collection.
// Abstracts chunk into a few entries each, so collections stay small
// enough that a scan outperforms maintaining an approximate index.
package sqlite
