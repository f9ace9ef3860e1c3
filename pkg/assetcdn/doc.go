// Package assetcdn provides an asset-serving service with strong-validator
// cache semantics and an append-only per-asset version ledger.
//
// It exposes a single Service interface that orchestrates ingest
// (fingerprinting, blob storage, ledger insertion), conditional download
// (ETag validation, cache-control policy), and publishing of version
// records. Implementations of repositories (memory, Postgres) and blob
// stores (memory, filesystem, S3) are provided under subpackages and are
// injected at construction; the service itself holds no process-wide state.
//
// Cache Semantics
//
// An asset's ETag is the quoted SHA-256 fingerprint of the exact bytes
// stored under its storage key and never changes for the lifetime of the
// stored object. A download carrying an If-None-Match value that matches
// the ETag byte-for-byte is answered without touching the blob store.
// Cache-Control directives are policy-driven by the asset's privacy flag:
// private assets are never shareable, public assets carry a two-tier
// freshness window (shared caches longer, clients shorter).
package assetcdn
