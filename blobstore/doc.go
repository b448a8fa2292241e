// Package blobstore abstracts the byte store used to ship extraction
// artifacts between execution units: encoded field descriptors and segment
// column snapshots.
//
// Implementations must be safe for concurrent use.
//
//   - MemoryStore: in-memory, for tests
//   - LocalStore: local filesystem with atomic writes
//   - s3.Store: Amazon S3 with streaming multipart uploads
//   - minio.Store: MinIO and other S3-compatible object stores
package blobstore
