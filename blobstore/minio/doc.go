// Package minio implements blobstore.BlobStore for MinIO and other
// S3-compatible object stores, useful for on-prem clusters shipping
// extraction artifacts without AWS.
package minio
