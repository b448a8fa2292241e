// Package s3 implements blobstore.BlobStore on Amazon S3.
//
// Uploads stream through a pipe into a multipart manager.Uploader, so large
// snapshots never have to be buffered in memory. An optional rate limiter
// caps upload throughput when extraction shares a link with serving
// traffic.
package s3
