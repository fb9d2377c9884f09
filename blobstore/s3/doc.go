// Package s3 implements blobstore.BlobStore backed by Amazon S3.
//
// Reads use HTTP range requests so partial loads never transfer the whole
// object; writes stream through the SDK's managed uploader, which switches
// to multipart uploads for large snapshots.
//
// The Catalog type adds versioned snapshot tracking on top of the store,
// using DynamoDB conditional writes for the atomic latest-version pointer
// that S3 itself cannot provide.
package s3
