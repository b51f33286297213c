// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client; link run reports are archived as JSON objects
// so that the outcome of each scheduled run can be inspected after the fact.
// Both AWS S3 and self-hosted MinIO are supported.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
