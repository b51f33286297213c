package linking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"osm-linker/core/reconcile"
	"osm-linker/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrReportNotFound is returned for unknown run ids.
var ErrReportNotFound = errors.New("report not found")

const reportPrefix = "reports/"

// Archive stores run reports in a bucket.
type Archive struct {
	client storage.Client
	bucket string
}

// NewArchive creates an archive over bucket.
func NewArchive(client storage.Client, bucket string) *Archive {
	return &Archive{client: client, bucket: bucket}
}

func reportKey(id string) string {
	return reportPrefix + id + ".json"
}

// Save uploads the report.
func (a *Archive) Save(ctx context.Context, report *reconcile.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report %s: %w", report.ID, err)
	}

	_, err = a.client.PutObject(ctx, a.bucket, reportKey(report.ID), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload report %s: %w", report.ID, err)
	}
	return nil
}

// Load downloads the report with the given id.
func (a *Archive) Load(ctx context.Context, id string) (*reconcile.RunReport, error) {
	if id == "" || strings.ContainsAny(id, "/\\") {
		return nil, ErrReportNotFound
	}

	obj, err := a.client.GetObject(ctx, a.bucket, reportKey(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, a.translate(id, err)
	}
	defer obj.Close()

	var report reconcile.RunReport
	if err := json.NewDecoder(obj).Decode(&report); err != nil {
		return nil, a.translate(id, err)
	}
	return &report, nil
}

func (a *Archive) translate(id string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrReportNotFound
	}
	return fmt.Errorf("failed to read report %s: %w", id, err)
}

// List returns the archived run ids in ascending order.
func (a *Archive) List(ctx context.Context) ([]string, error) {
	var ids []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: reportPrefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		name := path.Base(obj.Key)
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}
