// Package export dumps stored raw uplinks, one per line, so a stream can be
// re-fed to the ingester or archived elsewhere.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ttn-th-ingest/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Destination receives the complete export.
type Destination interface {
	Write(ctx context.Context, data []byte) error
}

type repository interface {
	LoadEventsByKind(ctx context.Context, kind model.EventKind) ([]model.Event, error)
}

// Kinds are exported in this order, each ordered by counter.
var Kinds = []model.EventKind{model.KindMeasurement, model.KindSupervisory}

type Exporter struct {
	repo repository
}

func New(repo repository) *Exporter {
	return &Exporter{repo: repo}
}

// Build returns the raw payload of every exported event, compacted to a
// single line each, and the number of events written.
func (e *Exporter) Build(ctx context.Context) ([]byte, int, error) {
	const fn = "Exporter:Build"
	var buf bytes.Buffer
	n := 0
	for _, kind := range Kinds {
		events, err := e.repo.LoadEventsByKind(ctx, kind)
		if err != nil {
			return nil, 0, fmt.Errorf("%s:%w", fn, err)
		}
		for _, ev := range events {
			// Stored payloads may be pretty-printed; each must stay on one line.
			if err := json.Compact(&buf, ev.RawPayload); err != nil {
				slog.WarnContext(ctx, "Skipping payload that is not valid JSON", "event_id", ev.ID, "kind", kind, "error", err)
				continue
			}
			buf.WriteByte('\n')
			n++
		}
	}
	return buf.Bytes(), n, nil
}

func (e *Exporter) Run(ctx context.Context, dest Destination) (int, error) {
	const fn = "Exporter:Run"
	data, n, err := e.Build(ctx)
	if err != nil {
		return 0, err
	}
	if err := dest.Write(ctx, data); err != nil {
		return 0, fmt.Errorf("%s:%w", fn, err)
	}
	return n, nil
}

type FileDestination struct {
	Path string
}

func (d FileDestination) Write(_ context.Context, data []byte) error {
	if dir := filepath.Dir(d.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := os.WriteFile(d.Path, data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// S3Destination writes the export to one object in an S3-compatible bucket.
type S3Destination struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Destination creates an S3 destination. A non-empty endpoint switches
// to path-style addressing (MinIO and similar).
func NewS3Destination(ctx context.Context, bucket, key, region, endpoint string) (*S3Destination, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var opts []func(*s3.Options)
	if endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}
	return &S3Destination{
		client: s3.NewFromConfig(cfg, opts...),
		bucket: bucket,
		key:    key,
	}, nil
}

func (d *S3Destination) Write(ctx context.Context, data []byte) error {
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(d.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		return fmt.Errorf("s3 put object: %w", err)
	}
	return nil
}
