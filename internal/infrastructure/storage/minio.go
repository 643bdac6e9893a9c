// Package storage sube documentos a object storage compatible con S3.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tu-usuario/admisiones-pro/internal/application/ports"
)

// Config parámetros de conexión al object storage.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL base para construir la URL durable devuelta al caller
	// (CDN o el propio endpoint). Sin barra final.
	PublicBaseURL string
}

// Client implementa ports.FileStorage sobre MinIO/S3.
type Client struct {
	mc     *minio.Client
	bucket string
	base   string
}

var _ ports.FileStorage = (*Client)(nil)

// NewClient conecta al storage y asegura que el bucket exista.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("conectando a object storage: %w", err)
	}

	exists, err := mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("verificando bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("creando bucket %s: %w", cfg.Bucket, err)
		}
	}

	base := cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	return &Client{mc: mc, bucket: cfg.Bucket, base: base}, nil
}

// Upload sube el objeto y devuelve su URL durable.
func (c *Client) Upload(ctx context.Context, objectName, contentType string, size int64, r io.Reader) (string, error) {
	_, err := c.mc.PutObject(ctx, c.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("subiendo %s: %w", objectName, err)
	}
	return c.base + "/" + objectName, nil
}
