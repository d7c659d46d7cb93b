package templatestorage

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"wbl-portal-backend/config"
	s3client "wbl-portal-backend/s3"
)

// Provider serves the raw form template bytes. Templates are fetched fresh on
// every render so an uploaded revision takes effect immediately; nothing is
// cached here.
type Provider interface {
	GetTemplate(ctx context.Context, key string) ([]byte, error)
	PutTemplate(ctx context.Context, key string, file []byte) error
	MakeBucket(ctx context.Context) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		client: s3client.Client,
	}
	if s3client.Client != nil {
		if err := Instance.MakeBucket(context.Background()); err != nil {
			log.WithError(err).Error("error ensuring template bucket")
		}
	}
}

type impl struct {
	client *minio.Client
}

func (i impl) GetTemplate(ctx context.Context, key string) ([]byte, error) {
	if i.client == nil {
		return nil, errors.New("template storage is not configured")
	}
	obj, err := i.client.GetObject(ctx, config.Conf.S3.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "error fetching template %s", key)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading template %s", key)
	}
	return data, nil
}

func (i impl) PutTemplate(ctx context.Context, key string, file []byte) error {
	if i.client == nil {
		return errors.New("template storage is not configured")
	}
	_, err := i.client.PutObject(ctx, config.Conf.S3.BucketName, key,
		bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"})
	if err != nil {
		return errors.Wrapf(err, "error storing template %s", key)
	}
	return nil
}

func (i impl) MakeBucket(ctx context.Context) error {
	if i.client == nil {
		return errors.New("template storage is not configured")
	}
	bucketName := config.Conf.S3.BucketName
	exists, err := i.client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return i.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: "us-east-1"})
}
