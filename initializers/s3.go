package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	s3client "wbl-portal-backend/s3"
)

func InitS3() {
	minioClient, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("error initializing S3 client")
		return
	}

	// connectivity check
	_, err = minioClient.ListBuckets(context.Background())
	if err != nil {
		log.WithError(err).Error("S3 connection failed, ListBuckets returned an error")
	}

	s3client.Client = minioClient
	log.Info("S3 client initialized")
}
