package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/disintegration/imaging"
	"github.com/ecosenseai/ecosense/config"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

const (
	MaxImageSize  = 10 * 1024 * 1024
	MaxImageCount = 5
	feedWidth     = 1080
	thumbWidth    = 320
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// MediaService processes report photos: validate, downscale, store.
// Files go to S3 when a bucket is configured, otherwise to the local
// uploads directory.
type MediaService interface {
	ProcessReportImages(files []*multipart.FileHeader) ([]string, error)
}

type mediaService struct {
	Config *config.Config
}

func NewMediaService(conf *config.Config) MediaService {
	return &mediaService{Config: conf}
}

func validateImage(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxImageSize {
		return fmt.Errorf("file %s exceeds limit of %d bytes", fileHeader.Filename, MaxImageSize)
	}
	mimeType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[mimeType] {
		return fmt.Errorf("invalid file type: %s", mimeType)
	}
	return nil
}

func (m *mediaService) ProcessReportImages(files []*multipart.FileHeader) ([]string, error) {
	if len(files) > MaxImageCount {
		return nil, fmt.Errorf("at most %d images per report", MaxImageCount)
	}

	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		if err := validateImage(fileHeader); err != nil {
			return nil, err
		}

		file, err := fileHeader.Open()
		if err != nil {
			return nil, errors.Wrap(err, "opening uploaded file")
		}

		img, err := imaging.Decode(file)
		file.Close()
		if err != nil {
			return nil, errors.Wrap(err, "decoding image")
		}

		// Phone cameras routinely produce 4000px-wide photos;
		// downscale before storage. Thumbnails keep the dashboard
		// map pins light.
		if img.Bounds().Dx() > feedWidth {
			img = resize.Resize(feedWidth, 0, img, resize.Lanczos3)
		}
		thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)

		key := fmt.Sprintf("reports/%s.jpg", uuid.New().String())
		url, err := m.store(img, key)
		if err != nil {
			return nil, err
		}
		thumbKey := strings.Replace(key, "reports/", "reports/thumbs/", 1)
		if _, err := m.store(thumb, thumbKey); err != nil {
			return nil, err
		}

		urls = append(urls, url)
	}

	return urls, nil
}

func (m *mediaService) store(img image.Image, key string) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return "", errors.Wrap(err, "encoding jpeg")
	}

	if m.Config.S3Bucket == "" {
		return m.storeLocal(buf.Bytes(), key)
	}
	return m.storeS3(buf.Bytes(), key)
}

func (m *mediaService) storeLocal(data []byte, key string) (string, error) {
	path := filepath.Join(m.Config.UploadDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(err, "creating upload directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, "writing image file")
	}
	return "/" + filepath.ToSlash(path), nil
}

func (m *mediaService) createS3Client() (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(m.Config.AwsRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			m.Config.AwsAccessKeyID,
			m.Config.AwsSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func (m *mediaService) storeS3(data []byte, key string) (string, error) {
	client, err := m.createS3Client()
	if err != nil {
		return "", err
	}

	_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(m.Config.S3Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
		ACL:    types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Config.S3Bucket, m.Config.AwsRegion, key), nil
}
