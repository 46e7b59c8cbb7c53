package client

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	appConfig "codetogether-api/internal/config"
)

// AvatarUploadExpiry is how long a presigned avatar upload URL stays valid
const AvatarUploadExpiry = 5 * time.Minute

var allowedAvatarExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// ObjectStorage defines the object storage operations used for user avatars
type ObjectStorage interface {
	GenerateAvatarUploadURL(ctx context.Context, userID uuid.UUID, fileName, contentType string) (string, string, error)
	ObjectExists(ctx context.Context, key string) (bool, error)
	DeleteFile(ctx context.Context, key string) error
	GetFileURL(key string) string
}

// S3Client wraps the AWS S3 client and implements ObjectStorage
type S3Client struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	region        string
	endpoint      string
}

// NewS3Client creates a new S3 client. A custom endpoint (MinIO) switches to path-style addressing.
func NewS3Client(cfg *appConfig.S3Config) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}
	if cfg.Endpoint != "" && (cfg.AccessKey == "" || cfg.SecretKey == "") {
		return nil, fmt.Errorf("access key and secret key are required for a custom endpoint")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Client{
		client:        s3Client,
		presignClient: s3.NewPresignClient(s3Client),
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		endpoint:      cfg.Endpoint,
	}, nil
}

// avatarRootPrefix holds every user's avatar prefix
const avatarRootPrefix = "avatars/"

// StoredObject is an object listed from the bucket
type StoredObject struct {
	Key          string
	LastModified time.Time
}

// AvatarKeyPrefix is the key prefix under which a user's avatars are stored
func AvatarKeyPrefix(userID uuid.UUID) string {
	return fmt.Sprintf("%s%s/", avatarRootPrefix, userID)
}

// GenerateAvatarKey builds avatars/{userId}/{yyyy}/{mm}/{uuid}{ext}
func GenerateAvatarKey(userID uuid.UUID, fileName string) (string, error) {
	ext := strings.ToLower(path.Ext(fileName))
	if !allowedAvatarExts[ext] {
		return "", fmt.Errorf("unsupported avatar file type: %q", ext)
	}
	now := time.Now().UTC()
	return fmt.Sprintf("%s%s/%s/%s%s", AvatarKeyPrefix(userID), now.Format("2006"), now.Format("01"), uuid.NewString(), ext), nil
}

// GenerateAvatarUploadURL returns a presigned PUT URL and the object key it targets
func (c *S3Client) GenerateAvatarUploadURL(ctx context.Context, userID uuid.UUID, fileName, contentType string) (string, string, error) {
	key, err := GenerateAvatarKey(userID, fileName)
	if err != nil {
		return "", "", err
	}

	req, err := c.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = AvatarUploadExpiry
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return req.URL, key, nil
}

// AvatarOwner parses the user ID out of an avatar key
func AvatarOwner(key string) (uuid.UUID, bool) {
	rest, ok := strings.CutPrefix(key, avatarRootPrefix)
	if !ok {
		return uuid.Nil, false
	}
	owner, _, found := strings.Cut(rest, "/")
	if !found {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(owner)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ListAvatarObjects lists every object under the avatar prefix, following pagination
func (c *S3Client) ListAvatarObjects(ctx context.Context) ([]StoredObject, error) {
	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(avatarRootPrefix),
	})

	var objects []StoredObject
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list avatar objects: %w", err)
		}
		for _, obj := range page.Contents {
			objects = append(objects, StoredObject{
				Key:          aws.ToString(obj.Key),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}
	return objects, nil
}

// ObjectExists reports whether key has been uploaded
func (c *S3Client) ObjectExists(ctx context.Context, key string) (bool, error) {
	_, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object: %w", err)
	}
	return true, nil
}

// DeleteFile deletes an object from S3
func (c *S3Client) DeleteFile(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// GetFileURL returns the public URL for a key
func (c *S3Client) GetFileURL(key string) string {
	if c.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(c.endpoint, "/"), c.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}
