package aws

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"triphub/src/lib"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type UploadURL struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	PublicURL string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

func ImageKey(prefix string, contentType string) string {
	ext, ok := extensions[contentType]
	if !ok {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%s.%s", strings.Trim(prefix, "/"), uuid.New().String(), ext)
}

// S3PresignImageUpload returns a URL the browser can PUT the image to.
func S3PresignImageUpload(ctx context.Context, prefix string, contentType string) (*UploadURL, error) {
	assetsBucket := os.Getenv("S3_ASSETS_BUCKET")
	client := lib.AWSGetS3Client()
	if client == nil {
		return nil, fmt.Errorf("s3 client unavailable")
	}
	key := ImageKey(prefix, contentType)
	ttl := 15 * time.Minute
	pre := s3.NewPresignClient(client)
	r, err := pre.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(assetsBucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(po *s3.PresignOptions) {
		po.Expires = ttl
	})
	if err != nil {
		return nil, fmt.Errorf("could not generate presigned URL for object [%s]: %w", key, err)
	}
	return &UploadURL{
		URL:       r.URL,
		Key:       key,
		PublicURL: fmt.Sprintf("https://%s.s3.amazonaws.com/%s", assetsBucket, key),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}
