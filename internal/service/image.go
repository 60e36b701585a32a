package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/MakarovPetr2004/foodgram-project-react/config"
)

// ImageStore persists image bytes and returns a retrievable URL.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, ext string) (string, error)
}

// DecodedImage is the result of parsing a base64 data URI.
type DecodedImage struct {
	Ext  string
	Data []byte
}

const dataURIPrefix = "data:image/"

// ParseDataURI decodes a self-describing image payload of the form
// "data:image/<ext>;base64,<payload>", preserving the extension. ok is false
// when the value is not a data URI at all (an opaque reference), which is not
// an error.
func ParseDataURI(value string) (*DecodedImage, bool, error) {
	if !strings.HasPrefix(value, dataURIPrefix) {
		return nil, false, nil
	}

	rest := strings.TrimPrefix(value, dataURIPrefix)
	ext, payload, found := strings.Cut(rest, ";base64,")
	if !found || ext == "" {
		return nil, true, fmt.Errorf("malformed image data URI")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, true, fmt.Errorf("invalid base64 image payload: %w", err)
	}
	return &DecodedImage{Ext: ext, Data: data}, true, nil
}

// ResolveImage turns the request's image value into a stored URL. Data URIs
// are decoded and uploaded; anything else is treated as an opaque reference
// and passed through unchanged. With no store configured data URIs are kept
// verbatim so the record is still usable.
func ResolveImage(ctx context.Context, store ImageStore, value string) (string, error) {
	decoded, isDataURI, err := ParseDataURI(value)
	if err != nil {
		return "", err
	}
	if !isDataURI || store == nil {
		return value, nil
	}
	return store.Upload(ctx, decoded.Data, decoded.Ext)
}

// S3ImageStore uploads recipe images to S3 under a random object key.
type S3ImageStore struct {
	s3Config *config.S3Config
}

func NewS3ImageStore(s3Config *config.S3Config) *S3ImageStore {
	return &S3ImageStore{s3Config: s3Config}
}

func (s *S3ImageStore) Upload(ctx context.Context, data []byte, ext string) (string, error) {
	fileName := fmt.Sprintf("recipes/images/%s.%s", uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/" + ext),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageStore] uploaded image to %s", publicURL)
	return publicURL, nil
}
