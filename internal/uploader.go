package internal

import (
	"context"
	"errors"
	"fmt"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"io"
	"strings"
)

const imagesBucket = "images"

// GridUploader keeps uploaded images in a GridFS bucket of the service database.
type GridUploader struct {
	bucket  *gridfs.Bucket
	baseUrl string
}

// NewGridUploader returns an uploader whose URLs are baseUrl + "/images/<id>".
func NewGridUploader(m *MongoDB, baseUrl string) (*GridUploader, error) {
	bucket, err := gridfs.NewBucket(m.client.Database(m.database), options.GridFSBucket().SetName(imagesBucket))
	if err != nil {
		return nil, fmt.Errorf("open bucket: %w", err)
	}
	return &GridUploader{
		bucket:  bucket,
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
	}, nil
}

func (u *GridUploader) Upload(_ context.Context, name string, content io.Reader) (string, error) {
	id, err := u.bucket.UploadFromStream(name, content)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return fmt.Sprintf("%s/images/%s", u.baseUrl, id.Hex()), nil
}

func (u *GridUploader) Download(_ context.Context, id string, w io.Writer) error {
	fileId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	if _, err = u.bucket.DownloadToStream(fileId, w); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
