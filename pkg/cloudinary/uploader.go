package cloudinary

import (
	"bytes"
	"context"
	"errors"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/yigaglobal/fellowship_service/internal/interfaces"
)

// CloudinaryStorage stores resumes as raw assets so pdf/doc uploads are
// kept byte-for-byte. The public id doubles as the opaque ref.
type CloudinaryStorage struct {
	cld *cld.Cloudinary
}

func NewCloudinaryStorage(cloud *cld.Cloudinary) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cloud}
}

func (u *CloudinaryStorage) UploadBytes(
	ctx context.Context,
	folder string,
	filename string,
	b []byte,
) (*interfaces.StoredFile, error) {
	reader := bytes.NewReader(b)

	res, err := u.cld.Upload.Upload(
		ctx,
		reader,
		uploader.UploadParams{
			Folder:       folder,
			PublicID:     filename,
			ResourceType: "raw",
		},
	)
	if err != nil {
		return nil, err
	}

	return &interfaces.StoredFile{
		Ref: res.PublicID,
		URL: res.SecureURL,
	}, nil
}

func (u *CloudinaryStorage) Delete(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}

	res, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     ref,
		ResourceType: "raw",
	})
	if err != nil {
		return err
	}
	if res.Result != "ok" && res.Result != "not found" {
		return errors.New("cloudinary destroy failed: " + res.Result)
	}
	return nil
}
