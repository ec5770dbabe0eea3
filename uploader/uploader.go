package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	cldupload "github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	defaultFolder = "indie-blog"

	// delivery transforms applied when reconstructing a display URL
	transformSegment = "q_auto,f_auto"
)

// Config carries the image-service credentials. It is passed explicitly to
// New so nothing in this package reads globals at init time.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

func ConfigFromEnv() Config {
	return Config{
		CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		Folder:    os.Getenv("CLOUDINARY_FOLDER"),
	}
}

// ImageUploader accepts an image stream and returns a stable reference
// string. The reference is what gets persisted; the full display URL is
// reconstructed at render time with URL.
type ImageUploader interface {
	Upload(ctx context.Context, r io.Reader) (string, error)
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
	cfg Config
}

func New(cfg Config) (*CloudinaryUploader, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("uploader: missing cloudinary credentials")
	}
	if cfg.Folder == "" {
		cfg.Folder = defaultFolder
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryUploader{cld: cld, cfg: cfg}, nil
}

// Upload streams the image to the remote asset store under the configured
// folder and returns a reference in the form v<version>/<publicId>.<format>.
// Transport and provider-side failures both surface as errors; the caller
// treats them as fatal for the current submission.
func (u *CloudinaryUploader) Upload(ctx context.Context, r io.Reader) (string, error) {
	res, err := u.cld.Upload.Upload(ctx, r, cldupload.UploadParams{Folder: u.cfg.Folder})
	if err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", errors.New(res.Error.Message)
	}
	return ImageRef(res.Version, res.PublicID, res.Format), nil
}

// URL rebuilds the display URL for a stored reference.
func (u *CloudinaryUploader) URL(ref string) string {
	return DisplayURL(u.cfg.CloudName, ref)
}

func ImageRef(version int, publicID, format string) string {
	return fmt.Sprintf("v%d/%s.%s", version, publicID, format)
}

func DisplayURL(cloudName, ref string) string {
	if ref == "" {
		return ""
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s/%s", cloudName, transformSegment, ref)
}
