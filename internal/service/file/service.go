package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/presensia/attendance-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

type FileService interface {
	// UploadScanPhoto stores the kiosk frame captured with an
	// attendance scan and returns the storage path.
	UploadScanPhoto(ctx context.Context, employeeID, day string, frame []byte) (string, error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadScanPhoto compresses the frame to at most 150KB and stores it
// under scans/{day}/{employeeID}-{uuid}.jpg.
func (s *fileServiceImpl) UploadScanPhoto(ctx context.Context, employeeID, day string, frame []byte) (string, error) {
	compressed, err := compressJPEG(frame, 150*1024)
	if err != nil {
		return "", fmt.Errorf("failed to compress scan photo: %w", err)
	}

	path := fmt.Sprintf("scans/%s/%s-%s.jpg", day, employeeID, uuid.New().String())

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(compressed), path, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload scan photo: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

// compressJPEG re-encodes an image until it fits maxSize, first by
// lowering quality, then by downscaling.
func compressJPEG(buffer []byte, maxSize int) ([]byte, error) {
	if len(buffer) <= maxSize {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	compressed := buffer
	for quality := 85; quality >= 50; quality -= 5 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		compressed = buf.Bytes()
		if len(compressed) <= maxSize {
			return compressed, nil
		}
	}

	bounds := img.Bounds()
	ratio := math.Sqrt(float64(maxSize) / float64(len(compressed)))
	width := max(int(float64(bounds.Dx())*ratio), 320)
	height := max(int(float64(bounds.Dy())*ratio), 240)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, dst, &jpeg.Options{Quality: 70}); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}

	return buf.Bytes(), nil
}
