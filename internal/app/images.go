package app

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

// DataURL encodes an in-memory file as data:<mime>;base64,<payload>.
func DataURL(f domain.ImageFile) string {
	return "data:" + f.MimeType + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}

// UploadImages pushes every file to the image host concurrently (at most limit
// in flight) and returns the hosted URLs in input order. The first failure
// cancels the remaining uploads and no URLs are returned.
func UploadImages(ctx context.Context, host domain.ImageHost, files []domain.ImageFile, limit int) ([]string, error) {
	urls := make([]string, len(files))
	if len(files) == 0 {
		return urls, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			u, err := host.Upload(gctx, DataURL(f))
			if err != nil {
				return fmt.Errorf("upload image %d (%s): %w", i, f.Name, err)
			}
			urls[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Int("files", len(files)).Msg("image upload failed")
		observability.ObserveUploads(err, 0)
		return nil, err
	}
	observability.ObserveUploads(nil, len(urls))
	return urls, nil
}
