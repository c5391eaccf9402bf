package export

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lantern/internal/config"

	_ "image/jpeg"
	_ "image/png"
)

// Assets caches decoded per-animal artwork.
type Assets struct {
	mu     sync.Mutex
	images map[string]image.Image
}

// LoadAssets decodes every animal's artwork concurrently, waiting at most
// timeout per file. A missing, corrupt, or slow file is logged and skipped;
// the renderer draws a badge for that animal instead.
func LoadAssets(ctx context.Context, dir string, animals []config.AnimalSpec, timeout time.Duration, log *zap.Logger) *Assets {
	a := &Assets{images: make(map[string]image.Image)}
	if dir == "" {
		return a
	}
	if log == nil {
		log = zap.NewNop()
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, animal := range animals {
		if animal.Art == "" {
			continue
		}
		g.Go(func() error {
			img, err := loadImage(ctx, filepath.Join(dir, animal.Art), timeout)
			if err != nil {
				log.Debug("artwork unavailable, badge fallback",
					zap.String("animal", animal.Name),
					zap.Error(err))
				return nil
			}
			a.mu.Lock()
			a.images[animal.Name] = img
			a.mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return a
}

// Image returns the decoded artwork for an animal, if it loaded.
func (a *Assets) Image(animal string) (image.Image, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	img, ok := a.images[animal]
	return img, ok
}

func loadImage(ctx context.Context, path string, timeout time.Duration) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		img image.Image
		err error
	}
	ch := make(chan result, 1)
	go func() {
		f, err := os.Open(path)
		if err != nil {
			ch <- result{err: err}
			return
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		ch <- result{img: img, err: err}
	}()

	select {
	case r := <-ch:
		return r.img, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("artwork load gave up: %w", ctx.Err())
	}
}
