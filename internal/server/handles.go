package server

import (
	"fmt"
	"sync"

	"github.com/ironsheep/image-transform/internal/transform"
)

// Registry maps tool-facing handle strings to open images.
//
// Registry is safe for concurrent use. The images it holds are not: callers
// must not run two operations on the same image at once.
type Registry struct {
	mu     sync.RWMutex
	next   int
	images map[string]*transform.Image
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		images: make(map[string]*transform.Image),
	}
}

// Add stores img and returns its new handle. Handles are never reused.
func (r *Registry) Add(img *transform.Image) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	id := fmt.Sprintf("img-%d", r.next)
	r.images[id] = img
	return id
}

// Get looks up an open image by handle.
func (r *Registry) Get(id string) (*transform.Image, error) {
	r.mu.RLock()
	img, ok := r.images[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown image handle: %q", id)
	}
	return img, nil
}

// Release closes the image behind id and forgets the handle.
func (r *Registry) Release(id string) error {
	r.mu.Lock()
	img, ok := r.images[id]
	delete(r.images, id)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("unknown image handle: %q", id)
	}
	return img.Close()
}

// Clear closes every open image. The first Close error is returned after all
// images have been released.
func (r *Registry) Clear() error {
	r.mu.Lock()
	images := r.images
	r.images = make(map[string]*transform.Image)
	r.mu.Unlock()

	var first error
	for _, img := range images {
		if err := img.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Len returns the number of open images.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.images)
}
