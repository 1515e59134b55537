//go:build vips

package main

import (
	"log"

	"github.com/ironsheep/image-transform/internal/config"
	"github.com/ironsheep/image-transform/internal/primitive"
	"github.com/ironsheep/image-transform/internal/vips"
)

const backendName = vips.BackendName

func newBackend(cfg *config.Config) primitive.Backend {
	return vips.NewBackend(log.Default(), cfg.Debug())
}
