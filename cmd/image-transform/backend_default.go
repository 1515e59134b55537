//go:build !vips

package main

import (
	"github.com/ironsheep/image-transform/internal/config"
	"github.com/ironsheep/image-transform/internal/imaging"
	"github.com/ironsheep/image-transform/internal/primitive"
)

const backendName = imaging.BackendName

func newBackend(*config.Config) primitive.Backend {
	return imaging.NewBackend()
}
