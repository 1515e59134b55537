// Package transform turns declarative transform requests into image
// operations: resize in Fill, Fit or Crop mode, gravity and entropy-driven
// crops, rounded-corner alpha masking, Gaussian blur and encoding.
//
// Pixel work is delegated to a primitive.Backend. This package owns the
// arithmetic around it: scale factors and anchors, the iterative smart crop,
// and bit-depth-aware alpha compositing.
//
// # Lifecycle
//
// A Context is initialised once per process with Init and hands out Images
// through Decode. Each Image owns one backend image and mutates it in place,
// one operation at a time. The Context refuses to shut down while Images are
// open.
//
//	ctx, err := transform.Init("thumbnailer", 0, imaging.NewBackend())
//	img, err := ctx.Decode(data)
//	defer img.Close()
//	err = img.Resize(400, 0, transform.ResizeFit)
//	err = img.Crop(200, 200, transform.GravityCenter)
//	err = img.Round(20, 20)
//	out, err := img.ToBuffer(".png", 0, true)
//
// # Errors
//
// Every failure is an *Error carrying the operation, a kind (ErrDecode,
// ErrTransform, ErrConfig, ErrEncode, ErrState) and a cause, and is also
// written to the Context's logger. A failed operation leaves its Image
// unchanged.
package transform
