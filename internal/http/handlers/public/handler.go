package public

import "github.com/huong-next/internal/provider"

// Handler serves storefront, guest and customer APIs.
type Handler struct {
	*provider.Container
}

// New creates the storefront handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
