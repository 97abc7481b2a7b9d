package admin

import "github.com/huong-next/internal/provider"

// Handler serves back-office APIs.
type Handler struct {
	*provider.Container
}

// New creates the back-office handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
