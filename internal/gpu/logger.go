package gpu

import (
	"log/slog"

	"github.com/gogpu/glyphfill"
)

// slogger returns the logger shared with the root package.
// All logging in internal/gpu goes through this function.
func slogger() *slog.Logger { return glyphfill.Logger() }
