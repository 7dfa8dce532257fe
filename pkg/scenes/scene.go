package scenes

import (
	"github.com/decker502/starfield/pkg/game"
)

// Scene is a type alias for game.Scene so callers can stay within this package.
type Scene = game.Scene

var (
	_ Scene           = (*BackgroundScene)(nil)
	_ game.Disposable = (*BackgroundScene)(nil)
)
