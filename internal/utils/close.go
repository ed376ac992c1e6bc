package utils

import (
	"io"

	"github.com/MrSnakeDoc/index/internal/logger"
)

// CloseLogged closes c and logs a failure under what. Meant for defers on
// shutdown paths where there is nothing left to do with the error.
func CloseLogged(c io.Closer, log logger.Logger, what string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("resource", what), logger.Error(err))
	}
}
