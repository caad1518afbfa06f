package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestLogLevelFor(t *testing.T) {
	assert.Equal(t, logger.Info, LogLevelFor("development"))
	assert.Equal(t, logger.Silent, LogLevelFor("test"))
	assert.Equal(t, logger.Warn, LogLevelFor("production"))
}
