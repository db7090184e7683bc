package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSinkTypes(t *testing.T) {
	assert.Equal(t, []string{"influx", "mqtt", "nop", "prometheus"}, SinkTypes())
}
