package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fjacquet/flatbot/internal/logging"
)

func TestAllowed(t *testing.T) {
	log := &logging.MockLogger{}
	allow := New([]int64{100, 200}, log)

	assert.True(t, allow.Allowed(100))
	assert.True(t, allow.Allowed(200))
	assert.False(t, allow.Allowed(300))
}

func TestDeniedAttemptIsLogged(t *testing.T) {
	log := &logging.MockLogger{}
	allow := New([]int64{100}, log)

	allow.Allowed(999)
	assert.NotEmpty(t, log.Entries)
	assert.Equal(t, "WARN", log.Entries[0].Level)
}

func TestEmptyAllowlistDeniesEveryone(t *testing.T) {
	allow := New(nil, &logging.MockLogger{})
	assert.False(t, allow.Allowed(1))
}
