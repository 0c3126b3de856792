package activity

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]{7}$`)

func TestNewIDFormat(t *testing.T) {
	assert.Regexp(t, hexPattern, NewID("Standup", fixedNow))
}

func TestNewIDDeterministic(t *testing.T) {
	assert.Equal(t, NewID("Standup", fixedNow), NewID("Standup", fixedNow))
}

func TestNewIDVaries(t *testing.T) {
	assert.NotEqual(t, NewID("Standup", fixedNow), NewID("Standup", fixedNow.Add(time.Nanosecond)))
	assert.NotEqual(t, NewID("Standup", fixedNow), NewID("Review", fixedNow))
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("abc1234"))
	assert.True(t, validID("my-id_2"))
	assert.False(t, validID(""))
	assert.False(t, validID("../x"))
	assert.False(t, validID("a/b"))
	assert.False(t, validID("a.json"))
}
