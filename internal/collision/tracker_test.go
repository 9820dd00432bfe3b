package collision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTracker_Track(t *testing.T) {
	tr := NewTracker(4)

	require.Equal(t, New, tr.Track("scan=1", 1))
	require.Equal(t, New, tr.Track("scan=2", 2))
	require.Equal(t, Duplicate, tr.Track("scan=1", 1))
	require.Equal(t, Collision, tr.Track("scan=3", 1))
	require.Equal(t, Collision, tr.Track("scan=3", 1))
	require.Equal(t, 2, tr.Collisions())
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker(0)
	tr.Track("a", 7)
	tr.Track("b", 7)
	require.Equal(t, 1, tr.Collisions())

	tr.Reset()
	require.Zero(t, tr.Collisions())
	require.Equal(t, New, tr.Track("b", 7))
}
