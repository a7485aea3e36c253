//go:build unit

package room_test

import (
	"testing"

	"roombook/internal/domain/room"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	t.Run("valid room set", func(t *testing.T) {
		r, err := room.NewRegistry([]string{"EVEREST", "K2", "KINABALU"})
		require.NoError(t, err)

		assert.True(t, r.Exists("EVEREST"))
		assert.True(t, r.Exists("K2"))
		assert.False(t, r.Exists("FUJI"))
		assert.False(t, r.Exists("everest"))
		assert.Equal(t, []string{"EVEREST", "K2", "KINABALU"}, r.Rooms())
	})

	cases := []struct {
		name  string
		ids   []string
		errIs error
	}{
		{name: "underscores and digits OK", ids: []string{"ROOM_1", "B2"}},
		{name: "empty set", ids: nil, errIs: room.ErrNoRooms},
		{name: "lowercase rejected", ids: []string{"everest"}, errIs: room.ErrInvalidRoomID},
		{name: "leading digit rejected", ids: []string{"1ROOM"}, errIs: room.ErrInvalidRoomID},
		{name: "blank id rejected", ids: []string{""}, errIs: room.ErrInvalidRoomID},
		{name: "duplicate rejected", ids: []string{"K2", "K2"}, errIs: room.ErrDuplicateRoomID},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := room.NewRegistry(c.ids)
			if c.errIs == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}

func TestRegistryRoomsIsACopy(t *testing.T) {
	r, err := room.NewRegistry([]string{"EVEREST", "K2"})
	require.NoError(t, err)

	rooms := r.Rooms()
	rooms[0] = "MUTATED"

	assert.Equal(t, []string{"EVEREST", "K2"}, r.Rooms())
}
