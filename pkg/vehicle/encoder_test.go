package vehicle

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/navigatorx-core/pkg"
	"github.com/lintang-b-s/navigatorx-core/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodingManagerRegister(t *testing.T) {
	car := NewCarFlagEncoder(3)
	bike := NewBikeFlagEncoder(3)
	assert.False(t, car.IsRegistered())

	em, err := NewEncodingManager(car, bike)
	require.NoError(t, err)
	assert.True(t, car.IsRegistered())
	assert.True(t, bike.IsRegistered())
	assert.Equal(t, "car,bike", em.String())
	assert.Equal(t, []FlagEncoder{car, bike}, em.GetEncoders())
	assert.True(t, em.Supports("bike"))
	assert.False(t, em.Supports("foot"))

	enc, err := em.GetEncoder("car")
	require.NoError(t, err)
	assert.Same(t, car, enc)

	_, err = em.GetEncoder("foot")
	assert.True(t, errors.Is(err, util.ErrNotFound))

	t.Run("already registered", func(t *testing.T) {
		_, err := NewEncodingManager(car)
		assert.True(t, errors.Is(err, util.ErrConfiguration))
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := NewEncodingManager(NewCarFlagEncoder(3), NewCarFlagEncoder(5))
		assert.True(t, errors.Is(err, util.ErrConfiguration))
	})

	t.Run("out of turn bits", func(t *testing.T) {
		encoders := make([]FlagEncoder, 0)
		for i := 0; i < 40; i++ {
			encoders = append(encoders, NewFlagEncoder(string(rune('a'+i)), 3))
		}
		_, err := NewEncodingManager(encoders...)
		assert.True(t, errors.Is(err, util.ErrConfiguration))
	})
}

func TestNewEncoderByName(t *testing.T) {
	enc, err := NewEncoderByName("bike", 3)
	require.NoError(t, err)
	assert.Equal(t, "bike", enc.Name())

	_, err = NewEncoderByName("hovercraft", 3)
	assert.True(t, errors.Is(err, util.ErrConfiguration))
}

func TestAccessFlags(t *testing.T) {
	car := NewCarFlagEncoder(3)
	bike := NewBikeFlagEncoder(3)
	_, err := NewEncodingManager(car, bike)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		forward  bool
		backward bool
	}{
		{name: "oneway", forward: true},
		{name: "oneway against", backward: true},
		{name: "both", forward: true, backward: true},
		{name: "none"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			access := car.AccessFlags(tt.forward, tt.backward)
			assert.Equal(t, tt.forward, car.IsForward(access))
			assert.Equal(t, tt.backward, car.IsBackward(access))
			// bits of other encoders are untouched
			assert.False(t, bike.IsForward(access))
			assert.False(t, bike.IsBackward(access))
		})
	}
}

func TestTurnFlags(t *testing.T) {
	car := NewCarFlagEncoder(3)
	bike := NewBikeFlagEncoder(3)
	_, err := NewEncodingManager(car, bike)
	require.NoError(t, err)

	t.Run("restricted", func(t *testing.T) {
		flags := bike.TurnFlags(true, 0)
		assert.True(t, bike.IsTurnRestricted(flags))
		assert.False(t, car.IsTurnRestricted(flags))
		assert.Equal(t, pkg.INF_TURN_COST, bike.GetTurnCost(flags))
		assert.Equal(t, 0.0, car.GetTurnCost(flags))
	})

	t.Run("cost below max", func(t *testing.T) {
		flags := car.TurnFlags(false, 1.6)
		assert.False(t, car.IsTurnRestricted(flags))
		assert.Equal(t, 2.0, car.GetTurnCost(flags))
	})

	t.Run("cost at max is a restriction", func(t *testing.T) {
		flags := car.TurnFlags(false, 7)
		assert.True(t, car.IsTurnRestricted(flags))
		assert.Equal(t, pkg.INF_TURN_COST, car.GetTurnCost(flags))
	})

	t.Run("no flags", func(t *testing.T) {
		assert.False(t, car.IsTurnRestricted(pkg.NO_TURN_FLAGS))
		assert.False(t, bike.IsTurnRestricted(pkg.NO_TURN_FLAGS))
	})

	t.Run("merged flags of two encoders", func(t *testing.T) {
		flags := car.TurnFlags(false, 1) | bike.TurnFlags(true, 0)
		assert.False(t, car.IsTurnRestricted(flags))
		assert.Equal(t, 1.0, car.GetTurnCost(flags))
		assert.True(t, bike.IsTurnRestricted(flags))
	})
}
