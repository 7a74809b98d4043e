package host

import (
	"errors"
	"testing"

	"github.com/genradar/genradar/internal/sensor"
	"github.com/genradar/genradar/internal/view"
	"github.com/genradar/genradar/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRadar struct {
	initErr     error
	registerErr error

	inits, registers, unregisters int
	center                        *core.Point
}

func (f *fakeRadar) InitAndUpdateWithPoints(center *core.Point, _ []core.Point) error {
	f.inits++
	f.center = center
	return f.initErr
}

func (f *fakeRadar) RegisterListeners() error {
	f.registers++
	return f.registerErr
}

func (f *fakeRadar) UnregisterListeners() { f.unregisters++ }

var centerPoint = core.NewPoint("Center Point", 33.683232, 72.988972, 0, 1.2, core.Transparent)

func TestScreen_ResumePauseCalledOnce(t *testing.T) {
	r := &fakeRadar{}
	s := NewScreen(r, nil)
	require.NoError(t, s.OnCreate(centerPoint, nil))

	require.NoError(t, s.OnResume())
	require.NoError(t, s.OnResume())
	assert.Equal(t, 1, r.registers)
	assert.True(t, s.Resumed())

	s.OnPause()
	s.OnPause()
	assert.Equal(t, 1, r.unregisters)
	assert.False(t, s.Resumed())

	require.NoError(t, s.OnResume())
	assert.Equal(t, 2, r.registers)
}

func TestScreen_ResumeBeforeCreate(t *testing.T) {
	r := &fakeRadar{}
	s := NewScreen(r, nil)

	assert.ErrorIs(t, s.OnResume(), ErrNotCreated)
	assert.Equal(t, 0, r.registers)
}

func TestScreen_CreateError(t *testing.T) {
	r := &fakeRadar{initErr: &core.ConfigError{Field: "center", Reason: "bad"}}
	s := NewScreen(r, nil)

	err := s.OnCreate(centerPoint, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrConfiguration))
	assert.Error(t, s.OnResume())
}

func TestScreen_RegisterErrorStaysPaused(t *testing.T) {
	r := &fakeRadar{registerErr: errors.New("boom")}
	s := NewScreen(r, nil)
	require.NoError(t, s.OnCreate(centerPoint, nil))

	require.Error(t, s.OnResume())
	assert.False(t, s.Resumed())

	s.OnPause()
	assert.Equal(t, 0, r.unregisters)
}

func TestScreen_WithView(t *testing.T) {
	compass := sensor.NewManual()
	v, err := view.New(view.Config{
		Viewport:          core.Viewport{Width: 120, Height: 120},
		MaxDistanceMeters: 1000,
		Smoothing:         1,
	}, view.Dependencies{Heading: compass})
	require.NoError(t, err)

	s := NewScreen(v, nil)
	imcb := core.NewPoint("IMCB", 33.688210, 72.991315, 0, 1.2, core.Blue)
	require.NoError(t, s.OnCreate(centerPoint, []core.Point{imcb}))

	for i := 0; i < 3; i++ {
		require.NoError(t, s.OnResume())
		assert.Equal(t, 1, compass.Active())
		s.OnPause()
		assert.Equal(t, 0, compass.Active())
	}
}
