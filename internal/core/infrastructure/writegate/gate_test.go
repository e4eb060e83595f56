package writegate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	wgif "github.com/billy1624/champ/pkg/interfaces/infrastructure/writegate"
)

func TestGate_Default_AllowsWrites(t *testing.T) {
	gate := New()

	assert.False(t, gate.IsReadOnly())
	assert.NoError(t, gate.AssertWriteAllowed(context.Background(), "AddBlock"))
	assert.Equal(t, wgif.Status{}, gate.Status())
}

func TestGate_ReadOnly_BlocksWritesUntilExit(t *testing.T) {
	// Arrange
	gate := New()

	// Act
	gate.EnterReadOnly("维护")
	err := gate.AssertWriteAllowed(context.Background(), "AddBlock")

	// Assert
	require.ErrorIs(t, err, wgif.ErrReadOnly)
	assert.Contains(t, err.Error(), "op=AddBlock")
	assert.Contains(t, err.Error(), "维护")
	status := gate.Status()
	assert.True(t, status.ReadOnly)
	assert.Equal(t, "维护", status.Reason)
	assert.False(t, status.Since.IsZero())

	gate.ExitReadOnly()
	assert.NoError(t, gate.AssertWriteAllowed(context.Background(), "AddBlock"))
	assert.Equal(t, wgif.Status{}, gate.Status())
}

func TestGate_ReenterReadOnly_KeepsSinceUpdatesReason(t *testing.T) {
	// Arrange
	g := &gateImpl{now: time.Now}
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return first }
	g.EnterReadOnly("a")

	// Act
	g.now = func() time.Time { return first.Add(time.Hour) }
	g.EnterReadOnly("b")

	// Assert
	status := g.Status()
	assert.Equal(t, "b", status.Reason)
	assert.Equal(t, first, status.Since)
}

func TestGate_ConcurrentToggle_IsRaceFree(t *testing.T) {
	gate := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				gate.EnterReadOnly("toggle")
			} else {
				gate.ExitReadOnly()
			}
			_ = gate.AssertWriteAllowed(context.Background(), "AddBlock")
			_ = gate.Status()
		}(i)
	}
	wg.Wait()
}

func TestModule_Stop_EntersReadOnly(t *testing.T) {
	// Arrange
	var gate wgif.WriteGate
	app := fxtest.New(t, Module(), fx.Populate(&gate))
	app.RequireStart()
	require.False(t, gate.IsReadOnly())

	// Act
	app.RequireStop()

	// Assert
	assert.True(t, gate.IsReadOnly())
	assert.Equal(t, ShutdownReason, gate.Status().Reason)
}
