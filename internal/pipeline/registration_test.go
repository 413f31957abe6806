package pipeline

import (
	"testing"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRegistration(t *testing.T) {
	ctrl := gomock.NewController(t)

	in := inputHandler(ctrl, "cleanup")
	out := outputHandler(ctrl, "zip")
	dual := mocks.NewMockDualHandler(ctrl)
	dual.EXPECT().Name().Return("info").AnyTimes()

	tests := []struct {
		name string
		reg  Registration
		cap  Capability
		id   string
	}{
		{"input", Input(in), CapabilityInput, "cleanup"},
		{"output", Output(out), CapabilityOutput, "zip"},
		{"dual", Dual(dual), CapabilityBoth, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.cap, tt.reg.Capability())
			assert.Equal(t, tt.id, tt.reg.Name())
			assert.True(t, tt.reg.valid())
		})
	}
}

func TestRegistration_Invalid(t *testing.T) {
	var zero Registration
	assert.False(t, zero.valid())
	assert.Empty(t, zero.Name())
	assert.Equal(t, "none", zero.Capability().String())

	assert.False(t, Input(nil).valid())
	assert.False(t, Output(nil).valid())
}

func TestCapability_String(t *testing.T) {
	assert.Equal(t, "input", CapabilityInput.String())
	assert.Equal(t, "output", CapabilityOutput.String())
	assert.Equal(t, "both", CapabilityBoth.String())
}

func TestAdvance(t *testing.T) {
	o := &domain.PublishOutcome{State: domain.StateConfigured}

	assert.NoError(t, advance(o, domain.StateRunningInputHandlers))
	assert.Error(t, advance(o, domain.StateSucceeded))
	assert.NoError(t, advance(o, domain.StateBuilding))
	assert.NoError(t, advance(o, domain.StateFailed))
	assert.True(t, o.State.IsTerminal())
	assert.Error(t, advance(o, domain.StateBuilding))

	assert.Equal(t, []domain.RunState{
		domain.StateRunningInputHandlers,
		domain.StateBuilding,
		domain.StateFailed,
	}, o.Transitions)
}
