// FilePath: internal/hubservice/hubservice.relay_test.go
package hubservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"
)

func newTestRelay() *models.Relay {
	r := &models.Relay{
		ID:       "relay12ab34",
		Hardware: "gpio-dimmer",
		Name:     "heat lamp",
		Wattage:  200,
		Flow:     50,
	}
	r.RefreshCapabilities()
	return r
}

func TestRecordRelayStateDropsRepeats(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	relay := newTestRelay()
	env.relays.relays[relay.ID] = relay

	if _, err := env.svc.RecordRelayState(context.Background(), relay.ID, float(100), false); err != nil {
		t.Fatalf("RecordRelayState failed: %v", err)
	}
	env.clock.advance(time.Minute)
	if _, err := env.svc.RecordRelayState(context.Background(), relay.ID, float(100), false); err != nil {
		t.Fatalf("RecordRelayState failed: %v", err)
	}

	if len(env.relayHistory.rows) != 1 {
		t.Fatalf("repeated value must not append a row, got %d rows", len(env.relayHistory.rows))
	}
}

func TestRecordRelayStateForceBypassesDedupe(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	relay := newTestRelay()
	env.relays.relays[relay.ID] = relay

	if _, err := env.svc.RecordRelayState(context.Background(), relay.ID, float(100), false); err != nil {
		t.Fatalf("RecordRelayState failed: %v", err)
	}
	env.clock.advance(time.Minute)
	if _, err := env.svc.RecordRelayState(context.Background(), relay.ID, float(100), true); err != nil {
		t.Fatalf("RecordRelayState failed: %v", err)
	}

	if len(env.relayHistory.rows) != 2 {
		t.Fatalf("forced write must append a row, got %d rows", len(env.relayHistory.rows))
	}
}

func TestRecordRelayStateRecordsChanges(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	relay := newTestRelay()
	env.relays.relays[relay.ID] = relay

	for i, v := range []float64{100, 0, 50} {
		if _, err := env.svc.RecordRelayState(context.Background(), relay.ID, float(v), false); err != nil {
			t.Fatalf("RecordRelayState #%d failed: %v", i, err)
		}
		env.clock.advance(time.Second)
	}

	if len(env.relayHistory.rows) != 3 {
		t.Fatalf("expected 3 state changes, got %d rows", len(env.relayHistory.rows))
	}
}

func TestRecordRelayStateDerivesPowerAndFlow(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	relay := newTestRelay()
	env.relays.relays[relay.ID] = relay

	if _, err := env.svc.RecordRelayState(context.Background(), relay.ID, float(50), false); err != nil {
		t.Fatalf("RecordRelayState failed: %v", err)
	}

	row := env.relayHistory.rows[0]
	if row.Wattage != 100 {
		t.Fatalf("50%% of 200W should be 100, got %v", row.Wattage)
	}
	if row.Flow != 25 {
		t.Fatalf("50%% of 50 l/m should be 25, got %v", row.Flow)
	}
}

func TestRecordRelayStateNilValueIsNoOp(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	relay := newTestRelay()
	env.relays.relays[relay.ID] = relay

	if _, err := env.svc.RecordRelayState(context.Background(), relay.ID, nil, false); err != nil {
		t.Fatalf("nil value should be dropped silently, got %v", err)
	}
	if len(env.relayHistory.rows) != 0 {
		t.Fatalf("nil value must not create a row")
	}
}

func TestGetRelayStateResolvesCurrentValue(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	relay := newTestRelay()
	env.relays.relays[relay.ID] = relay

	if _, err := env.svc.RecordRelayState(context.Background(), relay.ID, float(50), false); err != nil {
		t.Fatalf("RecordRelayState failed: %v", err)
	}

	state, err := env.svc.GetRelayState(context.Background(), relay.ID)
	if err != nil {
		t.Fatalf("GetRelayState failed: %v", err)
	}
	if state.Error {
		t.Fatalf("relay with a fresh state change must not be in error")
	}
	if !state.On || state.Off {
		t.Fatalf("value 50 means on, got on=%v off=%v", state.On, state.Off)
	}
	if state.Wattage != 100 || state.Flow != 25 {
		t.Fatalf("expected derived wattage 100 and flow 25, got %v / %v", state.Wattage, state.Flow)
	}
	if state.Kind != "dimmer" {
		t.Fatalf("gpio-dimmer hardware must resolve as dimmer, got %q", state.Kind)
	}
}

func TestGetRelayStateIgnoresStaleHistory(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	relay := newTestRelay()
	env.relays.relays[relay.ID] = relay

	if _, err := env.svc.RecordRelayState(context.Background(), relay.ID, float(100), false); err != nil {
		t.Fatalf("RecordRelayState failed: %v", err)
	}
	env.clock.advance(66 * time.Minute)

	state, err := env.svc.GetRelayState(context.Background(), relay.ID)
	if err != nil {
		t.Fatalf("GetRelayState failed: %v", err)
	}
	if !state.Error {
		t.Fatalf("relay silent for 66 minutes must be in error")
	}
	if state.On {
		t.Fatalf("stale relay must read as off")
	}
	if state.Wattage != 0 || state.Flow != 0 {
		t.Fatalf("stale relay must have zero wattage and flow")
	}
}

func TestRecordRelayStateDedupesAgainstFreshWindowOnly(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	relay := newTestRelay()
	env.relays.relays[relay.ID] = relay

	if _, err := env.svc.RecordRelayState(context.Background(), relay.ID, float(100), false); err != nil {
		t.Fatalf("RecordRelayState failed: %v", err)
	}
	env.clock.advance(66 * time.Minute)

	// The old row has aged out of the window, so the same value counts
	// as a fresh change.
	if _, err := env.svc.RecordRelayState(context.Background(), relay.ID, float(100), false); err != nil {
		t.Fatalf("RecordRelayState failed: %v", err)
	}
	if len(env.relayHistory.rows) != 2 {
		t.Fatalf("value repeated after the window must append, got %d rows", len(env.relayHistory.rows))
	}
}

func TestRecordButtonStateDedupesAndForces(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	button := &models.Button{ID: "button12ab34", Hardware: "gpio", Name: "door contact"}
	env.buttons.buttons[button.ID] = button

	if _, err := env.svc.RecordButtonState(context.Background(), button.ID, float(1), false); err != nil {
		t.Fatalf("RecordButtonState failed: %v", err)
	}
	env.clock.advance(time.Minute)
	if _, err := env.svc.RecordButtonState(context.Background(), button.ID, float(1), false); err != nil {
		t.Fatalf("RecordButtonState failed: %v", err)
	}
	if len(env.buttonHistory.rows) != 1 {
		t.Fatalf("repeated value must not append, got %d rows", len(env.buttonHistory.rows))
	}

	if _, err := env.svc.RecordButtonState(context.Background(), button.ID, float(1), true); err != nil {
		t.Fatalf("RecordButtonState failed: %v", err)
	}
	if len(env.buttonHistory.rows) != 2 {
		t.Fatalf("forced write must append, got %d rows", len(env.buttonHistory.rows))
	}
}

func TestGetButtonStateWithoutHistory(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	button := &models.Button{ID: "button12ab34", Hardware: "gpio", Name: "door contact"}
	env.buttons.buttons[button.ID] = button

	state, err := env.svc.GetButtonState(context.Background(), button.ID)
	if err != nil {
		t.Fatalf("GetButtonState failed: %v", err)
	}
	if !state.Error || state.Value != nil {
		t.Fatalf("button without history must be in error with nil value")
	}
}

func TestRecordButtonStateUnknownButton(t *testing.T) {
	env := newTestEnv(models.MergeAverage)

	_, err := env.svc.RecordButtonState(context.Background(), "missing", float(1), false)
	if !errors.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestUpdateRelayAffectsDerivedPower(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	relay := newTestRelay()
	env.relays.relays[relay.ID] = relay

	updated, err := env.svc.UpdateRelay(context.Background(), relay.ID, &models.Relay{Wattage: 400})
	if err != nil {
		t.Fatalf("UpdateRelay failed: %v", err)
	}
	if updated.Wattage != 400 {
		t.Fatalf("expected Wattage 400 after update, got %v", updated.Wattage)
	}

	row, err := env.svc.RecordRelayState(context.Background(), relay.ID, float(50), true)
	if err != nil {
		t.Fatalf("RecordRelayState failed: %v", err)
	}
	if row.Wattage != 200 {
		t.Fatalf("expected 200W at 50%% of the updated rating, got %v", row.Wattage)
	}
}
