// FilePath: internal/hubservice/hubservice_test.go
package hubservice_test

import (
	"context"
	"time"

	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/hubservice"
	"github.com/vivaria/terrahub/internal/models"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type memSensorRepo struct {
	sensors map[string]*models.Sensor
}

func (m *memSensorRepo) Create(ctx context.Context, sensor *models.Sensor) error {
	m.sensors[sensor.ID] = sensor
	return nil
}

func (m *memSensorRepo) Get(ctx context.Context, id string) (*models.Sensor, error) {
	if s, ok := m.sensors[id]; ok {
		return s, nil
	}
	return nil, errors.NewNotFoundError("sensor not found", nil)
}

func (m *memSensorRepo) Update(ctx context.Context, sensor *models.Sensor) error {
	if _, ok := m.sensors[sensor.ID]; !ok {
		return errors.NewNotFoundError("sensor not found", nil)
	}
	m.sensors[sensor.ID] = sensor
	return nil
}

func (m *memSensorRepo) Delete(ctx context.Context, id string) error {
	delete(m.sensors, id)
	return nil
}

func (m *memSensorRepo) List(ctx context.Context) ([]*models.Sensor, error) {
	out := make([]*models.Sensor, 0, len(m.sensors))
	for _, s := range m.sensors {
		out = append(out, s)
	}
	return out, nil
}

type memSensorHistory struct {
	rows map[string]*models.SensorHistory

	// conflictOnce makes the next Insert fail with a conflict after
	// silently storing racer's row, to exercise the retry path.
	conflictOnce *models.SensorHistory
}

func bucketKey(id string, ts time.Time) string {
	return id + "/" + ts.UTC().Format(time.RFC3339)
}

func (m *memSensorHistory) Insert(ctx context.Context, row *models.SensorHistory) error {
	if m.conflictOnce != nil {
		racer := m.conflictOnce
		m.conflictOnce = nil
		m.rows[bucketKey(racer.SensorID, racer.Timestamp)] = racer
		return errors.NewConflictError("history bucket already exists", nil)
	}
	key := bucketKey(row.SensorID, row.Timestamp)
	if _, ok := m.rows[key]; ok {
		return errors.NewConflictError("history bucket already exists", nil)
	}
	copied := *row
	m.rows[key] = &copied
	return nil
}

func (m *memSensorHistory) UpdateBucket(ctx context.Context, row *models.SensorHistory) error {
	key := bucketKey(row.SensorID, row.Timestamp)
	if _, ok := m.rows[key]; !ok {
		return errors.NewNotFoundError("history bucket not found", nil)
	}
	copied := *row
	m.rows[key] = &copied
	return nil
}

func (m *memSensorHistory) GetBucket(ctx context.Context, sensorID string, ts time.Time) (*models.SensorHistory, error) {
	if row, ok := m.rows[bucketKey(sensorID, ts)]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, errors.NewNotFoundError("history bucket not found", nil)
}

func (m *memSensorHistory) LatestSince(ctx context.Context, sensorID string, min time.Time) (*models.SensorHistory, error) {
	var latest *models.SensorHistory
	for _, row := range m.rows {
		if row.SensorID != sensorID || row.Timestamp.Before(min) {
			continue
		}
		if latest == nil || row.Timestamp.After(latest.Timestamp) {
			latest = row
		}
	}
	if latest == nil {
		return nil, errors.NewNotFoundError("no recent readings", nil)
	}
	copied := *latest
	return &copied, nil
}

func (m *memSensorHistory) ListRange(ctx context.Context, sensorID string, start, end time.Time) ([]models.SensorHistory, error) {
	var out []models.SensorHistory
	for _, row := range m.rows {
		if row.SensorID == sensorID && !row.Timestamp.Before(start) && !row.Timestamp.After(end) {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *memSensorHistory) DeleteBySensorID(ctx context.Context, sensorID string) error {
	for key, row := range m.rows {
		if row.SensorID == sensorID {
			delete(m.rows, key)
		}
	}
	return nil
}

type memRelayRepo struct {
	relays map[string]*models.Relay
}

func (m *memRelayRepo) Create(ctx context.Context, relay *models.Relay) error {
	m.relays[relay.ID] = relay
	return nil
}

func (m *memRelayRepo) Get(ctx context.Context, id string) (*models.Relay, error) {
	if r, ok := m.relays[id]; ok {
		return r, nil
	}
	return nil, errors.NewNotFoundError("relay not found", nil)
}

func (m *memRelayRepo) Update(ctx context.Context, relay *models.Relay) error {
	m.relays[relay.ID] = relay
	return nil
}

func (m *memRelayRepo) Delete(ctx context.Context, id string) error {
	delete(m.relays, id)
	return nil
}

func (m *memRelayRepo) List(ctx context.Context) ([]*models.Relay, error) {
	out := make([]*models.Relay, 0, len(m.relays))
	for _, r := range m.relays {
		out = append(out, r)
	}
	return out, nil
}

type memRelayHistory struct {
	rows []models.RelayHistory
}

func (m *memRelayHistory) Insert(ctx context.Context, row *models.RelayHistory) error {
	m.rows = append(m.rows, *row)
	return nil
}

func (m *memRelayHistory) LatestSince(ctx context.Context, relayID string, min time.Time) (*models.RelayHistory, error) {
	var latest *models.RelayHistory
	for i := range m.rows {
		row := &m.rows[i]
		if row.RelayID != relayID || row.Timestamp.Before(min) {
			continue
		}
		if latest == nil || !row.Timestamp.Before(latest.Timestamp) {
			latest = row
		}
	}
	if latest == nil {
		return nil, errors.NewNotFoundError("no recent state changes", nil)
	}
	copied := *latest
	return &copied, nil
}

func (m *memRelayHistory) ListRange(ctx context.Context, relayID string, start, end time.Time) ([]models.RelayHistory, error) {
	var out []models.RelayHistory
	for _, row := range m.rows {
		if row.RelayID == relayID && !row.Timestamp.Before(start) && !row.Timestamp.After(end) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memRelayHistory) DeleteByRelayID(ctx context.Context, relayID string) error {
	kept := m.rows[:0]
	for _, row := range m.rows {
		if row.RelayID != relayID {
			kept = append(kept, row)
		}
	}
	m.rows = kept
	return nil
}

type memButtonRepo struct {
	buttons map[string]*models.Button
}

func (m *memButtonRepo) Create(ctx context.Context, button *models.Button) error {
	m.buttons[button.ID] = button
	return nil
}

func (m *memButtonRepo) Get(ctx context.Context, id string) (*models.Button, error) {
	if b, ok := m.buttons[id]; ok {
		return b, nil
	}
	return nil, errors.NewNotFoundError("button not found", nil)
}

func (m *memButtonRepo) Update(ctx context.Context, button *models.Button) error {
	m.buttons[button.ID] = button
	return nil
}

func (m *memButtonRepo) Delete(ctx context.Context, id string) error {
	delete(m.buttons, id)
	return nil
}

func (m *memButtonRepo) List(ctx context.Context) ([]*models.Button, error) {
	out := make([]*models.Button, 0, len(m.buttons))
	for _, b := range m.buttons {
		out = append(out, b)
	}
	return out, nil
}

func (m *memButtonRepo) ListByEnclosure(ctx context.Context, enclosureID string) ([]*models.Button, error) {
	var out []*models.Button
	for _, b := range m.buttons {
		if b.EnclosureID != nil && *b.EnclosureID == enclosureID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memButtonRepo) DetachFromEnclosure(ctx context.Context, enclosureID string) error {
	for _, b := range m.buttons {
		if b.EnclosureID != nil && *b.EnclosureID == enclosureID {
			b.EnclosureID = nil
		}
	}
	return nil
}

type memButtonHistory struct {
	rows []models.ButtonHistory
}

func (m *memButtonHistory) Insert(ctx context.Context, row *models.ButtonHistory) error {
	m.rows = append(m.rows, *row)
	return nil
}

func (m *memButtonHistory) LatestSince(ctx context.Context, buttonID string, min time.Time) (*models.ButtonHistory, error) {
	var latest *models.ButtonHistory
	for i := range m.rows {
		row := &m.rows[i]
		if row.ButtonID != buttonID || row.Timestamp.Before(min) {
			continue
		}
		if latest == nil || !row.Timestamp.Before(latest.Timestamp) {
			latest = row
		}
	}
	if latest == nil {
		return nil, errors.NewNotFoundError("no recent state changes", nil)
	}
	copied := *latest
	return &copied, nil
}

func (m *memButtonHistory) ListRange(ctx context.Context, buttonID string, start, end time.Time) ([]models.ButtonHistory, error) {
	var out []models.ButtonHistory
	for _, row := range m.rows {
		if row.ButtonID == buttonID && !row.Timestamp.Before(start) && !row.Timestamp.After(end) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memButtonHistory) DeleteByButtonID(ctx context.Context, buttonID string) error {
	kept := m.rows[:0]
	for _, row := range m.rows {
		if row.ButtonID != buttonID {
			kept = append(kept, row)
		}
	}
	m.rows = kept
	return nil
}

type testEnv struct {
	svc           *hubservice.HubService
	clock         *fakeClock
	sensors       *memSensorRepo
	sensorHistory *memSensorHistory
	relays        *memRelayRepo
	relayHistory  *memRelayHistory
	buttons       *memButtonRepo
	buttonHistory *memButtonHistory
}

func newTestEnv(mode models.MergeMode) *testEnv {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 30, 0, time.UTC)}
	env := &testEnv{
		clock:         clock,
		sensors:       &memSensorRepo{sensors: map[string]*models.Sensor{}},
		sensorHistory: &memSensorHistory{rows: map[string]*models.SensorHistory{}},
		relays:        &memRelayRepo{relays: map[string]*models.Relay{}},
		relayHistory:  &memRelayHistory{},
		buttons:       &memButtonRepo{buttons: map[string]*models.Button{}},
		buttonHistory: &memButtonHistory{},
	}
	repos := hubservice.Repositories{
		Sensors:       env.sensors,
		SensorHistory: env.sensorHistory,
		Relays:        env.relays,
		RelayHistory:  env.relayHistory,
		Buttons:       env.buttons,
		ButtonHistory: env.buttonHistory,
	}
	env.svc = hubservice.New(repos, nil,
		hubservice.WithClock(clock),
		hubservice.WithMergeMode(mode),
	)
	return env
}

func float(v float64) *float64 {
	return &v
}
