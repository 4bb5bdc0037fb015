// FilePath: internal/hubservice/hubservice.sensor_test.go
package hubservice_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"
)

func newTestSensor() *models.Sensor {
	return &models.Sensor{
		ID:       "sensor12ab34",
		Hardware: "sht25",
		Type:     models.Temperature,
		Name:     "terrarium temp",
		LimitMin: 0, LimitMax: 50,
		AlarmMin: 15, AlarmMax: 35,
	}
}

func (e *testEnv) mustRecord(t *testing.T, sensorID string, value float64) {
	t.Helper()
	if _, err := e.svc.RecordSensorReading(context.Background(), sensorID, float(value)); err != nil {
		t.Fatalf("RecordSensorReading(%v) failed: %v", value, err)
	}
}

func TestRecordSensorReadingAveragesSameBucket(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	sensor := newTestSensor()
	env.sensors.sensors[sensor.ID] = sensor

	env.mustRecord(t, sensor.ID, 10)
	env.mustRecord(t, sensor.ID, 20)
	env.mustRecord(t, sensor.ID, 30)

	if len(env.sensorHistory.rows) != 1 {
		t.Fatalf("expected 1 bucket row, got %d", len(env.sensorHistory.rows))
	}
	bucket := env.clock.Now().Truncate(time.Minute)
	row, err := env.sensorHistory.GetBucket(context.Background(), sensor.ID, bucket)
	if err != nil {
		t.Fatalf("GetBucket failed: %v", err)
	}
	// ((10+20)/2 + 30) / 2
	if row.Value != 22.5 {
		t.Fatalf("expected pairwise-averaged value 22.5, got %v", row.Value)
	}
}

func TestRecordSensorReadingAverageIsIdempotentForRepeats(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	sensor := newTestSensor()
	env.sensors.sensors[sensor.ID] = sensor

	env.mustRecord(t, sensor.ID, 21)
	env.mustRecord(t, sensor.ID, 21)
	env.mustRecord(t, sensor.ID, 21)

	bucket := env.clock.Now().Truncate(time.Minute)
	row, err := env.sensorHistory.GetBucket(context.Background(), sensor.ID, bucket)
	if err != nil {
		t.Fatalf("GetBucket failed: %v", err)
	}
	if row.Value != 21 {
		t.Fatalf("repeated value should stay unchanged, got %v", row.Value)
	}
}

func TestRecordSensorReadingKeepsFirst(t *testing.T) {
	env := newTestEnv(models.MergeFirst)
	sensor := newTestSensor()
	env.sensors.sensors[sensor.ID] = sensor

	env.mustRecord(t, sensor.ID, 10)
	env.mustRecord(t, sensor.ID, 99)

	bucket := env.clock.Now().Truncate(time.Minute)
	row, err := env.sensorHistory.GetBucket(context.Background(), sensor.ID, bucket)
	if err != nil {
		t.Fatalf("GetBucket failed: %v", err)
	}
	if row.Value != 10 {
		t.Fatalf("expected first value 10 to win, got %v", row.Value)
	}
}

func TestRecordSensorReadingOverwritesWithLast(t *testing.T) {
	env := newTestEnv(models.MergeLast)
	sensor := newTestSensor()
	env.sensors.sensors[sensor.ID] = sensor

	env.mustRecord(t, sensor.ID, 10)
	env.mustRecord(t, sensor.ID, 99)

	bucket := env.clock.Now().Truncate(time.Minute)
	row, err := env.sensorHistory.GetBucket(context.Background(), sensor.ID, bucket)
	if err != nil {
		t.Fatalf("GetBucket failed: %v", err)
	}
	if row.Value != 99 {
		t.Fatalf("expected last value 99 to win, got %v", row.Value)
	}
}

func TestRecordSensorReadingBucketsByMinute(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	sensor := newTestSensor()
	env.sensors.sensors[sensor.ID] = sensor

	env.mustRecord(t, sensor.ID, 10)
	env.clock.advance(20 * time.Second) // still 12:00
	env.mustRecord(t, sensor.ID, 20)
	env.clock.advance(30 * time.Second) // 12:01
	env.mustRecord(t, sensor.ID, 30)

	if len(env.sensorHistory.rows) != 2 {
		t.Fatalf("expected 2 bucket rows, got %d", len(env.sensorHistory.rows))
	}
}

func TestRecordSensorReadingNilValueIsNoOp(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	sensor := newTestSensor()
	env.sensors.sensors[sensor.ID] = sensor

	row, err := env.svc.RecordSensorReading(context.Background(), sensor.ID, nil)
	if err != nil {
		t.Fatalf("nil value should be dropped silently, got %v", err)
	}
	if row != nil {
		t.Fatalf("nil value must not return a row")
	}
	if len(env.sensorHistory.rows) != 0 {
		t.Fatalf("nil value must not create a row")
	}
}

func TestRecordSensorReadingRejectsNonFiniteValues(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	sensor := newTestSensor()
	env.sensors.sensors[sensor.ID] = sensor

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := env.svc.RecordSensorReading(context.Background(), sensor.ID, float(v))
		if !errors.IsValidation(err) {
			t.Fatalf("expected validation error for %v, got %v", v, err)
		}
	}
	if len(env.sensorHistory.rows) != 0 {
		t.Fatalf("non-finite values must not create rows")
	}
}

func TestRecordSensorReadingUnknownSensor(t *testing.T) {
	env := newTestEnv(models.MergeAverage)

	_, err := env.svc.RecordSensorReading(context.Background(), "missing", float(20))
	if !errors.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRecordSensorReadingMergesThresholdsAgainstLiveConfig(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	sensor := newTestSensor()
	sensor.AlarmMax = 100
	env.sensors.sensors[sensor.ID] = sensor

	env.mustRecord(t, sensor.ID, 10)
	sensor.AlarmMax = 50
	env.mustRecord(t, sensor.ID, 20)

	bucket := env.clock.Now().Truncate(time.Minute)
	row, err := env.sensorHistory.GetBucket(context.Background(), sensor.ID, bucket)
	if err != nil {
		t.Fatalf("GetBucket failed: %v", err)
	}
	if row.AlarmMax != 75 {
		t.Fatalf("expected snapshot alarm_max averaged to 75, got %v", row.AlarmMax)
	}
}

func TestRecordSensorReadingRetriesConflictAsMerge(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	sensor := newTestSensor()
	env.sensors.sensors[sensor.ID] = sensor

	// A racing writer lands the bucket between our probe and insert.
	bucket := env.clock.Now().Truncate(time.Minute)
	env.sensorHistory.conflictOnce = &models.SensorHistory{
		SensorID:  sensor.ID,
		Timestamp: bucket,
		Value:     10,
		LimitMax:  sensor.LimitMax,
		AlarmMin:  sensor.AlarmMin,
		AlarmMax:  sensor.AlarmMax,
	}

	env.mustRecord(t, sensor.ID, 20)

	row, err := env.sensorHistory.GetBucket(context.Background(), sensor.ID, bucket)
	if err != nil {
		t.Fatalf("GetBucket failed: %v", err)
	}
	if row.Value != 15 {
		t.Fatalf("expected conflict retried as merge with value 15, got %v", row.Value)
	}
}

func TestGetSensorStateWithoutHistory(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	sensor := newTestSensor()
	env.sensors.sensors[sensor.ID] = sensor

	state, err := env.svc.GetSensorState(context.Background(), sensor.ID)
	if err != nil {
		t.Fatalf("GetSensorState failed: %v", err)
	}
	if !state.Error {
		t.Fatalf("sensor without readings must be in error")
	}
	if state.Value != nil {
		t.Fatalf("sensor without readings must have nil value")
	}
	if state.Alarm {
		t.Fatalf("sensor without readings must not alarm")
	}
}

func TestGetSensorStateIgnoresStaleReadings(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	sensor := newTestSensor()
	env.sensors.sensors[sensor.ID] = sensor

	env.mustRecord(t, sensor.ID, 25)
	env.clock.advance(6 * time.Minute)

	state, err := env.svc.GetSensorState(context.Background(), sensor.ID)
	if err != nil {
		t.Fatalf("GetSensorState failed: %v", err)
	}
	if !state.Error || state.Value != nil {
		t.Fatalf("reading older than the window must not count, got value=%v error=%v", state.Value, state.Error)
	}
}

func TestGetSensorStateAlarmTracksLiveThresholds(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	sensor := newTestSensor()
	sensor.AlarmMax = 100
	env.sensors.sensors[sensor.ID] = sensor

	env.mustRecord(t, sensor.ID, 80)

	state, err := env.svc.GetSensorState(context.Background(), sensor.ID)
	if err != nil {
		t.Fatalf("GetSensorState failed: %v", err)
	}
	if state.Alarm {
		t.Fatalf("value 80 inside [15,100] must not alarm")
	}

	// Tightening the threshold flips the alarm without a new reading.
	sensor.AlarmMax = 50
	state, err = env.svc.GetSensorState(context.Background(), sensor.ID)
	if err != nil {
		t.Fatalf("GetSensorState failed: %v", err)
	}
	if !state.Alarm {
		t.Fatalf("value 80 above live alarm_max 50 must alarm")
	}
}

func TestGetSensorStateExposesCalibrationOffset(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	sensor := newTestSensor()
	sensor.Calibration = models.JSON{"offset": 1.5}
	env.sensors.sensors[sensor.ID] = sensor

	state, err := env.svc.GetSensorState(context.Background(), sensor.ID)
	if err != nil {
		t.Fatalf("GetSensorState failed: %v", err)
	}
	if state.Offset != 1.5 {
		t.Fatalf("expected offset 1.5, got %v", state.Offset)
	}
}

func TestCreateSensorValidation(t *testing.T) {
	env := newTestEnv(models.MergeAverage)

	err := env.svc.CreateSensor(context.Background(), &models.Sensor{Type: models.Temperature})
	if !errors.IsValidation(err) {
		t.Fatalf("expected validation error for missing id, got %v", err)
	}

	err = env.svc.CreateSensor(context.Background(), &models.Sensor{ID: "s1", Type: "bogus"})
	if !errors.IsValidation(err) {
		t.Fatalf("expected validation error for unknown type, got %v", err)
	}
}

func TestCreateSensorAppliesRangeDefaults(t *testing.T) {
	env := newTestEnv(models.MergeAverage)

	sensor := &models.Sensor{ID: "s1", Type: models.Humidity}
	if err := env.svc.CreateSensor(context.Background(), sensor); err != nil {
		t.Fatalf("CreateSensor failed: %v", err)
	}
	if sensor.LimitMax != 100 || sensor.AlarmMax != 100 {
		t.Fatalf("expected default max bounds of 100, got limit=%v alarm=%v", sensor.LimitMax, sensor.AlarmMax)
	}
}

func TestUpdateSensorAppliesFields(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	sensor := newTestSensor()
	env.sensors.sensors[sensor.ID] = sensor

	updated, err := env.svc.UpdateSensor(context.Background(), sensor.ID, &models.Sensor{AlarmMax: 42})
	if err != nil {
		t.Fatalf("UpdateSensor failed: %v", err)
	}
	if updated.AlarmMax != 42 {
		t.Fatalf("expected AlarmMax 42 after update, got %v", updated.AlarmMax)
	}
	if updated.AlarmMin != 15 || updated.Name != "terrarium temp" {
		t.Fatalf("unrelated fields changed: %+v", updated)
	}

	// The new threshold must drive alarm evaluation for the next reading.
	env.mustRecord(t, sensor.ID, 45)
	state, err := env.svc.GetSensorState(context.Background(), sensor.ID)
	if err != nil {
		t.Fatalf("GetSensorState failed: %v", err)
	}
	if !state.Alarm {
		t.Fatalf("expected 45 to alarm against updated alarm_max 42")
	}
}

func TestSensorLifecycleStampsTimestamps(t *testing.T) {
	env := newTestEnv(models.MergeAverage)
	createdAt := env.clock.Now()

	sensor := newTestSensor()
	if err := env.svc.CreateSensor(context.Background(), sensor); err != nil {
		t.Fatalf("CreateSensor failed: %v", err)
	}
	if !sensor.CreatedAt.Equal(createdAt) || !sensor.UpdatedAt.Equal(createdAt) {
		t.Fatalf("expected both timestamps at %v, got created=%v updated=%v",
			createdAt, sensor.CreatedAt, sensor.UpdatedAt)
	}

	env.clock.advance(time.Hour)
	updated, err := env.svc.UpdateSensor(context.Background(), sensor.ID, &models.Sensor{Name: "basking temp"})
	if err != nil {
		t.Fatalf("UpdateSensor failed: %v", err)
	}
	if !updated.CreatedAt.Equal(createdAt) {
		t.Fatalf("update must not touch created_at, got %v", updated.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(env.clock.Now()) {
		t.Fatalf("expected updated_at %v, got %v", env.clock.Now(), updated.UpdatedAt)
	}
}
