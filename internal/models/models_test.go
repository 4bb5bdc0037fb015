// FilePath: internal/models/models_test.go
package models

import "testing"

func TestRelayRefreshCapabilities(t *testing.T) {
	relay := &Relay{ID: "r1", Hardware: "gpio-dimmer"}
	relay.RefreshCapabilities()
	if !relay.Dimmer {
		t.Fatalf("gpio-dimmer hardware must set the dimmer flag")
	}
	if relay.Kind() != "dimmer" {
		t.Fatalf("expected kind dimmer, got %q", relay.Kind())
	}

	relay.Hardware = "gpio"
	relay.RefreshCapabilities()
	if relay.Dimmer {
		t.Fatalf("plain gpio hardware must clear the dimmer flag")
	}
	if relay.Kind() != "relay" {
		t.Fatalf("expected kind relay, got %q", relay.Kind())
	}
}

func TestRelayDerivedFigures(t *testing.T) {
	relay := &Relay{ID: "r1", Wattage: 200, Flow: 50}

	v := 50.0
	if got := relay.CurrentWattage(&v); got != 100 {
		t.Fatalf("expected 100W at 50%%, got %v", got)
	}
	if got := relay.CurrentFlow(&v); got != 25 {
		t.Fatalf("expected flow 25 at 50%%, got %v", got)
	}
	if got := relay.CurrentWattage(nil); got != 0 {
		t.Fatalf("stale relay must draw 0W, got %v", got)
	}
	if relay.IsOn(nil) {
		t.Fatalf("stale relay must read as off")
	}
	zero := 0.0
	if relay.IsOn(&zero) {
		t.Fatalf("value 0 means off")
	}
	if !relay.IsOn(&v) {
		t.Fatalf("value 50 means on")
	}
}

func TestWebcamRefreshCapabilities(t *testing.T) {
	cam := &Webcam{ID: "w1", Hardware: "rpicam-live"}
	cam.RefreshCapabilities()
	if !cam.LiveStream {
		t.Fatalf("rpicam-live hardware must set the live-stream flag")
	}

	cam.Hardware = "rpicam"
	cam.RefreshCapabilities()
	if cam.LiveStream {
		t.Fatalf("rpicam hardware must clear the live-stream flag")
	}
}

func TestEnclosureNormalizeImage(t *testing.T) {
	cases := []struct {
		name  string
		image string
		want  string
	}{
		{"renames base", "img/upload_4422.jpg", "img/enc1.jpg"},
		{"already normalized", "img/enc1.jpg", "img/enc1.jpg"},
		{"keeps extension", "media/photo.webp", "media/enc1.webp"},
		{"empty stays empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := &Enclosure{ID: "enc1", Image: tc.image}
			e.NormalizeImage()
			if e.Image != tc.want {
				t.Fatalf("NormalizeImage(%q) = %q, want %q", tc.image, e.Image, tc.want)
			}
		})
	}
}

func TestSensorOffset(t *testing.T) {
	s := &Sensor{ID: "s1"}
	if s.Offset() != 0 {
		t.Fatalf("sensor without calibration must have offset 0")
	}
	s.Calibration = JSON{"offset": 2.5}
	if s.Offset() != 2.5 {
		t.Fatalf("expected offset 2.5, got %v", s.Offset())
	}
}

func TestSensorInAlarm(t *testing.T) {
	s := &Sensor{ID: "s1", AlarmMin: 15, AlarmMax: 35}

	if s.InAlarm(nil) {
		t.Fatalf("stale sensor must not alarm")
	}
	inside := 20.0
	if s.InAlarm(&inside) {
		t.Fatalf("value inside the band must not alarm")
	}
	low := 10.0
	if !s.InAlarm(&low) {
		t.Fatalf("value below alarm_min must alarm")
	}
	high := 40.0
	if !s.InAlarm(&high) {
		t.Fatalf("value above alarm_max must alarm")
	}
	edge := 35.0
	if s.InAlarm(&edge) {
		t.Fatalf("boundary value must not alarm")
	}
}

func TestSensorHistorySnapshotInAlarm(t *testing.T) {
	row := &SensorHistory{Value: 40, AlarmMin: 15, AlarmMax: 35}
	if !row.InAlarm() {
		t.Fatalf("snapshot thresholds 15..35 with value 40 must alarm")
	}
	row.Value = 30
	if row.InAlarm() {
		t.Fatalf("snapshot thresholds 15..35 with value 30 must not alarm")
	}
}

func TestValidMergeMode(t *testing.T) {
	for _, m := range []MergeMode{MergeFirst, MergeAverage, MergeLast} {
		if !ValidMergeMode(m) {
			t.Fatalf("mode %q must be valid", m)
		}
	}
	if ValidMergeMode("median") {
		t.Fatalf("unknown mode must be invalid")
	}
}

func TestValidAreaType(t *testing.T) {
	for _, typ := range []string{"lights", "watertank", "temperature", "co2"} {
		if !ValidAreaType(typ) {
			t.Fatalf("area type %q must be valid", typ)
		}
	}
	if ValidAreaType("disco") {
		t.Fatalf("unknown area type must be invalid")
	}
}

func TestSensorApplyDefaults(t *testing.T) {
	s := &Sensor{ID: "s1"}
	s.ApplyDefaults()
	if s.LimitMax != 100 || s.AlarmMax != 100 {
		t.Fatalf("unset max bounds must default to 100, got limit=%v alarm=%v", s.LimitMax, s.AlarmMax)
	}

	s2 := &Sensor{ID: "s2", LimitMax: 60, AlarmMax: 45}
	s2.ApplyDefaults()
	if s2.LimitMax != 60 || s2.AlarmMax != 45 {
		t.Fatalf("configured bounds must survive defaults, got limit=%v alarm=%v", s2.LimitMax, s2.AlarmMax)
	}
}

func TestWebcamArchivePath(t *testing.T) {
	cam := &Webcam{ID: "cam1"}
	if cam.ArchivePath() != "webcam/archive/cam1" {
		t.Fatalf("unexpected archive path %q", cam.ArchivePath())
	}
}
