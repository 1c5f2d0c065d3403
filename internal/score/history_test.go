package score

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/game"
)

var settings = Settings{
	Rate:          8000,
	FrameSize:     1024,
	Threshold:     350,
	Window:        "hann",
	Lanes:         5,
	Speed:         10,
	SpawnDistance: 25,
	HitZone:       1,
	Perfect:       0.3,
	Good:          0.8,
}

func TestHistorySaveLoad(t *testing.T) {
	h, err := OpenHistory(filepath.Join(t.TempDir(), "scores.db"))
	if nil != err {
		t.Fatalf("unable to open history: %v", err)
	}
	defer h.Close()

	when := time.Unix(1700000000, 0)
	first := &Run{
		Sum:      "track-a",
		Seed:     42,
		Settings: settings,
		When:     when,
		Inputs: []game.Input{
			{Lane: 2, HitTime: 1500 * time.Millisecond},
			{Lane: 0, HitTime: 2 * time.Second},
			{Lane: 2, HitTime: 2500 * time.Millisecond},
		},
		Score: game.Score{Total: 350, NoteCount: 3, PerfectCount: 1, OkayCount: 1, MissCount: 1},
	}
	second := &Run{Sum: "track-a", Seed: 7, When: when.Add(time.Hour), Inputs: []game.Input{}}
	other := &Run{Sum: "track-b", Seed: 1, When: when}
	for _, r := range []*Run{second, first, other} {
		if err := h.Save(r); nil != err {
			t.Fatal(err)
		}
	}

	runs, err := h.Load("track-a")
	if nil != err {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %v", len(runs))
	}
	got := runs[0]
	if got.Seed != 42 || got.Settings != settings || !got.When.Equal(when) || got.Score != first.Score {
		t.Log("got     ", got)
		t.Log("expected", first)
		t.Fail()
	}
	if len(got.Inputs) != len(first.Inputs) {
		t.Fatalf("expected %v inputs, got %v", len(first.Inputs), got.Inputs)
	}
	for i := range got.Inputs {
		if got.Inputs[i] != first.Inputs[i] {
			t.Log("got     ", got.Inputs)
			t.Log("expected", first.Inputs)
			t.FailNow()
		}
	}
	if runs[1].Seed != 7 || len(runs[1].Inputs) != 0 || runs[1].Settings != (Settings{}) {
		t.Fatal(runs[1])
	}

	none, err := h.Load("missing")
	if nil != err || len(none) != 0 {
		t.Fatal(none, err)
	}
}

func TestHistoryMigratesRunsWithoutSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		t.Fatal(err)
	}
	if _, err := db.Exec(`
	create table runs
	  (
		  id integer not null primary key,
		  sum text not null,
		  seed integer not null,
		  played integer not null,
		  inputs blob,
		  score blob
	  );
	insert into runs(sum, seed, played, inputs, score) values('track-a', 3, 1, '[]', '{}');
	`); nil != err {
		t.Fatal(err)
	}
	db.Close()

	h, err := OpenHistory(path)
	if nil != err {
		t.Fatal(err)
	}
	defer h.Close()
	if err := h.Save(&Run{Sum: "track-a", Seed: 4, Settings: settings, When: time.Unix(2, 0)}); nil != err {
		t.Fatal(err)
	}

	runs, err := h.Load("track-a")
	if nil != err {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].Settings != (Settings{}) || runs[1].Settings != settings {
		t.Fatal(runs)
	}
}
