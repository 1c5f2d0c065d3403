package score

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/game"
	_ "github.com/mattn/go-sqlite3"
)

// Run is one recorded play of a track. The beatmap is not stored, it is
// regenerated from the audio and Seed.
type Run struct {
	Sum      string
	Seed     int64
	Settings Settings
	When     time.Time
	Inputs   []game.Input
	Score    game.Score
}

// Settings are what the beatmap was generated and the run judged with.
// The zero value means the run predates recording them.
type Settings struct {
	Rate          int
	FrameSize     int
	Threshold     float64
	Window        string
	Lanes         int
	Speed         float64
	SpawnDistance float64
	HitZone       float64
	Perfect       float64
	Good          float64
}

type History interface {
	Save(run *Run) error
	Load(sum string) ([]Run, error)
	Close() error
}

type SQLiteHistory struct {
	db *sql.DB
}

func OpenHistory(path string) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	initStatement := `
	create table if not exists runs
	  (
		  id integer not null primary key,
		  sum text not null,
		  seed integer not null,
		  played integer not null,
		  inputs blob,
		  score blob,
		  settings blob
	  );
	create index if not exists runs_sum on runs(sum);
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return nil, fmt.Errorf("unable to create score history: %w", err)
	}
	// Databases created before settings were recorded
	if _, err = db.Exec("alter table runs add column settings blob"); nil != err && !strings.Contains(err.Error(), "duplicate column") {
		db.Close()
		return nil, fmt.Errorf("unable to migrate score history: %w", err)
	}
	return &SQLiteHistory{db: db}, nil
}

func (s *SQLiteHistory) Close() error {
	return s.db.Close()
}

func (s *SQLiteHistory) Save(run *Run) error {
	inputs, err := json.Marshal(compactInputs(run.Inputs))
	if nil != err {
		return fmt.Errorf("unable to marshal inputs: %w", err)
	}
	score, err := json.Marshal(run.Score)
	if nil != err {
		return fmt.Errorf("unable to marshal score: %w", err)
	}
	settings, err := json.Marshal(run.Settings)
	if nil != err {
		return fmt.Errorf("unable to marshal settings: %w", err)
	}
	_, err = s.db.Exec(
		"insert into runs(sum, seed, played, inputs, score, settings) values(?, ?, ?, ?, ?, ?)",
		run.Sum, run.Seed, run.When.UnixNano(), inputs, score, settings,
	)
	if nil != err {
		return fmt.Errorf("unable to save run: %w", err)
	}
	return nil
}

// Load returns the runs of a track, oldest first.
func (s *SQLiteHistory) Load(sum string) ([]Run, error) {
	rows, err := s.db.Query("select sum, seed, played, inputs, score, settings from runs where sum = ? order by played, id", sum)
	if nil != err {
		return nil, fmt.Errorf("unable to load runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		var played int64
		var inputs, score, settings []byte
		if err := rows.Scan(&run.Sum, &run.Seed, &played, &inputs, &score, &settings); nil != err {
			return nil, fmt.Errorf("unable to read run: %w", err)
		}
		var ins []InputsCompact
		if err := json.Unmarshal(inputs, &ins); nil != err {
			return nil, fmt.Errorf("unable to unmarshal inputs: %w", err)
		}
		if err := json.Unmarshal(score, &run.Score); nil != err {
			return nil, fmt.Errorf("unable to unmarshal score: %w", err)
		}
		if len(settings) > 0 {
			if err := json.Unmarshal(settings, &run.Settings); nil != err {
				return nil, fmt.Errorf("unable to unmarshal settings: %w", err)
			}
		}
		run.Inputs = uncompactInputs(ins)
		run.When = time.Unix(0, played)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
