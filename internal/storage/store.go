package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/motionlab/internal/session"
)

var (
	ErrRunNotFound = errors.New("storage: run not found")
	ErrNoTrials    = errors.New("storage: no trials to export")
)

const (
	metadataFile = "metadata.json"
	trialsFile   = "trials.csv"
)

var trialHeader = []string{"fall_time", "velocity", "distance"}

type Store struct {
	baseDir string
	now     func() time.Time
	create  func(name string) (io.WriteCloser, error)
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now, create: createFile}
}

func createFile(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func (s *Store) Dir() string { return s.baseDir }

// RunMetadata describes one exported trial log.
type RunMetadata struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"session_started"`
	Timestamp time.Time `json:"timestamp"`
	Locale    string    `json:"locale"`
	Trials    int       `json:"trials"`
	MaxTime   float64   `json:"max_fall_time"`
}

// Save writes the trial log of one session as a new run directory and returns
// its id. Runs are never overwritten, and a run that fails to write is
// removed.
func (s *Store) Save(sessionID string, startedAt time.Time, locale string, trials []session.TrialRecord) (string, error) {
	if len(trials) == 0 {
		return "", ErrNoTrials
	}

	now := s.now()
	runID := fmt.Sprintf("trials_%d_%s", now.Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("storage: create run dir: %w", err)
	}

	meta := RunMetadata{
		ID:        runID,
		SessionID: sessionID,
		StartedAt: startedAt,
		Timestamp: now,
		Locale:    locale,
		Trials:    len(trials),
	}
	for _, tr := range trials {
		meta.MaxTime = max(meta.MaxTime, tr.FallTime)
	}

	err := s.writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		return writeMetadata(w, meta)
	})
	if err == nil {
		err = s.writeFile(filepath.Join(runDir, trialsFile), func(w io.Writer) error {
			return writeTrials(w, trials)
		})
	}
	if err != nil {
		_ = os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func (s *Store) writeFile(path string, write func(io.Writer) error) error {
	f, err := s.create(path)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

func writeMetadata(out io.Writer, meta RunMetadata) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("storage: encode metadata: %w", err)
	}
	return nil
}

func writeTrials(out io.Writer, trials []session.TrialRecord) error {
	w := csv.NewWriter(out)
	if err := w.Write(trialHeader); err != nil {
		return fmt.Errorf("storage: write trials: %w", err)
	}
	for _, tr := range trials {
		row := []string{
			strconv.FormatFloat(tr.FallTime, 'f', 6, 64),
			strconv.FormatFloat(tr.Velocity, 'f', 6, 64),
			strconv.FormatFloat(tr.Distance, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("storage: write trials: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("storage: write trials: %w", err)
	}
	return nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if !validRunID(runID) {
		return nil, fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: parse metadata %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrials reads the trial table of a run. Malformed rows are skipped.
func (s *Store) LoadTrials(runID string) ([]session.TrialRecord, error) {
	if !validRunID(runID) {
		return nil, fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}
	file, err := os.Open(filepath.Join(s.baseDir, runID, trialsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: read trials %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []session.TrialRecord{}, nil
	}

	trials := make([]session.TrialRecord, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(trialHeader) {
			continue
		}
		var vals [3]float64
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		trials = append(trials, session.TrialRecord{FallTime: vals[0], Velocity: vals[1], Distance: vals[2]})
	}
	return trials, nil
}

// ExportData is the JSON form of a run.
type ExportData struct {
	RunMetadata
	Records []session.TrialRecord `json:"records"`
}

// ExportJSON writes a run's metadata and trials as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	trials, err := s.LoadTrials(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Records: trials})
}

func validRunID(id string) bool {
	return id != "" && id != "." && id != ".." && filepath.Base(id) == id
}
