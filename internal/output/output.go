// Package output writes an evolve.Result to disk: the summary TSV
// stream of integral quantities per step, and, when full-field
// snapshots were requested, one radial-profile TSV per step, plus a
// JSON metadata sidecar and JSON export, all in one package since this
// domain has one output format per run.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lisdanil/freddi/internal/evolve"
)

// Writer writes one run's output files under a shared basename prefix,
// the reference CLI's own "<prefix>_sum.dat" / "<prefix>_<i_t>.dat"
// naming convention.
type Writer struct {
	dir    string
	prefix string
}

// New constructs a Writer rooted at dir with the given filename prefix.
func New(dir, prefix string) *Writer {
	return &Writer{dir: dir, prefix: prefix}
}

// RunMetadata is the per-run sidecar written alongside the TSV output,
// letting "list" and "plot" discover and reopen past runs without
// re-parsing the TSV header.
type RunMetadata struct {
	ID       string             `json:"id"`
	Scenario string             `json:"scenario"`
	Tau      float64            `json:"tau"`
	Time     float64            `json:"time"`
	Steps    int                `json:"steps"`
	Metrics  map[string]float64 `json:"metrics"`
}

// WriteMetadata writes "<prefix>_meta.json" alongside the TSV outputs.
func (w *Writer) WriteMetadata(meta RunMetadata) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(w.dir, w.prefix+"_meta.json")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	return path, nil
}

// ListRuns scans dir for "*_meta.json" sidecars and returns their
// decoded RunMetadata.
func ListRuns(dir string) ([]RunMetadata, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var runs []RunMetadata
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), "_meta.json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

// LoadSummary reads "<prefix>_sum.dat" back into parallel slices of
// time and Mdot_in, for "plot" and "analyze".
func LoadSummary(dir, prefix string) (t, mdotIn []float64, err error) {
	path := filepath.Join(dir, prefix+"_sum.dat")
	f, openErr := os.Open(path)
	if openErr != nil {
		return nil, nil, openErr
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = '\t'
	records, readErr := cr.ReadAll()
	if readErr != nil {
		return nil, nil, readErr
	}
	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue
		}
		tv, err1 := strconv.ParseFloat(rec[0], 64)
		mv, err2 := strconv.ParseFloat(rec[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		t = append(t, tv)
		mdotIn = append(mdotIn, mv)
	}
	return t, mdotIn, nil
}

// WriteSummary writes the per-step integral-quantity TSV
// ("<prefix>_sum.dat"): t, Mdot_in, Mdot_out, Lx, one row per snapshot.
func (w *Writer) WriteSummary(result *evolve.Result) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(w.dir, w.prefix+"_sum.dat")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	cw.Comma = '\t'
	defer cw.Flush()

	if err := cw.Write([]string{"t", "Mdot_in", "Mdot_out", "Lx"}); err != nil {
		return "", err
	}
	for _, s := range result.Snapshots {
		row := []string{
			formatFloat(s.T),
			formatFloat(s.MdotIn),
			formatFloat(s.MdotOut),
			formatFloat(s.Lx),
		}
		if err := cw.Write(row); err != nil {
			return "", err
		}
	}
	return path, nil
}

// WriteFullData writes one "<prefix>_<i_t>.dat" radial-profile TSV per
// snapshot that carries full-field data.
func (w *Writer) WriteFullData(result *evolve.Result) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, err
	}
	var paths []string
	for _, s := range result.Snapshots {
		if !s.FullData {
			continue
		}
		path := filepath.Join(w.dir, fmt.Sprintf("%s_%d.dat", w.prefix, s.StepIndex))
		if err := writeFullSnapshot(path, s); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFullSnapshot(path string, s evolve.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	cw.Comma = '\t'
	defer cw.Flush()

	if err := cw.Write([]string{"h", "R", "F", "Sigma", "Height", "Tph"}); err != nil {
		return err
	}
	for i := s.First; i <= s.Last && i < len(s.H); i++ {
		row := []string{
			formatFloat(s.H[i]),
			formatFloat(s.R[i]),
			formatFloat(s.F[i]),
			formatFloat(s.Sigma[i]),
			formatFloat(s.Height[i]),
			formatFloat(s.Tph[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// ExportData is the run-level JSON export schema.
type ExportData struct {
	Scenario   string              `json:"scenario"`
	Tau        float64             `json:"tau"`
	Time       float64             `json:"time"`
	Steps      int                 `json:"steps"`
	Times      []float64           `json:"times"`
	MdotIn     []float64           `json:"mdot_in"`
	MdotOut    []float64           `json:"mdot_out"`
	Lx         []float64           `json:"lx"`
	Metrics    map[string]float64  `json:"metrics"`
	Errors     []string            `json:"errors,omitempty"`
}

// buildExportData flattens a Result into the JSON schema.
func buildExportData(scenario string, tau, time float64, result *evolve.Result, runMetrics map[string]float64) ExportData {
	data := ExportData{
		Scenario: scenario,
		Tau:      tau,
		Time:     time,
		Steps:    len(result.Snapshots),
		Times:    make([]float64, len(result.Snapshots)),
		MdotIn:   make([]float64, len(result.Snapshots)),
		MdotOut:  make([]float64, len(result.Snapshots)),
		Lx:       make([]float64, len(result.Snapshots)),
		Metrics:  runMetrics,
	}
	for i, s := range result.Snapshots {
		data.Times[i] = s.T
		data.MdotIn[i] = s.MdotIn
		data.MdotOut[i] = s.MdotOut
		data.Lx[i] = s.Lx
	}
	for _, err := range result.Errors {
		data.Errors = append(data.Errors, err.Error())
	}
	return data
}

// ExportJSON writes the run to path as indented JSON.
func ExportJSON(path, scenario string, tau, time float64, result *evolve.Result, runMetrics map[string]float64) error {
	data := buildExportData(scenario, tau, time, result, runMetrics)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONStdout writes the run as indented JSON to stdout.
func ExportJSONStdout(scenario string, tau, time float64, result *evolve.Result, runMetrics map[string]float64) error {
	data := buildExportData(scenario, tau, time, result, runMetrics)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
