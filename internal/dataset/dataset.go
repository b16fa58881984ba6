// Package dataset is the in-memory feature store for one champion's
// historical games. A Dataset is built once per run, by the ClickHouse
// loader or directly in tests, and is read-only afterwards.
package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/riftlab/build-optimizer/internal/models"
)

// Dataset holds the champion's flattened game rows projected onto the
// feature columns the model will train on.
type Dataset struct {
	championID int
	itemSlots  []string
	columns    []string // item slots first, then available stat columns
	missing    []string // canonical stat columns absent from the source

	rows  [][]float64 // one value per column
	wins  []bool
	means []float64 // computed on Seal
}

// New creates an empty Dataset. available lists the stat columns the source
// actually carries; canonical stat columns outside it are excluded from the
// feature set rather than treated as an error, and reported via Missing.
func New(championID int, itemSlots []string, available []string) *Dataset {
	have := make(map[string]bool, len(available))
	for _, col := range available {
		have[col] = true
	}

	columns := make([]string, 0, len(itemSlots)+len(models.StatColumns))
	columns = append(columns, itemSlots...)

	var missing []string
	for _, col := range models.StatColumns {
		if have[col] {
			columns = append(columns, col)
		} else {
			missing = append(missing, col)
		}
	}

	return &Dataset{
		championID: championID,
		itemSlots:  append([]string(nil), itemSlots...),
		columns:    columns,
		missing:    missing,
	}
}

// Append adds one game. build must have one value per item slot; stats is
// keyed by stat column name and missing keys default to zero.
func (d *Dataset) Append(build []int, stats map[string]float64, win bool) error {
	if len(build) != len(d.itemSlots) {
		return fmt.Errorf("build has %d slots, dataset has %d", len(build), len(d.itemSlots))
	}

	row := make([]float64, len(d.columns))
	for i, item := range build {
		row[i] = float64(item)
	}
	for i := len(d.itemSlots); i < len(d.columns); i++ {
		row[i] = stats[d.columns[i]]
	}

	d.rows = append(d.rows, row)
	d.wins = append(d.wins, win)
	d.means = nil
	return nil
}

// AppendRow adds one typed participant row.
func (d *Dataset) AppendRow(r *models.ParticipantRow) error {
	build := make([]int, len(d.itemSlots))
	for i := range build {
		if i < len(r.Items) {
			build[i] = int(r.Items[i])
		}
	}
	stats := make(map[string]float64, len(d.columns))
	for _, col := range d.columns[len(d.itemSlots):] {
		if v, ok := r.Stat(col); ok {
			stats[col] = v
		}
	}
	return d.Append(build, stats, r.Win)
}

func (d *Dataset) ChampionID() int { return d.championID }

// FeatureColumns returns the narrowed feature list, fixed for the run.
func (d *Dataset) FeatureColumns() []string { return d.columns }

// Missing returns the canonical stat columns the source did not carry.
func (d *Dataset) Missing() []string { return d.missing }

func (d *Dataset) NumSlots() int { return len(d.itemSlots) }

func (d *Dataset) Len() int { return len(d.rows) }

// Features returns the feature matrix, one row per game.
func (d *Dataset) Features() [][]float64 { return d.rows }

// Labels returns the win outcomes as 0/1 classes.
func (d *Dataset) Labels() []int {
	labels := make([]int, len(d.wins))
	for i, win := range d.wins {
		if win {
			labels[i] = 1
		}
	}
	return labels
}

// Column returns all values of the named feature column in row order.
func (d *Dataset) Column(name string) ([]float64, bool) {
	idx := -1
	for i, col := range d.columns {
		if col == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	vals := make([]float64, len(d.rows))
	for r, row := range d.rows {
		vals[r] = row[idx]
	}
	return vals, true
}

// Wins returns the per-row win outcomes.
func (d *Dataset) Wins() []bool { return d.wins }

// Mean returns the training-set mean of the given column index.
func (d *Dataset) Mean(col int) float64 {
	if d.means == nil {
		d.computeMeans()
	}
	return d.means[col]
}

// Means returns per-column means in feature order.
func (d *Dataset) Means() []float64 {
	if d.means == nil {
		d.computeMeans()
	}
	return d.means
}

func (d *Dataset) computeMeans() {
	d.means = make([]float64, len(d.columns))
	if len(d.rows) == 0 {
		return
	}
	col := make([]float64, len(d.rows))
	for c := range d.columns {
		for r, row := range d.rows {
			col[r] = row[c]
		}
		d.means[c] = stat.Mean(col, nil)
	}
}

// WinRate returns the fraction of winning games.
func (d *Dataset) WinRate() float64 {
	if len(d.wins) == 0 {
		return 0
	}
	wins := 0
	for _, w := range d.wins {
		if w {
			wins++
		}
	}
	return float64(wins) / float64(len(d.wins))
}

// WinningBuilds returns up to limit item builds taken verbatim from winning
// games, in row order. These seed both optimizers' populations.
func (d *Dataset) WinningBuilds(limit int) [][]int {
	var builds [][]int
	for i, row := range d.rows {
		if !d.wins[i] {
			continue
		}
		build := make([]int, len(d.itemSlots))
		for s := range build {
			build[s] = int(row[s])
		}
		builds = append(builds, build)
		if len(builds) == limit {
			break
		}
	}
	return builds
}
