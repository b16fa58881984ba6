package dataset

import (
	"math"
	"reflect"
	"testing"

	"github.com/riftlab/build-optimizer/internal/models"
)

func TestFeatureNarrowing(t *testing.T) {
	ds := New(80, models.ItemSlotNames(), []string{"kills", "deaths", "goldEarned"})

	want := append(models.ItemSlotNames(), "kills", "deaths", "goldEarned")
	if !reflect.DeepEqual(ds.FeatureColumns(), want) {
		t.Errorf("columns = %v, want %v", ds.FeatureColumns(), want)
	}

	missing := ds.Missing()
	if len(missing) != len(models.StatColumns)-3 {
		t.Errorf("missing = %v, want %d columns", missing, len(models.StatColumns)-3)
	}
	for _, col := range missing {
		if col == "kills" || col == "deaths" || col == "goldEarned" {
			t.Errorf("column %q reported missing but is available", col)
		}
	}
}

func TestMeansAndLabels(t *testing.T) {
	ds := New(80, []string{"item0", "item1"}, []string{"kills"})

	if err := ds.Append([]int{10, 0}, map[string]float64{"kills": 4}, true); err != nil {
		t.Fatal(err)
	}
	if err := ds.Append([]int{20, 30}, map[string]float64{"kills": 8}, false); err != nil {
		t.Fatal(err)
	}

	// Columns: item0, item1, kills.
	means := ds.Means()
	wantMeans := []float64{15, 15, 6}
	for i, want := range wantMeans {
		if math.Abs(means[i]-want) > 1e-9 {
			t.Errorf("mean[%d] = %v, want %v", i, means[i], want)
		}
	}

	if got := ds.Labels(); !reflect.DeepEqual(got, []int{1, 0}) {
		t.Errorf("labels = %v, want [1 0]", got)
	}
	if wr := ds.WinRate(); wr != 0.5 {
		t.Errorf("win rate = %v, want 0.5", wr)
	}
}

func TestAppendRejectsWrongSlotCount(t *testing.T) {
	ds := New(80, models.ItemSlotNames(), models.StatColumns)
	if err := ds.Append([]int{1, 2}, nil, true); err == nil {
		t.Error("expected error for short build")
	}
}

func TestWinningBuilds(t *testing.T) {
	ds := New(80, []string{"item0", "item1"}, nil)
	ds.Append([]int{1, 2}, nil, false)
	ds.Append([]int{3, 4}, nil, true)
	ds.Append([]int{5, 6}, nil, true)
	ds.Append([]int{7, 8}, nil, true)

	builds := ds.WinningBuilds(2)
	want := [][]int{{3, 4}, {5, 6}}
	if !reflect.DeepEqual(builds, want) {
		t.Errorf("winning builds = %v, want %v", builds, want)
	}
}
