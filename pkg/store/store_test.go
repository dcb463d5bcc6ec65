package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		run := &TrainingRun{
			RunID:         uuid.NewString(),
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
			Program:       "poi_id",
			Pipeline:      "Pipeline(gnb)",
			TruePositives: i,
			Precision:     0.5,
		}
		run.SetFeatures([]string{"poi", "salary"})
		require.NoError(t, s.Record(run))
		assert.NotZero(t, run.ID)
	}

	runs, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 2, runs[0].TruePositives)
	assert.Equal(t, 1, runs[1].TruePositives)
	assert.Equal(t, []string{"poi", "salary"}, runs[0].FeatureList())
}

func TestRecordRejectsDuplicates(t *testing.T) {
	s := newTestStore(t)
	id := uuid.NewString()
	require.NoError(t, s.Record(&TrainingRun{RunID: id}))
	assert.Error(t, s.Record(&TrainingRun{RunID: id}))
	assert.Error(t, s.Record(&TrainingRun{}))
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestFeatureListEmpty(t *testing.T) {
	assert.Nil(t, TrainingRun{}.FeatureList())
}
