package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/config"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/model"
)

func clusters() ([][]float64, []float64) {
	X := [][]float64{
		{1, 2, 0.5}, {1.2, 1.8, 0.4}, {0.9, 2.1, 0.6}, {1.1, 2.0, 0.5},
		{1.0, 1.9, 0.45}, {0.8, 2.2, 0.55}, {1.3, 1.7, 0.5},
		{6, 8, 3.0}, {6.2, 7.9, 3.1}, {5.9, 8.2, 2.9}, {6.1, 8.1, 3.0}, {5.8, 7.8, 3.2},
	}
	y := []float64{0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	return X, y
}

func cfgWith(classifier string, k int) config.Config {
	cfg := config.Default()
	cfg.Classifier = classifier
	cfg.Components = k
	return cfg
}

func TestNewString(t *testing.T) {
	p, err := New(config.Default())
	require.NoError(t, err)
	assert.Equal(t,
		"Pipeline(steps=[('reduce_dim', PCA(n_components=7)), ('gnb', GaussianNB(var_smoothing=1e-09))])",
		p.String())

	p, err = New(cfgWith(config.DecisionTree, 7))
	require.NoError(t, err)
	assert.Equal(t,
		"Pipeline(steps=[('reduce_dim', PCA(n_components=7)), ('dtc', DecisionTreeClassifier(max_depth=5, min_samples_split=10))])",
		p.String())

	p, err = New(cfgWith(config.RandomForest, 7))
	require.NoError(t, err)
	assert.Contains(t, p.String(), "('rfc', RandomForestClassifier(n_estimators=100, min_samples_split=50))")

	_, err = New(cfgWith("svc", 7))
	assert.Error(t, err)
}

func TestPipelineFitPredict(t *testing.T) {
	X, y := clusters()
	for _, name := range []string{config.GaussianNB, config.DecisionTree} {
		t.Run(name, func(t *testing.T) {
			cfg := cfgWith(name, 2)
			p, err := New(cfg)
			require.NoError(t, err)
			require.NoError(t, p.Fit(X, y))

			got, err := p.Predict([][]float64{{1, 2, 0.5}, {6.1, 8, 3}})
			require.NoError(t, err)
			assert.Equal(t, []float64{0, 1}, got)
		})
	}
}

func TestPipelineTransform(t *testing.T) {
	X, y := clusters()
	p, err := New(cfgWith(config.GaussianNB, 2))
	require.NoError(t, err)
	require.NoError(t, p.Fit(X, y))

	out, err := p.Transform(X)
	require.NoError(t, err)
	require.Len(t, out, len(X))
	assert.Len(t, out[0], 2)
	require.NotNil(t, p.PCA())
	assert.Equal(t, 2, p.PCA().K)
}

func TestPipelineErrors(t *testing.T) {
	X, y := clusters()

	p, err := New(cfgWith(config.GaussianNB, 5))
	require.NoError(t, err)
	assert.Error(t, p.Fit(X, y), "more components than features")

	p, err = New(cfgWith(config.GaussianNB, 2))
	require.NoError(t, err)
	_, err = p.Predict(X)
	assert.ErrorIs(t, err, model.ErrNotFitted)

	assert.Error(t, (&Pipeline{}).Fit(X, y))
}

func TestPipelineClone(t *testing.T) {
	X, y := clusters()
	for _, name := range []string{config.GaussianNB, config.DecisionTree, config.RandomForest} {
		t.Run(name, func(t *testing.T) {
			p, err := New(cfgWith(name, 2))
			require.NoError(t, err)
			require.NoError(t, p.Fit(X, y))

			c, err := p.Clone()
			require.NoError(t, err)
			assert.Equal(t, p.String(), c.String())

			want, err := p.Predict(X)
			require.NoError(t, err)
			got, err := c.Predict(X)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}
