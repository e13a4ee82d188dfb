package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fold/internal/games/fold/core"
)

func TestObserverCountsByMode(t *testing.T) {
	c := NewCollector()
	fold := c.Observer("fold")
	practice := c.Observer("fold_practice")

	fold.FoldStarted(1, core.DirUp)
	fold.FoldStarted(1, core.DirUp)
	fold.FoldStarted(1, core.DirLeft)
	fold.FoldCompleted(1)
	fold.InvalidFold(1)
	fold.Undo(1)
	practice.LevelSkipped(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.foldsStarted.WithLabelValues("fold", "Up")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.foldsStarted.WithLabelValues("fold", "Left")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.foldsCompleted.WithLabelValues("fold")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.invalidFolds.WithLabelValues("fold")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.undos.WithLabelValues("fold")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.levelsSkipped.WithLabelValues("fold_practice")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.levelsSkipped.WithLabelValues("fold")))
}

func TestHighestLevelOnlyRises(t *testing.T) {
	c := NewCollector()
	o := c.Observer("fold")

	o.LevelWon(3, 400, 4)
	o.LevelWon(2, 700, 3)
	assert.Equal(t, 3.0, testutil.ToFloat64(c.highestLevel.WithLabelValues("fold")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.levelsWon.WithLabelValues("fold")))

	o.LevelWon(5, 1300, 8)
	assert.Equal(t, 5.0, testutil.ToFloat64(c.highestLevel.WithLabelValues("fold")))
}

func TestSessionsGauge(t *testing.T) {
	c := NewCollector()
	c.SessionStarted()
	c.SessionStarted()
	c.SessionEnded()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.sessions))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector()
	c.Observer("fold").FoldCompleted(1)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.True(t, strings.Contains(string(body), `fold_folds_completed_total{mode="fold"} 1`), string(body))
}
