package fp_serv_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_fptree"
	recoverpkg "github.com/rskv-p/fpmine/recover"
	"github.com/rskv-p/fpmine/servs/s_fp/fp_serv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	svc, err := fp_serv.New(newConfig(t))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Run(ctx, fp_serv.Job{Transactions: x_fptree.Transactions(worked), MinSupport: 2})
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = svc.Run(ctx, fp_serv.Job{
		Transactions: x_fptree.Transactions(worked),
		MinSupport:   2,
		Sink:         x_fptree.SinkFunc(func(x_fptree.Itemset) error { return boom }),
	})
	require.ErrorIs(t, err, boom)

	m := svc.Metrics()
	assert.Equal(t, int64(2), m[fp_serv.MetricRunsStarted])
	assert.Equal(t, int64(1), m[fp_serv.MetricRunsDone])
	assert.Equal(t, int64(1), m[fp_serv.MetricRunsFailed])
	assert.Equal(t, int64(8), m[fp_serv.MetricTransactions])
	assert.Equal(t, int64(5), m[fp_serv.MetricItemsets])

	svc.WithMetricPrefix("custom.").Add("hits", 3)
	assert.Equal(t, int64(3), svc.Metrics()["custom.hits"])

	svc.ResetMetrics()
	assert.Empty(t, svc.Metrics())
}

func TestRun_PanickingSink(t *testing.T) {
	svc, err := fp_serv.New(newConfig(t))
	require.NoError(t, err)

	_, err = svc.Run(context.Background(), fp_serv.Job{
		Transactions: x_fptree.Transactions(worked),
		MinSupport:   2,
		Sink:         x_fptree.SinkFunc(func(x_fptree.Itemset) error { panic("write on closed socket") }),
	})
	assert.ErrorIs(t, err, recoverpkg.ErrPanic)
	assert.False(t, fp_serv.IsClientError(err))
}

func TestHealth(t *testing.T) {
	cfg := newConfig(t)
	svc, err := fp_serv.New(cfg, fp_serv.WithStore(newStore(t)))
	require.NoError(t, err)
	ctx := context.Background()

	status, checks := svc.Health(ctx)
	assert.Equal(t, constant.StatusOK, status)
	assert.Equal(t, "ok", checks[constant.StoreKey])
	assert.Equal(t, "ok", fp_serv.StatusText(status))

	svc.RegisterHealthProbe(func(context.Context) (string, int, any) {
		return "queue", constant.StatusWarning, "slow"
	})
	status, checks = svc.Health(ctx)
	assert.Equal(t, constant.StatusWarning, status)
	assert.Equal(t, "slow", checks["queue"])

	svc.RegisterHealthProbe(func(context.Context) (string, int, any) {
		return "disk", 7, "full"
	})
	status, _ = svc.Health(ctx)
	assert.Equal(t, constant.StatusCritical, status)
	assert.Equal(t, "critical", fp_serv.StatusText(status))
}

func TestHealth_MissingDataDir(t *testing.T) {
	cfg := newConfig(t)
	cfg.DataDir = "/nonexistent/fpmine"
	svc, err := fp_serv.New(cfg)
	require.NoError(t, err)

	status, checks := svc.Health(context.Background())
	assert.Equal(t, constant.StatusWarning, status)
	assert.Contains(t, checks[constant.DataDirKey], "missing")
}
