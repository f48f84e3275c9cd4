package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"logscope/internal/config"
	"logscope/internal/model"
)

func newTestRedisRepo(t *testing.T, cfg *config.RedisConfig) (*RedisRepository, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})

	if cfg == nil {
		cfg = &config.RedisConfig{}
	}
	cfg.Addr = s.Addr()

	return &RedisRepository{
		client: client,
		cfg:    cfg,
	}, s
}

func cachedReport(t *testing.T, s *miniredis.Miniredis, runID string) *model.ReportEnvelope {
	t.Helper()
	raw, err := s.Get(ReportKeyPrefix + runID)
	require.NoError(t, err)

	var env model.ReportEnvelope
	require.NoError(t, msgpack.Unmarshal([]byte(raw), &env))
	return &env
}

func testEnvelope(runID string) *model.ReportEnvelope {
	code := 200
	ip := "10.0.0.1"
	return &model.ReportEnvelope{
		RunID:       runID,
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Report: &model.AnalysisReport{
			Path:          "access.log",
			TotalRequests: 2,
			Stats: model.Stats{
				Clients: model.ClientStats{
					TotalUniqueIP: 1,
					TopIPs:        []model.IPStat{{IP: &ip, Total: 2, Percent: 100}},
				},
				Responses: model.ResponseStats{
					StatusCodeRate:        []model.StatusCodeStat{{Code: &code, Total: 2, Percent: 100}},
					StatusCodeClassesRate: []model.StatusClassStat{{Class: model.StatusClass2xx, Total: 2, Percent: 100}},
				},
			},
		},
	}
}

func TestNewRedisRepository(t *testing.T) {
	t.Run("connects", func(t *testing.T) {
		s := miniredis.RunT(t)
		cfg := &config.RedisConfig{Addr: s.Addr()}

		repo, err := NewRedisRepository(cfg)
		require.NoError(t, err)
		defer repo.Close()

		assert.Equal(t, cfg, repo.cfg)
		require.NoError(t, repo.SaveReport(context.Background(), testEnvelope("run-1")))
		assert.True(t, s.Exists(ReportKeyPrefix+"run-1"))
	})

	t.Run("unreachable server", func(t *testing.T) {
		s := miniredis.RunT(t)
		addr := s.Addr()
		s.Close()

		repo, err := NewRedisRepository(&config.RedisConfig{Addr: addr})
		assert.Error(t, err)
		assert.Nil(t, repo)
		assert.Contains(t, err.Error(), addr)
	})
}

func TestRedisRepository_SaveReport(t *testing.T) {
	repo, s := newTestRedisRepo(t, &config.RedisConfig{TTL: time.Hour})
	defer repo.Close()

	env := testEnvelope("run-1")
	require.NoError(t, repo.SaveReport(context.Background(), env))

	assert.Equal(t, time.Hour, s.TTL(ReportKeyPrefix+"run-1"))

	got := cachedReport(t, s, "run-1")
	assert.Equal(t, "run-1", got.RunID)
	assert.True(t, env.GeneratedAt.Equal(got.GeneratedAt))
	require.NotNil(t, got.Report)
	assert.Equal(t, "access.log", got.Report.Path)
	assert.Equal(t, 2, got.Report.TotalRequests)
	require.Len(t, got.Report.Stats.Responses.StatusCodeRate, 1)
	assert.Equal(t, 200, *got.Report.Stats.Responses.StatusCodeRate[0].Code)
	assert.Equal(t, "10.0.0.1", *got.Report.Stats.Clients.TopIPs[0].IP)

	s.FastForward(2 * time.Hour)
	assert.False(t, s.Exists(ReportKeyPrefix+"run-1"))
}

func TestRedisRepository_DefaultTTL(t *testing.T) {
	repo, s := newTestRedisRepo(t, nil)
	defer repo.Close()

	require.NoError(t, repo.SaveReport(context.Background(), testEnvelope("run-1")))
	assert.Equal(t, DefaultReportTTL, s.TTL(ReportKeyPrefix+"run-1"))
}

func TestRedisRepository_RecentList(t *testing.T) {
	repo, s := newTestRedisRepo(t, &config.RedisConfig{RecentLimit: 3})
	defer repo.Close()

	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.SaveReport(ctx, testEnvelope(fmt.Sprintf("run-%d", i))))
	}

	ids, err := s.List(RecentReportsKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-5", "run-4", "run-3"}, ids, "list is capped at the recent limit")
}

func TestRedisRepository_SaveReportClosedClient(t *testing.T) {
	repo, _ := newTestRedisRepo(t, nil)
	require.NoError(t, repo.Close())

	err := repo.SaveReport(context.Background(), testEnvelope("run-1"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to cache report run-1")
}
