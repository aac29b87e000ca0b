package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLevelForPoints(t *testing.T) {
	cases := []struct {
		points int
		level  int
		name   string
	}{
		{0, 1, "Starter"},
		{99, 1, "Starter"},
		{100, 2, "Builder"},
		{599, 2, "Builder"},
		{600, 3, "Contender"},
		{3000, 4, "Achiever"},
		{8000, 5, "Authority"},
		{20000, 6, "Legend"},
		{95000, 6, "Legend"},
	}

	for _, tc := range cases {
		level := LevelForPoints(tc.points)
		assert.Equal(t, tc.level, level, "points %d", tc.points)
		assert.Equal(t, tc.name, LevelName(level), "points %d", tc.points)
	}
}

func TestGetLevelStatusProgress(t *testing.T) {
	status := GetLevelStatus(300, 0)
	assert.Equal(t, "Builder", status.LevelName)
	assert.Equal(t, "Contender", status.NextLevel)
	assert.Equal(t, PointsContender, status.TargetPoints)
	assert.Equal(t, 50.0, status.Progress)
}

func TestGetLevelStatusMaxLevel(t *testing.T) {
	status := GetLevelStatus(25000, 0)
	assert.Equal(t, "Legend", status.LevelName)
	assert.Equal(t, "Max Level", status.NextLevel)
	assert.Equal(t, 100.0, status.Progress)
}

func TestGetLevelStatusWeeklyLabels(t *testing.T) {
	assert.Equal(t, "On Fire!", GetLevelStatus(0, 150).WeeklyLabel)
	assert.Equal(t, "Trending", GetLevelStatus(0, 60).WeeklyLabel)
	assert.Equal(t, "Steady", GetLevelStatus(0, 20).WeeklyLabel)
	assert.Equal(t, "", GetLevelStatus(0, 5).WeeklyLabel)
}

func TestNextStreak(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 10, d, 12, 0, 0, 0, time.UTC)
	}

	first := nextStreak(nil, day(10), 0)
	assert.Equal(t, 1, first)

	last := day(10)
	assert.Equal(t, 4, nextStreak(&last, day(11), 3), "next day extends")
	assert.Equal(t, 3, nextStreak(&last, day(10), 3), "same day keeps streak")
	assert.Equal(t, 1, nextStreak(&last, day(14), 3), "gap resets")
}

func TestDimensionColumnSymmetry(t *testing.T) {
	assert.Equal(t, "profile_score", dimensionColumn("basic_info"))
	assert.Equal(t, "profile_score", dimensionColumn("attributes"))
	assert.Equal(t, "engagement_score", dimensionColumn("engagement"))
	assert.Equal(t, "content_score", dimensionColumn("visual"))
	assert.Equal(t, "content_score", dimensionColumn("content"))
	assert.Equal(t, "", dimensionColumn("unknown"))
}
