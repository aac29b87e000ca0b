package progress

import (
	"math"

	pkgDto "lokalpulse.com/gbpdashboard/pkg/dto"
)

// Level thresholds (all-time points). Levels are permanent: a ledger
// reversal lowers points but never demotes the level.
const (
	PointsLegend    = 20000
	PointsAuthority = 8000
	PointsAchiever  = 3000
	PointsContender = 600
	PointsBuilder   = 100
	PointsStarter   = 0
)

// Weekly activity thresholds, used for the activity label only.
const (
	WeeklyOnFire   = 100
	WeeklyTrending = 50
	WeeklySteady   = 20
)

// LevelForPoints maps all-time points to a numeric level 1-6.
func LevelForPoints(allTimePoints int) int {
	switch {
	case allTimePoints >= PointsLegend:
		return 6
	case allTimePoints >= PointsAuthority:
		return 5
	case allTimePoints >= PointsAchiever:
		return 4
	case allTimePoints >= PointsContender:
		return 3
	case allTimePoints >= PointsBuilder:
		return 2
	default:
		return 1
	}
}

// LevelName returns the display name for a numeric level.
func LevelName(level int) string {
	switch level {
	case 6:
		return "Legend"
	case 5:
		return "Authority"
	case 4:
		return "Achiever"
	case 3:
		return "Contender"
	case 2:
		return "Builder"
	default:
		return "Starter"
	}
}

// GetLevelStatus calculates the full ladder position for a location.
// allTimePoints drives the level, weeklyPoints only the activity label.
func GetLevelStatus(allTimePoints, weeklyPoints int) pkgDto.LevelStatus {
	var status pkgDto.LevelStatus
	status.CurrentPoints = allTimePoints
	status.WeeklyPoints = weeklyPoints
	status.Level = LevelForPoints(allTimePoints)
	status.LevelName = LevelName(status.Level)

	switch status.Level {
	case 6:
		status.NextLevel = "Max Level"
		status.TargetPoints = PointsLegend
		status.Progress = 100
	case 5:
		status.NextLevel = "Legend"
		status.TargetPoints = PointsLegend
		status.Progress = (float64(allTimePoints) / float64(PointsLegend)) * 100
	case 4:
		status.NextLevel = "Authority"
		status.TargetPoints = PointsAuthority
		status.Progress = (float64(allTimePoints) / float64(PointsAuthority)) * 100
	case 3:
		status.NextLevel = "Achiever"
		status.TargetPoints = PointsAchiever
		status.Progress = (float64(allTimePoints) / float64(PointsAchiever)) * 100
	case 2:
		status.NextLevel = "Contender"
		status.TargetPoints = PointsContender
		status.Progress = (float64(allTimePoints) / float64(PointsContender)) * 100
	default:
		status.NextLevel = "Builder"
		status.TargetPoints = PointsBuilder
		if allTimePoints > 0 {
			status.Progress = (float64(allTimePoints) / float64(PointsBuilder)) * 100
		}
	}

	switch {
	case weeklyPoints >= WeeklyOnFire:
		status.WeeklyLabel = "On Fire!"
	case weeklyPoints >= WeeklyTrending:
		status.WeeklyLabel = "Trending"
	case weeklyPoints >= WeeklySteady:
		status.WeeklyLabel = "Steady"
	default:
		status.WeeklyLabel = ""
	}

	status.Progress = math.Round(status.Progress*100) / 100
	return status
}
