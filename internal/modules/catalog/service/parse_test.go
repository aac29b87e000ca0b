package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalogValidRecord(t *testing.T) {
	data := []byte(`[{
		"id": "add_website",
		"title": "Add your website link",
		"type": "profile",
		"category": "basic_info",
		"priority": "high",
		"impact": "high",
		"points": 20
	}]`)

	templates, report, err := parseCatalog(data)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Empty(t, report.Rejects)
	assert.Equal(t, 1, report.Loaded)
	assert.Equal(t, "add_website", templates[0].ID)
}

func TestParseCatalogMissingTitleIsRejected(t *testing.T) {
	data := []byte(`[{
		"id": "mystery",
		"type": "profile",
		"category": "basic_info",
		"priority": "high",
		"impact": "high",
		"points": 20
	}]`)

	templates, report, err := parseCatalog(data)
	require.NoError(t, err)
	assert.Empty(t, templates)
	require.Len(t, report.Rejects, 1)
	assert.Equal(t, "mystery", report.Rejects[0].ID)
	assert.Contains(t, report.Rejects[0].Reason, "missing title")
}

func TestParseCatalogBadRecordDoesNotPoisonTheRest(t *testing.T) {
	data := []byte(`[
		{"id": "broken", "title": "Broken", "type": "profile", "category": "basic_info", "priority": "high", "impact": "high", "points": "twenty"},
		{"id": "fine", "title": "Fine", "type": "posts", "category": "content", "priority": "low", "impact": "low", "points": 5}
	]`)

	templates, report, err := parseCatalog(data)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "fine", templates[0].ID)
	require.Len(t, report.Rejects, 1)
	assert.Equal(t, 0, report.Rejects[0].Index)
}

func TestParseCatalogRejectsUnknownEnums(t *testing.T) {
	data := []byte(`[
		{"id": "a", "title": "A", "type": "telepathy", "category": "basic_info", "priority": "high", "impact": "high", "points": 5},
		{"id": "b", "title": "B", "type": "profile", "category": "basic_info", "priority": "urgent", "impact": "high", "points": 5},
		{"id": "c", "title": "C", "type": "profile", "category": "basic_info", "priority": "high", "impact": "high", "points": 0}
	]`)

	templates, report, err := parseCatalog(data)
	require.NoError(t, err)
	assert.Empty(t, templates)
	assert.Len(t, report.Rejects, 3)
}

func TestParseCatalogRejectsDuplicateIDs(t *testing.T) {
	data := []byte(`[
		{"id": "dup", "title": "First", "type": "profile", "category": "basic_info", "priority": "high", "impact": "high", "points": 5},
		{"id": "dup", "title": "Second", "type": "posts", "category": "content", "priority": "low", "impact": "low", "points": 5}
	]`)

	templates, report, err := parseCatalog(data)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "First", templates[0].Title)
	require.Len(t, report.Rejects, 1)
	assert.Equal(t, "duplicate template id", report.Rejects[0].Reason)
}

func TestParseCatalogRejectsRepeatableWithoutFrequency(t *testing.T) {
	data := []byte(`[{
		"id": "r", "title": "R", "type": "posts", "category": "content",
		"priority": "low", "impact": "low", "points": 5, "repeatable": true
	}]`)

	templates, report, err := parseCatalog(data)
	require.NoError(t, err)
	assert.Empty(t, templates)
	require.Len(t, report.Rejects, 1)
	assert.Contains(t, report.Rejects[0].Reason, "repeat_frequency")
}

func TestParseCatalogInvalidTopLevel(t *testing.T) {
	_, _, err := parseCatalog([]byte(`{"not": "an array"}`))
	assert.Error(t, err)
}

func TestEmbeddedCatalogLoadsClean(t *testing.T) {
	templates, report, err := LoadCatalog()
	require.NoError(t, err)
	assert.Empty(t, report.Rejects)
	assert.GreaterOrEqual(t, len(templates), 20)

	for _, tpl := range templates {
		assert.NoError(t, validateTemplate(tpl), tpl.ID)
	}
}
