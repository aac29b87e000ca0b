package review

import (
	"errors"
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lokalpulse.com/gbpdashboard/pkg/apperror"
)

func newSanitizingService() *service {
	return &service{sanitizer: bluemonday.StrictPolicy()}
}

func TestSanitizeBodyStripsMarkup(t *testing.T) {
	s := newSanitizingService()

	clean, err := s.sanitizeBody(`Thanks for visiting! <script>alert("x")</script>`)
	require.NoError(t, err)
	assert.Equal(t, "Thanks for visiting!", clean)

	clean, err = s.sanitizeBody(`<b>We appreciate</b> your feedback.`)
	require.NoError(t, err)
	assert.Equal(t, "We appreciate your feedback.", clean)
}

func TestSanitizeBodyTrimsWhitespace(t *testing.T) {
	s := newSanitizingService()

	clean, err := s.sanitizeBody("  Sorry to hear that.  ")
	require.NoError(t, err)
	assert.Equal(t, "Sorry to hear that.", clean)
}

func TestSanitizeBodyRejectsMarkupOnlyInput(t *testing.T) {
	s := newSanitizingService()

	_, err := s.sanitizeBody(`<img src="x" onerror="alert(1)">`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	_, err = s.sanitizeBody("   ")
	require.Error(t, err)
}
