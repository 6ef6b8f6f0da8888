package notices_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splicelang/splice/runtime/notices"
)

func TestReporterDeduplicates(t *testing.T) {
	r := notices.NewReporter()
	r.Add("use commas instead of semicolons", "0.0.5")
	r.Add("use commas instead of semicolons", "0.0.5")
	r.Add("use concat() instead of bracket literals", "0.0.5")

	got := r.Notices()
	require.Len(t, got, 2)
	assert.Equal(t, "use commas instead of semicolons", got[0].Note)
	assert.Equal(t, "use concat() instead of bracket literals", got[1].Note)
	assert.False(t, r.Empty())
}

func TestReporterComments(t *testing.T) {
	r := notices.NewReporter()
	r.Add("semicolon separators are deprecated, use commas instead", "0.0.5")

	comments := r.Comments()
	require.Len(t, comments, 1)
	assert.Equal(t, "// Deprecated: semicolon separators are deprecated, use commas instead (since 0.0.5)", comments[0].Text)
	assert.True(t, comments[0].NewlineBefore)
}

func TestNilReporterIsSafe(t *testing.T) {
	var r *notices.Reporter
	r.Add("anything", "0.0.1")
	assert.Nil(t, r.Notices())
	assert.True(t, r.Empty())
	assert.Empty(t, r.Comments())
}
