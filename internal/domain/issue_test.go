package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssue_FindSummary(t *testing.T) {
	issue := &Issue{Comments: []Comment{
		{Author: "a", Body: "first"},
		{Author: "bot", Body: "Summary:\n  short version\n"},
	}}
	got, ok := issue.FindSummary()
	assert.True(t, ok)
	assert.Equal(t, "short version", got)

	_, ok = (&Issue{}).FindSummary()
	assert.False(t, ok)
}
