package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeLogNormalizeDefaultsToPrivate(t *testing.T) {
	entry := &ChangeLog{Comment: "called reporter"}
	entry.Normalize()

	assert.Equal(t, VisibilityPrivate, entry.Visibility)
	assert.False(t, entry.ShouldNotify)
}

func TestChangeLogNormalizeStatusChangeIsPublic(t *testing.T) {
	entry := &ChangeLog{
		Status:     &Status{ID: "status-1"},
		Visibility: VisibilityPrivate,
	}
	entry.Normalize()

	assert.Equal(t, VisibilityPublic, entry.Visibility)
	assert.True(t, entry.ShouldNotify)
}

func TestChangeLogNormalizeKeepsExplicitVisibility(t *testing.T) {
	entry := &ChangeLog{Comment: "internal note", Visibility: VisibilityPublic}
	entry.Normalize()

	assert.Equal(t, VisibilityPublic, entry.Visibility)
}
