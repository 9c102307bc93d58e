package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCourseProgressSummary(t *testing.T) {
	cases := []struct {
		name      string
		completed int
		total     int
		want      CourseProgressSummary
	}{
		{"two of five", 2, 5, CourseProgressSummary{Completed: 2, Total: 5, Percentage: 40}},
		{"no materials", 0, 0, CourseProgressSummary{}},
		{"rounds half up", 1, 8, CourseProgressSummary{Completed: 1, Total: 8, Percentage: 13}},
		{"one third", 1, 3, CourseProgressSummary{Completed: 1, Total: 3, Percentage: 33}},
		{"all done", 4, 4, CourseProgressSummary{Completed: 4, Total: 4, Percentage: 100}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewCourseProgressSummary(tc.completed, tc.total))
		})
	}
}

func TestSummaryIsComplete(t *testing.T) {
	assert.False(t, NewCourseProgressSummary(0, 0).IsComplete())
	assert.False(t, NewCourseProgressSummary(2, 3).IsComplete())
	assert.True(t, NewCourseProgressSummary(3, 3).IsComplete())
}
