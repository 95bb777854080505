package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDailySpec(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"09:00", "0 9 * * *", true},
		{"23:59", "59 23 * * *", true},
		{"0:5", "5 0 * * *", true},
		{"24:00", "", false},
		{"09:60", "", false},
		{"morning", "", false},
		{"09", "", false},
	}
	for _, tc := range cases {
		got, err := buildDailySpec(tc.in)
		if tc.ok {
			assert.NoError(t, err, tc.in)
			assert.Equal(t, tc.want, got, tc.in)
		} else {
			assert.Error(t, err, tc.in)
		}
	}
}

func TestRunnerRejectsUnknownJob(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Enqueue("no-such-job")
	assert.Error(t, err)
	err = r.Run("no-such-job")
	assert.Error(t, err)
}
