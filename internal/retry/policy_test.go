package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelayGrowth(t *testing.T) {
	tests := []struct {
		name string
		mode BackoffMode
		want []time.Duration
	}{
		{"fixed", BackoffFixed, []time.Duration{time.Second, time.Second, time.Second}},
		{"linear", BackoffLinear, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}},
		{"exponential", BackoffExponential, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Policy{Mode: tt.mode, Initial: time.Second, Max: 30 * time.Second, MaxRetries: 3}
			for i, want := range tt.want {
				assert.Equal(t, want, p.Delay(i+1))
			}
		})
	}
}

func TestDelayCappedAtMax(t *testing.T) {
	p := Policy{Mode: BackoffExponential, Initial: time.Second, Max: 3 * time.Second, MaxRetries: 10}
	assert.Equal(t, 3*time.Second, p.Delay(5))
}

func TestDelayZeroForNoRetry(t *testing.T) {
	assert.Equal(t, time.Duration(0), DefaultPolicy().Delay(0))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())
	assert.Error(t, Policy{Initial: 0, Max: time.Second}.Validate())
	assert.Error(t, Policy{Initial: time.Second, Max: 0}.Validate())
	assert.Error(t, Policy{Initial: time.Second, Max: time.Second, MaxRetries: -1}.Validate())
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	p := Policy{Mode: BackoffFixed, Initial: time.Millisecond, Max: time.Millisecond, MaxRetries: 3}

	calls := 0
	err := p.Do(func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoGivesUpAfterMaxRetries(t *testing.T) {
	p := Policy{Mode: BackoffFixed, Initial: time.Millisecond, Max: time.Millisecond, MaxRetries: 2}

	calls := 0
	boom := errors.New("boom")
	err := p.Do(func() error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls) // initial attempt plus two retries
}
