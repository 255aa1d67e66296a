package config

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{name: "every ten minutes", schedule: "*/10 * * * *"},
		{name: "daily", schedule: "30 5 * * *"},
		{name: "weekdays", schedule: "30 9 * * 1-5"},
		{name: "descriptor", schedule: "@hourly"},
		{name: "empty", schedule: "", wantErr: true},
		{name: "too few fields", schedule: "* * *", wantErr: true},
		{name: "out of range", schedule: "61 * * * *", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	assert.NoError(t, ValidateTimezone("UTC"))
	assert.Error(t, ValidateTimezone(""))
	assert.Error(t, ValidateTimezone("Nowhere/Special"))
}

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, ValidateDuration(time.Second, time.Second, time.Minute))
	assert.NoError(t, ValidateDuration(time.Minute, time.Second, time.Minute))
	assert.EqualError(t, ValidateDuration(time.Millisecond, time.Second, time.Minute), "duration 1ms is below minimum 1s")
	assert.EqualError(t, ValidateDuration(time.Hour, time.Second, time.Minute), "duration 1h0m0s exceeds maximum 1m0s")
	assert.Error(t, ValidateDuration(time.Second, time.Minute, time.Second))
}

func TestValidateIntRange(t *testing.T) {
	assert.NoError(t, ValidateIntRange(1024, 1024, 65535))
	assert.EqualError(t, ValidateIntRange(80, 1024, 65535), "value 80 is below minimum 1024")
	assert.EqualError(t, ValidateIntRange(70000, 1024, 65535), "value 70000 exceeds maximum 65535")
	assert.Error(t, ValidateIntRange(5, 10, 1))
}

func TestValidateFloatRange(t *testing.T) {
	assert.NoError(t, ValidateFloatRange(0, 0, 100))
	assert.NoError(t, ValidateFloatRange(100, 0, 100))
	assert.EqualError(t, ValidateFloatRange(-0.5, 0, 100), "value -0.5 is below minimum 0")
	assert.EqualError(t, ValidateFloatRange(100.5, 0, 100), "value 100.5 exceeds maximum 100")
	assert.Error(t, ValidateFloatRange(math.NaN(), 0, 100))
	assert.Error(t, ValidateFloatRange(1, 2, 1))
}
