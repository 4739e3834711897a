package text2audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func buildConfig(opts ...Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := buildConfig()

	assert.Equal(t, ModelGLM45Flash, cfg.model)
	assert.Equal(t, VoiceTongtong, cfg.voice)
	assert.Equal(t, 1.0, cfg.speed)
	assert.Equal(t, 1.0, cfg.volume)
	assert.Equal(t, 500, cfg.segmentLength)
	assert.False(t, cfg.parallel)
	assert.Equal(t, 3, cfg.parallelLimit)
	assert.Equal(t, 3, cfg.maxRetries)
	assert.Equal(t, 100*time.Millisecond, cfg.retryDelay)
	assert.False(t, cfg.thinking)
	assert.False(t, cfg.codingPlan)
}

func TestSpeedClampIsIdempotent(t *testing.T) {
	assert.Equal(t, 2.0, buildConfig(WithSpeed(3.0)).speed)
	assert.Equal(t, 2.0, buildConfig(WithSpeed(3.0), WithSpeed(3.0)).speed)
	assert.Equal(t, 0.5, buildConfig(WithSpeed(0.2)).speed)
	assert.Equal(t, 1.5, buildConfig(WithSpeed(1.5)).speed)
}

func TestVolumeClamp(t *testing.T) {
	assert.Equal(t, 10.0, buildConfig(WithVolume(15.0)).volume)
	assert.Equal(t, 0.0, buildConfig(WithVolume(-1.0)).volume)
	assert.Equal(t, 2.5, buildConfig(WithVolume(2.5)).volume)
}

func TestMaxSegmentLengthClamp(t *testing.T) {
	assert.Equal(t, 100, buildConfig(WithMaxSegmentLength(50)).segmentLength)
	assert.Equal(t, 1024, buildConfig(WithMaxSegmentLength(2000)).segmentLength)
	assert.Equal(t, 800, buildConfig(WithMaxSegmentLength(800)).segmentLength)
}

func TestParallelClamp(t *testing.T) {
	cfg := buildConfig(WithParallel(0))
	assert.True(t, cfg.parallel)
	assert.Equal(t, 1, cfg.parallelLimit)

	assert.Equal(t, 10, buildConfig(WithParallel(20)).parallelLimit)
	assert.Equal(t, 5, buildConfig(WithParallel(5)).parallelLimit)
}

func TestFlagOptions(t *testing.T) {
	cfg := buildConfig(WithThinking(true), WithCodingPlan(true), WithLocalSplit())

	assert.True(t, cfg.thinking)
	assert.True(t, cfg.codingPlan)
	assert.True(t, cfg.localSplit)
}

func TestRetryOption(t *testing.T) {
	cfg := buildConfig(WithRetry(5, 200*time.Millisecond))

	assert.Equal(t, 5, cfg.maxRetries)
	assert.Equal(t, 200*time.Millisecond, cfg.retryDelay)
}

func TestNewAppliesOptions(t *testing.T) {
	conv := New("test-key", WithModel(ModelGLM47), WithVoice(VoiceJam), WithSpeed(9.0))

	assert.Equal(t, ModelGLM47, conv.cfg.model)
	assert.Equal(t, VoiceJam, conv.cfg.voice)
	assert.Equal(t, 2.0, conv.cfg.speed)
	assert.Equal(t, 3, conv.policy.MaxAttempts)
}
