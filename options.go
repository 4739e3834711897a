package text2audio

import "time"

// Clamp bounds for the numeric options. Out-of-range values are clamped
// rather than rejected, so a built configuration is always valid.
const (
	minSpeed = 0.5
	maxSpeed = 2.0

	minVolume = 0.0
	maxVolume = 10.0

	minSegmentLength = 100
	maxSegmentLength = 1024

	minParallel = 1
	maxParallel = 10
)

type config struct {
	model         Model
	voice         Voice
	speed         float64
	volume        float64
	segmentLength int
	parallel      bool
	parallelLimit int
	maxRetries    int
	retryDelay    time.Duration
	thinking      bool
	codingPlan    bool
	localSplit    bool
	baseURL       string
}

func defaultConfig() config {
	return config{
		model:         ModelGLM45Flash,
		voice:         VoiceTongtong,
		speed:         1.0,
		volume:        1.0,
		segmentLength: 500,
		parallelLimit: 3,
		maxRetries:    3,
		retryDelay:    100 * time.Millisecond,
	}
}

// Option configures a Converter at construction time. The configuration is
// immutable once New returns.
type Option func(*config)

// WithModel sets the chat model used for text splitting.
func WithModel(m Model) Option {
	return func(c *config) { c.model = m }
}

// WithVoice sets the synthesis voice.
func WithVoice(v Voice) Option {
	return func(c *config) { c.voice = v }
}

// WithSpeed sets the speech speed, clamped to [0.5, 2.0].
func WithSpeed(speed float64) Option {
	return func(c *config) { c.speed = clampFloat(speed, minSpeed, maxSpeed) }
}

// WithVolume sets the speech volume, clamped to [0.0, 10.0].
func WithVolume(volume float64) Option {
	return func(c *config) { c.volume = clampFloat(volume, minVolume, maxVolume) }
}

// WithMaxSegmentLength sets the per-segment character budget, clamped to
// [100, 1024]. Lengths are counted in runes, not bytes.
func WithMaxSegmentLength(n int) Option {
	return func(c *config) { c.segmentLength = clampInt(n, minSegmentLength, maxSegmentLength) }
}

// WithParallel enables concurrent segment synthesis with at most n requests
// in flight, clamped to [1, 10]. Segment order in the merged output is
// preserved regardless of completion order.
func WithParallel(n int) Option {
	return func(c *config) {
		c.parallel = true
		c.parallelLimit = clampInt(n, minParallel, maxParallel)
	}
}

// WithThinking requests the thinking augmentation on splitting calls. It is
// only sent when the configured model supports it.
func WithThinking(enable bool) Option {
	return func(c *config) { c.thinking = enable }
}

// WithCodingPlan routes API calls through the coding-plan endpoint.
func WithCodingPlan(enable bool) Option {
	return func(c *config) { c.codingPlan = enable }
}

// WithRetry sets how many synthesis attempts are made per segment and the
// base delay of the exponential backoff between them.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(c *config) {
		c.maxRetries = maxRetries
		c.retryDelay = delay
	}
}

// WithLocalSplit splits text locally at sentence boundaries instead of
// asking the chat model, trading semantic quality for zero extra network
// calls.
func WithLocalSplit() Option {
	return func(c *config) { c.localSplit = true }
}

// WithBaseURL overrides the API endpoint, e.g. for the international
// platform or a self-hosted gateway.
func WithBaseURL(url string) Option {
	return func(c *config) { c.baseURL = url }
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
