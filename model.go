package text2audio

// Model selects the GLM chat model used for semantic text splitting.
type Model string

const (
	// ModelGLM47 is the latest flagship model.
	ModelGLM47 Model = "glm-4.7"
	// ModelGLM46 is an advanced reasoning model.
	ModelGLM46 Model = "glm-4.6"
	// ModelGLM45 is an advanced reasoning model.
	ModelGLM45 Model = "glm-4.5"
	// ModelGLM45Flash is optimized for speed and is the default.
	ModelGLM45Flash Model = "glm-4.5-flash"
	// ModelGLM45Air is lightweight and cost-effective.
	ModelGLM45Air Model = "glm-4.5-air"
)

func (m Model) String() string { return string(m) }

// SupportsThinking reports whether the model accepts the thinking
// augmentation on chat completions. The flash and air variants do not;
// requesting thinking on them is a caller error the converter guards
// against.
func (m Model) SupportsThinking() bool {
	switch m {
	case ModelGLM47, ModelGLM46, ModelGLM45:
		return true
	default:
		return false
	}
}

// Voice selects the synthesis voice.
type Voice string

const (
	// VoiceTongtong is the default voice.
	VoiceTongtong Voice = "tongtong"
	VoiceChuichui Voice = "chuichui"
	VoiceXiaochen Voice = "xiaochen"
	VoiceJam      Voice = "jam"
	VoiceKazi     Voice = "kazi"
	VoiceDouji    Voice = "douji"
	VoiceLuodo    Voice = "luodo"
)

func (v Voice) String() string { return string(v) }
