package voice

// UsingNativePipeline reports whether capture runs fully in-process. The
// HUD pipeline label derives solely from this predicate at job-start time.
func UsingNativePipeline(hasTranscriber, hasRecorder bool) bool {
	return hasTranscriber && hasRecorder
}
