package utils

import "github.com/schollz/progressbar/v3"

// Standard progress bar descriptions
const (
	DescPreparing  = "Preparing"
	DescBuilding   = "Building"
	DescDelivering = "Delivering"
	DescPublishing = "Publishing"
)

// NewProgressBar creates a consistently styled progress bar.
//
// Parameters:
//   - total: Total number of steps. Use -1 for unknown totals (indeterminate/spinner mode).
//   - description: Text shown before the bar (e.g., DescPublishing).
//   - extra: Additional options applied last, e.g. progressbar.OptionSetWriter.
//
// For unknown totals the bar uses spinner type 14 with blank state rendering.
// Known totals show the count and elapsed time.
func NewProgressBar(total int, description string, extra ...progressbar.Option) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts,
			progressbar.OptionSetElapsedTime(true),
		)
	}

	opts = append(opts, extra...)
	return progressbar.NewOptions(total, opts...)
}
