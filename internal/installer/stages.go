package installer

import (
	"fmt"

	"fmm-setup/internal/logger"
)

// Stage is one labelled unit of an install step. Progress is the fraction
// of the step (0..1) that is complete once Run returns.
type Stage struct {
	Label    string
	Progress float64
	Run      func() error // nil for stages that only report progress
}

// RunStages runs stages in order and stops at the first failure. Nothing
// already written is rolled back.
func RunStages(stages []Stage) error {
	for _, st := range stages {
		logger.Info("[INFO] %s\n", st.Label)
		if st.Run == nil {
			continue
		}
		if err := st.Run(); err != nil {
			logger.Error("[ERROR] %s failed: %v\n", st.Label, err)
			return fmt.Errorf("%s: %w", trimEllipsis(st.Label), err)
		}
	}
	return nil
}

func trimEllipsis(label string) string {
	for len(label) > 0 && label[len(label)-1] == '.' {
		label = label[:len(label)-1]
	}
	return label
}
