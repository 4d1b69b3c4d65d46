package language

import "context"

// MockDetector always answers Code, or Err when set
type MockDetector struct {
	Code string
	Err  error
}

func (m MockDetector) Detect(context.Context, string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Code, nil
}
