package textgen

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/completion"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

type implService struct {
	completion completion.Service
	logger     logger.Logger
}

// New creates a text Service on top of a completion Service
func New(svc completion.Service, log logger.Logger) Service {
	return &implService{
		completion: svc,
		logger:     log,
	}
}
