package services

import (
	"context"
	"fmt"

	"github.com/glowstack/reel/internal/shared"
)

// MockVideoService is an offline stand-in for the generation backend, used
// by the --mock flag and tests.
type MockVideoService struct {
	Healthy   bool
	FailTimes int // fail this many Generate calls before succeeding
	calls     int
}

var _ VideoService = (*MockVideoService)(nil)

func NewMockVideoService() *MockVideoService {
	return &MockVideoService{Healthy: true}
}

func (m *MockVideoService) Name() string { return "mock" }

func (m *MockVideoService) CheckHealth(ctx context.Context) bool { return m.Healthy }

func (m *MockVideoService) Generate(ctx context.Context, image string, opts GenerateOptions) (*Generation, error) {
	if err := ctx.Err(); err != nil {
		if cls := classifyCtxErr(ctx, err); cls != nil {
			return nil, cls
		}
	}
	m.calls++
	if m.calls <= m.FailTimes {
		return nil, fmt.Errorf("%w: simulated failure", shared.ErrGenerationFailed)
	}

	id := shared.GenerateID()
	return &Generation{
		VideoURL: "https://example.com/videos/" + id + ".mp4",
		VideoID:  id,
		Model:    opts.Model,
	}, nil
}
