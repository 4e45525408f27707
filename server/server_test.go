package server_test

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/stonefield/sitegate/internal/config"
)

// testConfig is a deterministic config for tests: fixed signing secret, env
// defaults for everything else.
type testConfig struct {
	config.EnvVars
	config.Cors
	config.Crm
}

func (testConfig) GetSessionSecret() []byte {
	return []byte("test-secret")
}

func (testConfig) GetSessionMaxAge() time.Duration {
	return 90 * 24 * time.Hour
}

// fakeVerifier is a canned AccessVerifier.
type fakeVerifier struct {
	granted bool
	err     error
	calls   atomic.Int32
}

func (f *fakeVerifier) VerifyAccess(_ context.Context, _ string) (bool, error) {
	f.calls.Add(1)
	return f.granted, f.err
}

// fakeRenderer simulates the browser lifecycle so tests can assert the
// resource is acquired and released exactly once per render.
type fakeRenderer struct {
	data     []byte
	err      error
	acquired atomic.Int32
	released atomic.Int32
	lastURL  atomic.Value
}

func (f *fakeRenderer) Render(_ context.Context, pageURL string) ([]byte, error) {
	f.acquired.Add(1)
	defer f.released.Add(1)
	f.lastURL.Store(pageURL)
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}
