package app

import (
	"testing"

	"github.com/storefront-next/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0", Mode: "debug"},
	}
}

func TestBuildAPIMode(t *testing.T) {
	a, err := Build(testConfig(), ModeAPI, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if a.httpServer == nil {
		t.Fatal("api mode must carry an http server")
	}
	if a.workerSrv != nil {
		t.Fatal("api mode must not carry a worker")
	}
}

func TestBuildAllModeWithQueueDisabledRunsHTTPOnly(t *testing.T) {
	a, err := Build(testConfig(), ModeAll, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if a.httpServer == nil {
		t.Fatal("all mode must carry an http server")
	}
	if a.workerSrv != nil {
		t.Fatal("queue disabled must not start a worker")
	}
}

func TestBuildWorkerModeRequiresQueue(t *testing.T) {
	if _, err := Build(testConfig(), ModeWorker, nil); err == nil {
		t.Fatal("worker mode with queue disabled must fail")
	}
}

func TestBuildUnknownMode(t *testing.T) {
	if _, err := Build(testConfig(), "cron", nil); err == nil {
		t.Fatal("unknown mode must fail")
	}
}

func TestBuildNilConfig(t *testing.T) {
	if _, err := Build(nil, ModeAll, nil); err == nil {
		t.Fatal("nil config must fail")
	}
}
