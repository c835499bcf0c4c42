package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnParseStart(ctx, "plan.dxf", "dxf")
	p.OnParseComplete(ctx, "plan.dxf", 12, time.Second, nil)
	p.OnBoundsComplete(ctx, 12, true, 0, time.Millisecond)
	p.OnRenderStart(ctx, []string{"png"})
	p.OnRenderComplete(ctx, []string{"png"}, "", time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "model")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "example.com", "/plan.dxf")
	h.OnResponse(ctx, "GET", "example.com", "/plan.dxf", 200, time.Second)
	h.OnError(ctx, "GET", "example.com", "/plan.dxf", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() default is not a no-op")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() default is not a no-op")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() default is not a no-op")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks did not register")
	}
	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks did not register")
	}
	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks did not register")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() did not restore the no-op pipeline hooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) replaced the hooks")
	}
}

func TestRegister(t *testing.T) {
	Reset()
	defer Reset()

	h := NewLogHooks(log.New(&bytes.Buffer{}))
	if n := Register(h); n != 3 {
		t.Errorf("Register(LogHooks) = %d, want 3", n)
	}
	if Pipeline() != PipelineHooks(h) || Cache() != CacheHooks(h) || HTTP() != HTTPHooks(h) {
		t.Error("LogHooks not installed everywhere")
	}

	Reset()
	c := &testCacheHooks{}
	if n := Register(c); n != 1 {
		t.Errorf("Register(cache only) = %d, want 1", n)
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("cache-only hooks replaced pipeline hooks")
	}
	if n := Register("not hooks"); n != 0 {
		t.Errorf("Register(string) = %d", n)
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(l)
	ctx := context.Background()

	h.OnParseComplete(ctx, "plan.dxf", 3, time.Millisecond, nil)
	h.OnRenderComplete(ctx, []string{"png"}, "No visible content found in DXF file", time.Millisecond, nil)
	h.OnCacheHit(ctx, "artifact")
	h.OnError(ctx, "GET", "example.com", "/x", errors.New("refused"))

	out := buf.String()
	for _, want := range []string{"parse complete", "fallback", "cache hit", "http error", "refused", "obs"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
