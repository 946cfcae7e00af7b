package app_test

import (
	"context"
	"encoding/base64"
	"math/rand"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

func encode(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestDataURL(t *testing.T) {
	got := app.DataURL(domain.ImageFile{MimeType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}})
	if got != "data:image/jpeg;base64,/9j/" {
		t.Fatalf("unexpected data url %q", got)
	}
}

// slowHost answers after a random delay so completion order differs from input order.
type slowHost struct{ inflight, peak int32 }

func (h *slowHost) Upload(ctx context.Context, dataURL string) (string, error) {
	n := atomic.AddInt32(&h.inflight, 1)
	defer atomic.AddInt32(&h.inflight, -1)
	for {
		p := atomic.LoadInt32(&h.peak)
		if n <= p || atomic.CompareAndSwapInt32(&h.peak, p, n) {
			break
		}
	}
	time.Sleep(time.Duration(rand.Intn(15)) * time.Millisecond)
	return "https://img.test/" + dataURL[strings.Index(dataURL, ",")+1:], nil
}

func TestUploadImages_PreservesOrderAndRespectsLimit(t *testing.T) {
	files := []domain.ImageFile{img("a"), img("b"), img("c"), img("d"), img("e"), img("f")}
	host := &slowHost{}

	urls, err := app.UploadImages(context.Background(), host, files, 2)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(urls) != len(files) {
		t.Fatalf("expected %d urls, got %d", len(files), len(urls))
	}
	for i, f := range files {
		if urls[i] != hostedURL(string(f.Data)) {
			t.Fatalf("url %d = %q, want %q", i, urls[i], hostedURL(string(f.Data)))
		}
	}
	if p := atomic.LoadInt32(&host.peak); p > 2 {
		t.Fatalf("expected at most 2 uploads in flight, saw %d", p)
	}
}

func TestUploadImages_NoFiles(t *testing.T) {
	host := &fakeHost{}
	urls, err := app.UploadImages(context.Background(), host, nil, 4)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if urls == nil || len(urls) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", urls)
	}
	if host.calls != 0 {
		t.Fatalf("expected no remote calls, got %d", host.calls)
	}
}

func TestUploadImages_SecondFailureRejectsAll(t *testing.T) {
	files := []domain.ImageFile{img("one"), img("two"), img("three")}
	host := &fakeHost{failOn: encode("two")}

	urls, err := app.UploadImages(context.Background(), host, files, 0)
	if err == nil {
		t.Fatalf("expected error")
	}
	if urls != nil {
		t.Fatalf("expected no partial urls, got %v", urls)
	}
	if !strings.Contains(err.Error(), "two.png") {
		t.Fatalf("error should name the failing file: %v", err)
	}
}
