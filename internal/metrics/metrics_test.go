package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200"))
	RecordAPIRequest("POST", "/api/v1/recommendations", "200", 3*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200"))
	if after-before != 1 {
		t.Errorf("counter moved by %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("gauge = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("gauge = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(PrimaryZoneTotal.WithLabelValues("focus"))
	RecordRecommendation("focus", time.Millisecond)
	if got := testutil.ToFloat64(PrimaryZoneTotal.WithLabelValues("focus")); got != before+1 {
		t.Errorf("zone counter = %v, want %v", got, before+1)
	}
}

func TestRecordCache(t *testing.T) {
	hits := testutil.ToFloat64(ResultCacheHits)
	misses := testutil.ToFloat64(ResultCacheMisses)
	RecordCache(true)
	RecordCache(false)
	RecordCache(false)
	if testutil.ToFloat64(ResultCacheHits)-hits != 1 || testutil.ToFloat64(ResultCacheMisses)-misses != 2 {
		t.Error("cache counters did not move as expected")
	}
}

func TestSetLibrarySize(t *testing.T) {
	SetLibrarySize(295, 120, 900)
	if got := testutil.ToFloat64(LibraryEpisodes.WithLabelValues("curated")); got != 120 {
		t.Errorf("curated = %v", got)
	}
	if got := testutil.ToFloat64(LibraryQuotes); got != 900 {
		t.Errorf("quotes = %v", got)
	}
}
