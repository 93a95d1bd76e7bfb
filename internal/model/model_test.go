package model

import (
	"encoding/json"
	"testing"
)

func TestSection_FailedMarshalsErrorOnly(t *testing.T) {
	s := Failed[BasicInfo]("dial tcp: connection refused")

	got, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"error":"dial tcp: connection refused"}`; string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}

func TestSection_EmptyFailureMessage(t *testing.T) {
	if got := Failed[MobileAnalysis]("").Err(); got == "" {
		t.Error("Err() is empty, want a non-empty message")
	}
}

func TestSection_OkMarshalsFullKeySet(t *testing.T) {
	s := Ok(MobileAnalysis{ViewportMeta: true, MobileFriendlyScore: 40})

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"viewport_meta", "viewport_content", "media_queries_count", "responsive_images", "mobile_friendly_score"} {
		if _, ok := m[key]; !ok {
			t.Errorf("key %q missing from %s", key, data)
		}
	}
	if _, ok := m["error"]; ok {
		t.Error("successful section carries an error key")
	}
}

func TestSection_UnmarshalBothVariants(t *testing.T) {
	var failed Section[Performance]
	if err := json.Unmarshal([]byte(`{"error":"timeout"}`), &failed); err != nil {
		t.Fatalf("Unmarshal failed variant: %v", err)
	}
	if !failed.Failed() || failed.Err() != "timeout" {
		t.Errorf("failed variant = (%v, %q), want (true, %q)", failed.Failed(), failed.Err(), "timeout")
	}

	var ok Section[Performance]
	if err := json.Unmarshal([]byte(`{"performance_score":80,"caching":"no-cache"}`), &ok); err != nil {
		t.Fatalf("Unmarshal ok variant: %v", err)
	}
	v, good := ok.Value()
	if !good {
		t.Fatal("ok variant reported failure")
	}
	if v.PerformanceScore != 80 || v.Caching != "no-cache" {
		t.Errorf("value = %+v", v)
	}
}

func TestSection_NilSafe(t *testing.T) {
	var s *Section[SEOAnalysis]

	if s.Failed() {
		t.Error("nil section reports failure")
	}
	if _, ok := s.Value(); ok {
		t.Error("nil section reports a value")
	}
	if got := s.Get().Links.InternalCount; got != 0 {
		t.Errorf("Get() on nil = %d, want 0", got)
	}
}

func TestPairs_KeepsOrder(t *testing.T) {
	p := Pairs[int]{{Key: "zebra", Value: 3}, {Key: "apple", Value: 2}, {Key: "mango", Value: 1}}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"zebra":3,"apple":2,"mango":1}`; string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back Pairs[int]
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	keys := back.Keys()
	if len(keys) != 3 || keys[0] != "zebra" || keys[2] != "mango" {
		t.Errorf("Keys() = %v", keys)
	}
	if v, ok := back.Get("apple"); !ok || v != 2 {
		t.Errorf("Get(apple) = %d, %v", v, ok)
	}
}

func TestPairs_EmptyIsObject(t *testing.T) {
	var p Pairs[float64]

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Marshal(nil) = %s, want {}", data)
	}
	if got := p.Head(5); len(got) != 0 {
		t.Errorf("Head(5) = %v", got)
	}
}

func TestKeywordCount_MarshalsAsArray(t *testing.T) {
	data, err := json.Marshal([]KeywordCount{{Word: "audit", Count: 4}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `[["audit",4]]`; string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back []KeywordCount
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back[0] != (KeywordCount{Word: "audit", Count: 4}) {
		t.Errorf("Unmarshal = %+v", back[0])
	}
}

func TestSecurityHeaders_Count(t *testing.T) {
	hsts := "max-age=63072000"
	empty := ""
	h := SecurityHeaders{StrictTransportSecurity: &hsts, XFrameOptions: &empty}

	if got := h.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
}

func TestAnalysisReport_Failures(t *testing.T) {
	r := &AnalysisReport{
		URL:         "https://example.com",
		Mode:        ModeQuick,
		BasicInfo:   Ok(BasicInfo{StatusCode: 200}),
		Performance: Failed[Performance]("timeout"),
	}

	got := r.Failures()
	if len(got) != 1 || got["performance"] != "timeout" {
		t.Errorf("Failures() = %v", got)
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := m["seo_analysis"]; ok {
		t.Error("quick report includes seo_analysis")
	}
	if string(m["performance"]) != `{"error":"timeout"}` {
		t.Errorf("performance = %s", m["performance"])
	}
}
