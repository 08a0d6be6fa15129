package slugid

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "SSC CGL", want: "ssc_cgl"},
		{name: "trailing space", in: "Quant ", want: "quant"},
		{name: "punctuation", in: "Algebra!", want: "algebra"},
		{name: "collapse runs", in: "a  -  b", want: "a_b"},
		{name: "leading specials", in: "--Mock--", want: "mock"},
		{name: "digits kept", in: "Mock 12", want: "mock_12"},
		{name: "empty", in: "", want: ""},
		{name: "only specials", in: "!!!", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{"SSC CGL", "Quant ", "Algebra!", "a__b", "Mock-1 (Hindi)"}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSectionIDDeterministic(t *testing.T) {
	a := SectionID("ssc_cgl", "Quant ")
	b := SectionID("ssc_cgl", "Quant ")
	if a != b {
		t.Errorf("SectionID not deterministic: %q != %q", a, b)
	}
}

func TestHierarchyIDChain(t *testing.T) {
	examID := ExamID("SSC CGL")
	if examID != "ssc_cgl" {
		t.Fatalf("ExamID = %q, want ssc_cgl", examID)
	}

	sectionID := SectionID(examID, "Quant ")
	if sectionID != "ssc_cgl_section_quant" {
		t.Fatalf("SectionID = %q, want ssc_cgl_section_quant", sectionID)
	}

	topicID := TopicID(sectionID, "Algebra!")
	if topicID != "ssc_cgl_section_quant_topic_algebra" {
		t.Fatalf("TopicID = %q, want ssc_cgl_section_quant_topic_algebra", topicID)
	}
}

func TestQuizDocID(t *testing.T) {
	got := QuizDocID("ssc_cgl", "english", "section", "Mock 1")
	want := "ssc_cgl_english_section_mock_1"
	if got != want {
		t.Errorf("QuizDocID = %q, want %q", got, want)
	}
}

func TestQuizDocIDTruncatesTitle(t *testing.T) {
	long := "this is a very long quiz title that keeps going and going well past fifty characters"
	got := QuizDocID("exam", "english", "topic", long)

	sanitized := Sanitize(long)
	if len(sanitized) <= maxTitleLength {
		t.Fatalf("test input too short to exercise truncation")
	}
	want := "exam_english_topic_" + sanitized[:maxTitleLength]
	if got != want {
		t.Errorf("QuizDocID = %q, want %q", got, want)
	}
}
