package services

import "testing"

func TestExtractQuoteID(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"What is the business name of MYJADEQT001?", "MYJADEQT001"},
		{"does myjadeqt017 have an alarm", "MYJADEQT017"},
		{"how many proposals have CCTV?", ""},
	}
	for _, tc := range cases {
		if got := ExtractQuoteID(tc.query); got != tc.want {
			t.Errorf("ExtractQuoteID(%q) = %q, want %q", tc.query, got, tc.want)
		}
	}
}

func TestClassifyQuery(t *testing.T) {
	cases := []struct {
		query string
		want  QueryClass
	}{
		{"How many proposals have CCTV?", ClassAnalytical},
		{"Which proposals have claims?", ClassAnalytical},
		{"What is the highest sum assured?", ClassAnalytical},
		{"What is the business name of MYJADEQT001?", ClassStructured},
		{"Does MYJADEQT003 have an alarm?", ClassStructured},
		{"Tell me about the security measures", ClassSemantic},
		{"MYJADEQT001", ClassSemantic},
	}
	for _, tc := range cases {
		if got := ClassifyQuery(tc.query); got != tc.want {
			t.Errorf("ClassifyQuery(%q) = %q, want %q", tc.query, got, tc.want)
		}
	}
}
